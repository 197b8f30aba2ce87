package main

import (
	"strings"
	"testing"

	"github.com/npillmayer/sbnf/engine"
	"github.com/npillmayer/sbnf/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLeveledList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.cli")
	defer teardown()
	//
	g, err := grammar.Load("pair", `pair ::= <$?key> "=" [ <#?n> | <'?s> ] .`)
	if err != nil {
		t.Fatal(err)
	}
	p := engine.NewParser(g)
	if ok, err := p.ParseString(`k = "v"`); err != nil || !ok {
		t.Fatalf("expected input to match, err = %v", err)
	}
	ll := leveledList(p.Result())
	var labels []string
	for _, item := range ll {
		labels = append(labels, strings.Repeat(".", item.Level)+item.Text)
	}
	expected := `pair|.key = k|.s = "v"`
	if strings.Join(labels, "|") != expected {
		t.Errorf("expected %s, have %s", expected, strings.Join(labels, "|"))
	}
	out, err := render(p.Result(), g, options{xml: true})
	if err != nil || !strings.Contains(out, "<s>v</s>") {
		t.Errorf("expected XML output to contain string s, have %q", out)
	}
}
