package populate

import (
	"errors"
	"testing"

	"github.com/npillmayer/sbnf"
	"github.com/npillmayer/sbnf/engine"
	"github.com/npillmayer/sbnf/grammar"
	"github.com/npillmayer/sbnf/result"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type assignment struct {
	Const  bool      `sbnf:"const"`
	Target string    `sbnf:"target"`
	Where  sbnf.Span `sbnf:"target,span"`
	Values []int     `sbnf:"value"`
	Note   string
}

type program struct {
	Assignments []assignment `sbnf:"assign"`
}

const assignGrammar = `
prog ::= { <assign> } .
assign ::= [<?const> "const"] <$?target> "=" <#?value> { "," <#?value> } .
`

func TestIntoParseResult(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.populate")
	defer teardown()
	//
	g, err := grammar.Load("assign", assignGrammar)
	if err != nil {
		t.Fatal(err)
	}
	p := engine.NewParser(g)
	ok, err := p.ParseString("const x = 1, 2\ny = 3")
	if err != nil || !ok {
		t.Fatalf("expected input to match, err = %v", err)
	}
	var prog program
	if err := Into(p.Result(), p.Result().First(), &prog); err != nil {
		t.Fatal(err)
	}
	if len(prog.Assignments) != 2 {
		t.Fatalf("expected 2 assignments, have %d", len(prog.Assignments))
	}
	x, y := prog.Assignments[0], prog.Assignments[1]
	if !x.Const || x.Target != "x" || len(x.Values) != 2 || x.Values[1] != 2 {
		t.Errorf("unexpected first assignment %+v", x)
	}
	if x.Where != sbnf.MakeSpan(6, 7) {
		t.Errorf("expected target x to span (6…7), is %v", x.Where)
	}
	if y.Const || y.Target != "y" || len(y.Values) != 1 || y.Values[0] != 3 {
		t.Errorf("unexpected second assignment %+v", y)
	}
}

type operation struct {
	Op    int         `sbnf:"op,alt"`
	Text  string      `sbnf:"arg,text"`
	Arg   float64     `sbnf:"arg"`
	Raw   interface{} `sbnf:"arg"`
	Left  *operand    `sbnf:"left"`
	Right *operand    `sbnf:"right"`
}

type operand struct {
	N uint8 `sbnf:"n"`
}

func TestIntoManualTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.populate")
	defer teardown()
	//
	tree := result.NewTree()
	op := tree.Append("op", result.Component, nil, result.NoHandle)
	tree.At(op).Alt = 2
	tree.Close(op)
	arg := tree.Append("arg", result.Integer, int64(12), result.NoHandle)
	tree.At(arg).Text = "012"
	left := tree.Append("left", result.Component, nil, result.NoHandle)
	tree.Append("n", result.Integer, int64(200), left)
	tree.Close(left)
	var o operation
	if err := Into(tree, result.NoHandle, &o); err != nil {
		t.Fatal(err)
	}
	if o.Op != 2 || o.Text != "012" || o.Arg != 12 || o.Raw != int64(12) {
		t.Errorf("unexpected operation %+v", o)
	}
	if o.Left == nil || o.Left.N != 200 {
		t.Errorf("expected left operand 200, have %+v", o.Left)
	}
	if o.Right != nil {
		t.Errorf("expected right operand to be absent, have %+v", o.Right)
	}
}

func TestIntoErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.populate")
	defer teardown()
	//
	tree := result.NewTree()
	left := tree.Append("left", result.Component, nil, result.NoHandle)
	tree.Append("n", result.Integer, int64(300), left)
	tree.Close(left)
	var o operation
	if err := Into(tree, result.NoHandle, o); !errors.Is(err, ErrTarget) {
		t.Errorf("expected ErrTarget for non-pointer target, have %v", err)
	}
	err := Into(tree, result.NoHandle, &o)
	var ferr *FieldError
	if !errors.As(err, &ferr) || ferr.Field != "N" {
		t.Errorf("expected overflow error for field N, have %v", err)
	}
}
