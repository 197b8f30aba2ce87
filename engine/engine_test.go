package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/sbnf/grammar"
	"github.com/npillmayer/sbnf/result"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func load(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Load("test", src)
	if err != nil {
		t.Fatalf("cannot load grammar: %v", err)
	}
	return g
}

func parse(t *testing.T, src, input string, opts ...Option) (*Parser, bool) {
	t.Helper()
	p := NewParser(load(t, src), opts...)
	ok, err := p.ParseString(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		p.Result().Dump()
	}
	return p, ok
}

func values(tree *result.Tree, tag string) []interface{} {
	var v []interface{}
	for _, h := range tree.Find(tag) {
		v = append(v, tree.Entry(h).Value)
	}
	return v
}

func TestGreeting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p, ok := parse(t, `greeting ::= "hello" <$?name> .`, "hello world")
	if !ok {
		t.Fatalf("expected input to match, diagnostics:\n%s", p.Diagnostics().Report())
	}
	tree := p.Result()
	if tree.Len() != 2 {
		t.Fatalf("expected 2 result entries, have %d", tree.Len())
	}
	root := tree.Entry(tree.First())
	if root.Tag != "greeting" || root.Kind != result.Component || root.Alt != result.NoAlternatives {
		t.Errorf("unexpected top-level entry %v", root)
	}
	name := tree.Entry(tree.Descend(tree.First()))
	if name.Tag != "name" || name.Kind != result.Ident || name.Value != "world" {
		t.Errorf("expected identifier name=world, have %v", name)
	}
	if name.Span.From() != 6 || name.Span.To() != 11 {
		t.Errorf("expected identifier to span (6…11), is %v", name.Span)
	}
	if p.Diagnostics() != nil {
		t.Errorf("expected no diagnostics after successful parse")
	}
}

const listGrammar = `list ::= <#?n> { "," <#?n> } .`

func TestList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p, ok := parse(t, listGrammar, "1,2,3")
	if !ok {
		t.Fatalf("expected input to match, diagnostics:\n%s", p.Diagnostics().Report())
	}
	n := values(p.Result(), "n")
	if len(n) != 3 || n[0] != int64(1) || n[1] != int64(2) || n[2] != int64(3) {
		t.Errorf("expected integers 1, 2, 3; have %v", n)
	}
	if len(p.Result().Children(0)) != 3 {
		t.Errorf("expected all integers to be children of list")
	}
}

func TestListAtEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p, ok := parse(t, listGrammar, "1,2,")
	if ok {
		t.Fatalf("expected input to be rejected")
	}
	d := p.Diagnostics()
	t.Logf("\n%s", d.Report())
	if d.Position() != 4 || !d.AtEnd() {
		t.Errorf("expected failure at end of input, is at %d", d.Position())
	}
	if len(d.Expected()) != 1 || !strings.HasPrefix(d.Expected()[0], "<#?n>") {
		t.Errorf("expected <#?n> to be expected, have %v", d.Expected())
	}
	if d.Expected()[0] != "<#?n> in list" {
		t.Errorf("expected lineage 'list', have %q", d.Expected()[0])
	}
	if len(d.Trailing()) != 3 {
		t.Errorf("expected 3 trailing entries, have %v", d.Trailing())
	}
	if x := d.Excerpt(); x != "   1 | 1,2,\n     |     ^" {
		t.Errorf("unexpected excerpt\n%s", x)
	}
	if p.Result().Len() != 0 {
		t.Errorf("expected empty result after failed parse")
	}
}

func TestNegativeLookahead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	const g = `word ::= [?"forbidden"] <$?w> .`
	p, ok := parse(t, g, "forbidden")
	if ok {
		t.Fatalf("expected 'forbidden' to be rejected")
	}
	d := p.Diagnostics()
	if d.Position() != 0 || len(d.Expected()) != 1 || d.Expected()[0] != `not "forbidden" in word` {
		t.Errorf("unexpected diagnostics at %d: %v", d.Position(), d.Expected())
	}
	p, ok = parse(t, g, "allowed")
	if !ok || values(p.Result(), "w")[0] != "allowed" {
		t.Errorf("expected 'allowed' to be accepted")
	}
}

func TestTaggedEmptyOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	const g = `r ::= [<?opt> "x"] "y" .`
	p, ok := parse(t, g, "y")
	if !ok {
		t.Fatalf("expected 'y' to match")
	}
	opt := p.Result().Find("opt")
	if len(opt) != 1 {
		t.Fatalf("expected option entry, have %v", opt)
	}
	if e := p.Result().Entry(opt[0]); e.Kind != result.Option || e.Alt != 0 || e.Parent != 0 {
		t.Errorf("expected absent option as child of r, have %v", e)
	}
	p, ok = parse(t, g, "xy")
	if !ok {
		t.Fatalf("expected 'xy' to match")
	}
	if e := p.Result().Entry(p.Result().Find("opt")[0]); e.Alt != 1 || e.End != 2 {
		t.Errorf("expected chosen option 1, have %v", e)
	}
}

func TestOptionContinuation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p, ok := parse(t, `r ::= [<?o> "a" | "ab"] "c" .`, "abc")
	if !ok {
		t.Fatalf("expected option to be revised, diagnostics:\n%s", p.Diagnostics().Report())
	}
	if e := p.Result().Entry(p.Result().Find("o")[0]); e.Alt != 2 {
		t.Errorf("expected second alternative of option, have %d", e.Alt)
	}
	_, ok = parse(t, `r ::= [ "a" ] "a" .`, "a")
	if !ok {
		t.Errorf("expected option to be dropped in favour of the remainder")
	}
	_, ok = parse(t, `r ::= ( "a" "b" | "a" ) "b" .`, "ab")
	if !ok {
		t.Errorf("expected alternative set to be revised")
	}
}

func TestCheckEmptyFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p, ok := parse(t, `r ::= [<?o> "a"] <$?id> .`, "ab")
	if !ok {
		t.Fatalf("expected input to match")
	}
	tree := p.Result()
	if tree.Entry(tree.Find("o")[0]).Alt != 1 || values(tree, "id")[0] != "b" {
		t.Errorf("expected greedy option to consume 'a'")
	}
	p, ok = parse(t, `r ::= [~<?o> "a"] <$?id> .`, "ab")
	if !ok {
		t.Fatalf("expected input to match")
	}
	tree = p.Result()
	if tree.Entry(tree.Find("o")[0]).Alt != 0 || values(tree, "id")[0] != "ab" {
		t.Errorf("expected check-empty-first option to be absent")
	}
	p, ok = parse(t, `r ::= [~<?o> "a"] "b" .`, "ab")
	if !ok || p.Result().Entry(p.Result().Find("o")[0]).Alt != 1 {
		t.Errorf("expected check-empty-first option to match if remainder requires it")
	}
}

func TestOrderedChoice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p, ok := parse(t, `r ::= "a" "c" | "a" "b" | "a" <$?x> .`, "ab")
	if !ok {
		t.Fatalf("expected input to match")
	}
	if root := p.Result().Entry(0); root.Alt != 2 || p.Result().Len() != 1 {
		t.Errorf("expected first matching alternative 2 without leftovers, have %v", root)
	}
	p, ok = parse(t, `r ::= (<?op> "+" | "-") <#?n> .`, "-1")
	if !ok || p.Result().Entry(p.Result().Find("op")[0]).Alt != 2 {
		t.Errorf("expected alternative set to record alternative 2")
	}
}

func TestRepetition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	_, ok := parse(t, `r ::= { [ "x" ] } "y" .`, "y")
	if !ok {
		t.Errorf("expected empty repetition to terminate")
	}
	p, ok := parse(t, `r ::= {<?items> <$?a> ? ","} .`, "x, y, z")
	if !ok {
		t.Fatalf("expected separated list to match")
	}
	tree := p.Result()
	items := tree.Find("items")[0]
	if tree.Entry(items).Alt != 3 || len(tree.Children(items)) != 3 {
		t.Errorf("expected 3 items, have %v", tree.Entry(items))
	}
	if _, ok = parse(t, `r ::= { <$?a> ? "," } .`, "x, y,"); ok {
		t.Errorf("expected trailing separator to be rejected")
	}
}

func TestRightmostFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p, ok := parse(t, `r ::= "a" "b" "c" | "a" "x" .`, "abd")
	if ok {
		t.Fatalf("expected input to be rejected")
	}
	if d := p.Diagnostics(); d.Position() != 2 || len(d.Expected()) != 1 || d.Expected()[0] != `"c" in r` {
		t.Errorf("expected rightmost failure at 2, have %d %v", d.Position(), d.Expected())
	}
	p, _ = parse(t, `r ::= "a" ( "b" | "c" ) .`, "ad")
	if x := p.Diagnostics().Expected(); len(x) != 2 || x[0] != `"b" in r` || x[1] != `"c" in r` {
		t.Errorf("expected both alternatives to be expected, have %v", x)
	}
	p, _ = parse(t, `r ::= "a" .`, "a b")
	if d := p.Diagnostics(); d.Position() != 2 || d.Expected()[0] != "end of input" {
		t.Errorf("expected trailing input to be reported, have %d %v", d.Position(), d.Expected())
	}
}

func TestIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	g := load(t, `
		prog ::= { <stmt> ? ";" } .
		stmt ::= <$?lhs> "=" [<?neg> "-"] <#?rhs> .
	`)
	input := "a = 1; b = -2; c = 3"
	p := NewParser(g)
	if ok, _ := p.ParseString(input); !ok {
		t.Fatalf("expected input to match:\n%s", p.Diagnostics().Report())
	}
	fp := p.Result().Fingerprint()
	if ok, _ := p.ParseString("x = 9"); !ok {
		t.Fatalf("expected second input to match")
	}
	if p.Result().Fingerprint() == fp {
		t.Errorf("expected different input to produce a different fingerprint")
	}
	if ok, err := p.ParseString(input); !ok || err != nil {
		t.Fatalf("expected input to match again, err = %v", err)
	}
	if p.Result().Fingerprint() != fp {
		t.Errorf("expected re-parsing the same input to produce identical results")
	}
	p2 := NewParser(g)
	if ok, err := p2.ParseString(input); !ok || err != nil {
		t.Fatalf("expected input to match with a new parser, err = %v", err)
	}
	if p2.Result().Fingerprint() != fp {
		t.Errorf("expected parsing the same input to produce identical results")
	}
}

func TestTransport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	const g = `
		doc ::= <^title> <&body> .
		title ::= "#" <~> <*"\n"?text> .
		body ::= { <$?word> } .
	`
	p, ok := parse(t, g, "# Hello\nfoo bar")
	if !ok {
		t.Fatalf("expected input to match:\n%s", p.Diagnostics().Report())
	}
	tree := p.Result()
	var tags []string
	body := tree.Child(0, "body")
	for _, h := range tree.Children(body) {
		tags = append(tags, tree.Entry(h).Tag)
	}
	if strings.Join(tags, " ") != "title word word" {
		t.Errorf("expected title to be transported into body, children are %v", tags)
	}
	if len(tree.Children(0)) != 1 || tree.Entry(0).End != 6 {
		t.Errorf("expected doc to have body as its only child")
	}
	title := tree.Child(body, "title")
	if values(tree, "text")[0] != "Hello" || tree.Entry(title+1).Parent != title {
		t.Errorf("expected title to keep its text")
	}
}

func TestTransportFailureDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	const g = `
		doc ::= <$?head> <^title> <&body> .
		title ::= "#" <#?n> .
		body ::= { <$?word> } .
	`
	p, ok := parse(t, g, "intro # x")
	if ok {
		t.Fatalf("expected input to be rejected")
	}
	trailing := p.Diagnostics().Trailing()
	t.Logf("trailing results: %v", trailing)
	if len(trailing) != 2 || !strings.Contains(trailing[1], "head") {
		t.Errorf("expected trailing results of the main tree (doc, head), have %v", trailing)
	}
	for _, tr := range trailing {
		if strings.Contains(tr, "title") {
			t.Errorf("expected no entries of a transport buffer in trailing results, have %q", tr)
		}
	}
}

func TestTransportPropagation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	const g = `
		doc ::= <^title> <%section> .
		section ::= <&body> .
		title ::= "#" <~> <*"\n"?text> .
		body ::= { <$?word> } .
	`
	p, ok := parse(t, g, "# Hello\nfoo")
	if !ok {
		t.Fatalf("expected input to match:\n%s", p.Diagnostics().Report())
	}
	tree := p.Result()
	title := tree.Find("title")
	if len(title) != 1 {
		t.Fatalf("expected one title, have %d", len(title))
	}
	parent := tree.Entry(title[0]).Parent
	if tree.Entry(parent).Tag != "body" || tree.Entry(tree.Entry(parent).Parent).Tag != "section" {
		t.Errorf("expected title within section.body")
	}
}

func TestTransportRollback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	const g = `
		doc ::= <^title> "!" <&body> | <^title> <&body> .
		title ::= "#" <~> <*"\n"?text> .
		body ::= { <$?word> } .
	`
	p, ok := parse(t, g, "# Hi\nfoo")
	if !ok {
		t.Fatalf("expected input to match:\n%s", p.Diagnostics().Report())
	}
	if n := len(p.Result().Find("title")); n != 1 {
		t.Errorf("expected results of failed alternative to be discarded, have %d titles", n)
	}
}

func TestLeaves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	var cases = []struct {
		grammar string
		input   string
		tag     string
		value   interface{}
	}{
		{`r ::= <+#?n> .`, " -42", "n", int64(-42)},
		{`r ::= <0x?n> .`, "0xFF", "n", int64(255)},
		{`r ::= <0x?n> .`, "0x7FFFFFFFFFFFFFFF", "n", int64(0x7FFFFFFFFFFFFFFF)},
		{`r ::= <.#?f> .`, "3.25e2", "f", 325.0},
		{`r ::= <'?s> .`, `'it\'s'`, "s", "it's"},
		{`r ::= <*";"?s> ";" .`, "abc;", "s", "abc"},
		{`r ::= <*<":"?pre> ":" <*"\n"?post> .`, "a:b:c", "pre", "a:b"},
		{`r ::= <*|="end"?s> .`, "foo bar end", "s", "foo bar "},
		{`r ::= <*'","?s> "," <$?x> .`, `"a,b",c`, "s", `"a,b"`},
		{`r ::= </[a-z]+[0-9]*/?s> .`, "abc12", "s", "abc12"},
		{`!identchars "-" . r ::= <$?id> .`, "foo-bar", "id", "foo-bar"},
		{`!keywords if . r ::= <$?id> .`, "iffy", "id", "iffy"},
		{`r ::= <$?id:3> .`, "abc", "id", "abc"},
		{`r ::= <$?@> .`, "x", "r", "x"},
		{`r ::= "+":plus .`, "+", "plus", "+"},
		{`r ::= "begin" <*|=~"end"?body> .`, "begin\n    x\n      y\n  end", "body", "x\n  y"},
	}
	for i, c := range cases {
		p, ok := parse(t, c.grammar, c.input)
		if !ok {
			t.Errorf("case %d: expected %q to match:\n%s", i, c.input, p.Diagnostics().Report())
			continue
		}
		v := values(p.Result(), c.tag)
		if len(v) == 0 || v[len(v)-1] != c.value {
			t.Errorf("case %d: expected %s=%#v, have %#v", i, c.tag, c.value, v)
		}
	}
}

func TestLeafFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	var cases = []struct {
		grammar string
		input   string
	}{
		{`!keywords if . r ::= <$?id> .`, "if"},
		{`r ::= <$?id:3> .`, "abcd"},
		{`r ::= <#?n> .`, "-1"},
		{`r ::= <#?n> .`, "99999999999999999999"},
		{`r ::= <0x?n> .`, "0xFFFFFFFFFFFFFFFF"},
		{`r ::= <'?s> .`, `"open`},
		{`r ::= <*|"end"?s> .`, "no terminator"},
		{`r ::= <*<":"?s> <*";"?t> .`, "no colon\nhere:"},
	}
	for i, c := range cases {
		if _, ok := parse(t, c.grammar, c.input); ok {
			t.Errorf("case %d: expected %q to be rejected", i, c.input)
		}
	}
}

func TestNested(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	const g = `
		r ::= <*";"?stmt=assign> ";" .
		assign ::= <$?lhs> "=" <#?rhs> .
	`
	p, ok := parse(t, g, "x = 5;")
	if !ok {
		t.Fatalf("expected input to match:\n%s", p.Diagnostics().Report())
	}
	tree := p.Result()
	stmt := tree.Find("stmt")
	if len(stmt) != 1 || tree.Entry(stmt[0]).Kind != result.Component {
		t.Fatalf("expected captured text to be re-parsed as a component")
	}
	if lhs := tree.Child(stmt[0], "lhs"); lhs == result.NoHandle || tree.Entry(lhs).Value != "x" {
		t.Errorf("expected lhs=x within stmt")
	}
	if _, ok = parse(t, g, "x = ;"); ok {
		t.Errorf("expected nested mismatch to fail the leaf")
	}
	if _, ok = parse(t, g, "x = 5 6;"); ok {
		t.Errorf("expected unconsumed nested text to fail the leaf")
	}
}

func TestSeeds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p := NewParser(load(t, `greeting ::= "hello" <$?name> .`))
	ok, err := p.ParseString("hello world", Seed{"lang", "en"}, Seed{"n", 3})
	if !ok || err != nil {
		t.Fatalf("expected input to match")
	}
	tree := p.Result()
	var tags []string
	for _, h := range tree.Children(0) {
		tags = append(tags, tree.Entry(h).Tag)
	}
	if strings.Join(tags, " ") != "lang n name" {
		t.Errorf("expected seeds to be first children, have %v", tags)
	}
	if tree.Entry(2).Value != int64(3) || tree.Entry(2).Kind != result.Integer {
		t.Errorf("expected integer seed, have %v", tree.Entry(2))
	}
}

func TestWhitespaceAndComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p, ok := parse(t, `!comment "/*" "*/" . !linecomment "//" . r ::= { <$?w> } .`,
		"  a /* x */ b // c\n d")
	if !ok {
		t.Fatalf("expected comments to be skipped:\n%s", p.Diagnostics().Report())
	}
	if w := values(p.Result(), "w"); len(w) != 3 || w[2] != "d" {
		t.Errorf("expected words a, b, d; have %v", w)
	}
	if _, ok = parse(t, `!comment "/*" "*/" . r ::= "a" "b" .`, "a /*c*/ b"); !ok {
		t.Errorf("expected comment between terminals to be skipped")
	}
	p, ok = parse(t, `!linecomment "//" . r ::= "a" "//" <$?x> .`, "a //foo")
	if !ok {
		t.Fatalf("expected literal // to match before line comments:\n%s", p.Diagnostics().Report())
	}
	if x := values(p.Result(), "x"); len(x) != 1 || x[0] != "foo" {
		t.Errorf("expected x=foo, have %v", x)
	}
	p, ok = parse(t, `!comment "(*" "*)" . r ::= "a" "(*" <$?x> "*)" .`, "a (* foo *)")
	if !ok {
		t.Fatalf("expected literal (* to match before block comments:\n%s", p.Diagnostics().Report())
	}
	if x := values(p.Result(), "x"); len(x) != 1 || x[0] != "foo" {
		t.Errorf("expected x=foo, have %v", x)
	}
	p, ok = parse(t, `!linemode . r ::= { <$?w> } "\n" <$?x> .`, "a b\nc")
	if !ok {
		t.Fatalf("expected newline to be significant in line mode:\n%s", p.Diagnostics().Report())
	}
	if x := values(p.Result(), "x"); len(x) != 1 || x[0] != "c" {
		t.Errorf("expected x=c, have %v", x)
	}
}

func TestGroupingRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p, ok := parse(t, `
		r ::= <item> <item?> <item?it> .
		item ::= <$?a> .
	`, "x y z")
	if !ok {
		t.Fatalf("expected input to match")
	}
	tree := p.Result()
	var tags []string
	for _, h := range tree.Children(0) {
		tags = append(tags, tree.Entry(h).Tag)
	}
	if strings.Join(tags, " ") != "item a it" {
		t.Errorf("unexpected children of r: %v", tags)
	}
}

func TestEncoding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	g := load(t, `!encoding "ISO-8859-1" . r ::= <$?w> .`)
	p := NewParser(g)
	ok, err := p.Parse([]byte{'c', 'a', 'f', 0xE9})
	if err != nil || !ok {
		t.Fatalf("expected Latin-1 input to match, error = %v", err)
	}
	if w := values(p.Result(), "w"); w[0] != "café" {
		t.Errorf("expected w=café, have %q", w[0])
	}
	p = NewParser(g, WithEncoding("no-such-encoding"))
	if _, err = p.Parse([]byte("x")); err == nil {
		t.Errorf("expected unknown encoding to be an error")
	}
}

func TestHardErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	p := NewParser(load(t, `r ::= "a" | <nope> .`))
	ok, err := p.ParseString("b")
	var unknown *UnknownRuleError
	if ok || !errors.As(err, &unknown) || unknown.Rule != "nope" || unknown.From != "r" {
		t.Errorf("expected unknown rule error, have %v", err)
	}
	p = NewParser(load(t, `e ::= <e> "+" <#?n> | <#?n> .`), MaxDepth(50))
	if _, err = p.ParseString("1+2"); !errors.Is(err, ErrRecursionDepth) {
		t.Errorf("expected left recursion to exceed recursion depth, have %v", err)
	}
	p = NewParser(load(t, `r ::= "a" .`), StartAt("missing"))
	if _, err = p.ParseString("a"); !errors.As(err, &unknown) {
		t.Errorf("expected unknown start rule to be an error, have %v", err)
	}
}

func TestStartAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbnf.engine")
	defer teardown()
	//
	g := load(t, `
		a ::= "a" .
		b ::= "b" .
	`)
	if ok, _ := NewParser(g, StartAt("b")).ParseString("b"); !ok {
		t.Errorf("expected to parse starting at rule b")
	}
	if ok, _ := NewParser(g, SkipLeading(false)).ParseString(" a"); !ok {
		t.Errorf("expected terminal to skip leading whitespace itself")
	}
	if ok, _ := NewParser(load(t, `r ::= <*";"?s> .`), SkipLeading(false)).ParseString(" a"); !ok {
		t.Errorf("expected scan to match")
	}
}
