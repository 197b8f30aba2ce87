package grammar

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Rule is a named grammar rule. Its body is an alternative set.
type Rule struct {
	Name   string
	Tag    string // "" for grouping rules
	Body   *Node
	Serial int // position of the rule within the grammar source
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if r.Tag != r.Name {
		b.WriteByte('?')
		b.WriteString(r.Tag)
	}
	b.WriteString(" ::= ")
	writeAlts(&b, r.Body.Alts)
	b.WriteString(" .")
	return b.String()
}

// Namespace is a namespace declaration, for serializing parse results to markup.
type Namespace struct {
	Prefix string
	URI    string
}

// DefaultWhitespace is the set of whitespace characters if a grammar
// does not declare one.
const DefaultWhitespace = " \t\r\n"

// Directives hold the global settings of a grammar.
type Directives struct {
	Whitespace   string
	BlockComment [2]string // open and close delimiter, empty if none
	LineComments []string
	LineMode     bool
	Encoding     string // IANA name of the input encoding, empty for UTF-8
	Namespaces   []Namespace
	IdentChars   string // characters allowed within identifiers, besides letters and digits
	Start        string
	keywords     *treeset.Set
}

func newDirectives() Directives {
	return Directives{
		Whitespace: DefaultWhitespace,
		keywords:   treeset.NewWith(utils.StringComparator),
	}
}

// IsWhitespace checks if a character is in the set of whitespace characters.
func (d *Directives) IsWhitespace(r rune) bool {
	return strings.ContainsRune(d.Whitespace, r)
}

// IsKeyword checks if an identifier is a reserved keyword.
func (d *Directives) IsKeyword(id string) bool {
	return d.keywords != nil && d.keywords.Contains(id)
}

// Keywords returns the keywords in lexicographical order.
func (d *Directives) Keywords() []string {
	if d.keywords == nil {
		return nil
	}
	kw := make([]string, 0, d.keywords.Size())
	for _, k := range d.keywords.Values() {
		kw = append(kw, k.(string))
	}
	return kw
}

// IsIdentChar checks if r may continue an identifier.
func (d *Directives) IsIdentChar(r rune) bool {
	return strings.ContainsRune(d.IdentChars, r)
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a set of rules together with global directives.
// Grammars are immutable after loading.
type Grammar struct {
	Name       string
	Directives Directives
	rules      map[string]*Rule
	first      *Rule
}

func newGrammar(name string) *Grammar {
	return &Grammar{
		Name:       name,
		Directives: newDirectives(),
		rules:      make(map[string]*Rule),
	}
}

// Rule looks up a rule by name.
func (g *Grammar) Rule(name string) (*Rule, bool) {
	r, ok := g.rules[name]
	return r, ok
}

// Start returns the start rule: either the rule named by a !start directive or
// the first rule of the grammar.
func (g *Grammar) Start() *Rule {
	if g.Directives.Start != "" {
		if r, ok := g.rules[g.Directives.Start]; ok {
			return r
		}
	}
	return g.first
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// RuleNames returns the names of all rules, sorted.
func (g *Grammar) RuleNames() []string {
	names := maps.Keys(g.rules)
	slices.Sort(names)
	return names
}

// Rules returns all rules in the order of the grammar source.
func (g *Grammar) Rules() []*Rule {
	rules := maps.Values(g.rules)
	slices.SortFunc(rules, func(a, b *Rule) bool {
		return a.Serial < b.Serial
	})
	return rules
}

// String renders the grammar in SBNF notation.
func (g *Grammar) String() string {
	var b strings.Builder
	d := &g.Directives
	ws := DefaultWhitespace
	if d.LineMode {
		ws = strings.ReplaceAll(ws, "\n", "")
	}
	if d.Whitespace != ws {
		fmt.Fprintf(&b, "!whitespace %q .\n", d.Whitespace)
	}
	if d.BlockComment[0] != "" {
		fmt.Fprintf(&b, "!comment %q %q .\n", d.BlockComment[0], d.BlockComment[1])
	}
	if len(d.LineComments) > 0 {
		b.WriteString("!linecomment")
		for _, lc := range d.LineComments {
			fmt.Fprintf(&b, " %q", lc)
		}
		b.WriteString(" .\n")
	}
	if kw := d.Keywords(); len(kw) > 0 {
		fmt.Fprintf(&b, "!keywords %s .\n", strings.Join(kw, " "))
	}
	if d.LineMode {
		b.WriteString("!linemode .\n")
	}
	if d.Encoding != "" {
		fmt.Fprintf(&b, "!encoding %q .\n", d.Encoding)
	}
	for _, ns := range d.Namespaces {
		if ns.Prefix != "" {
			fmt.Fprintf(&b, "!namespace %s %q .\n", ns.Prefix, ns.URI)
		} else {
			fmt.Fprintf(&b, "!namespace %q .\n", ns.URI)
		}
	}
	if d.IdentChars != "" {
		fmt.Fprintf(&b, "!identchars %q .\n", d.IdentChars)
	}
	if d.Start != "" {
		fmt.Fprintf(&b, "!start %s .\n", d.Start)
	}
	for _, r := range g.Rules() {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Dump is a debugging helper, tracing the rules of a grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------------", g.Name)
	for _, r := range g.Rules() {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------")
}
