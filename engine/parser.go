package engine

import (
	"fmt"

	"github.com/npillmayer/sbnf/grammar"
	"github.com/npillmayer/sbnf/result"
	"github.com/npillmayer/schuko/gconf"
)

// Default values for configuration keys.
const (
	DefaultMaxDepth     = 5000
	DefaultSnapshotSize = 5
	DefaultExcerptWidth = 60
)

// Parser matches input texts against a grammar. A parser is not reentrant, but
// different parsers may share a grammar and run concurrently.
type Parser struct {
	g            *grammar.Grammar
	start        string
	skipLeading  bool
	maxDepth     int
	snapshotSize int
	excerptWidth int
	encoding     string
	tree         *result.Tree
	diag         *Diagnostics
}

// Option configures a parser.
type Option func(*Parser)

// StartAt sets the start rule, overriding the start rule of the grammar.
func StartAt(rule string) Option {
	return func(p *Parser) {
		p.start = rule
	}
}

// SkipLeading controls whether whitespace and comments at the start of the input
// are skipped before matching the start rule. Default is true.
func SkipLeading(skip bool) Option {
	return func(p *Parser) {
		p.skipLeading = skip
	}
}

// MaxDepth sets the maximum nesting depth of rule matching.
func MaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithEncoding sets the encoding of input passed to Parse, overriding the
// !encoding directive of the grammar.
func WithEncoding(encoding string) Option {
	return func(p *Parser) {
		p.encoding = encoding
	}
}

// NewParser creates a parser for a grammar.
func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{
		g:            g,
		skipLeading:  true,
		maxDepth:     configInt("sbnf.max-depth", DefaultMaxDepth),
		snapshotSize: configInt("sbnf.snapshot-size", DefaultSnapshotSize),
		excerptWidth: configInt("sbnf.excerpt-width", DefaultExcerptWidth),
		encoding:     g.Directives.Encoding,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func configInt(key string, dflt int) int {
	if n := gconf.GetInt(key); n > 0 {
		return n
	}
	return dflt
}

// Seed is a tag/value pair, injected into the result of a parse.
type Seed struct {
	Tag   string
	Value interface{}
}

func seedTree(seeds []Seed) *result.Tree {
	t := result.NewTree()
	for _, s := range seeds {
		var h result.Handle
		switch v := s.Value.(type) {
		case int:
			h = t.Append(s.Tag, result.Integer, int64(v), result.NoHandle)
		case int64:
			h = t.Append(s.Tag, result.Integer, v, result.NoHandle)
		case float64:
			h = t.Append(s.Tag, result.Float, v, result.NoHandle)
		case string:
			h = t.Append(s.Tag, result.String, v, result.NoHandle)
		default:
			h = t.Append(s.Tag, result.String, fmt.Sprint(v), result.NoHandle)
		}
		t.At(h).Text = fmt.Sprint(s.Value)
	}
	return t
}

// Parse matches input against the grammar. Seeds are inserted as the first
// children of the top-level result entry.
//
// Parse returns false if the input does not match; Diagnostics will then tell
// why. An error is returned for problems with the grammar (e.g., an UnknownRuleError)
// or with decoding the input, never for syntax errors in the input.
func (p *Parser) Parse(input []byte, seeds ...Seed) (bool, error) {
	text, err := decode(input, p.encoding)
	if err != nil {
		p.tree, p.diag = result.NewTree(), nil
		return false, err
	}
	return p.ParseString(text, seeds...)
}

// ParseString is like Parse for input which is already UTF-8 encoded.
func (p *Parser) ParseString(input string, seeds ...Seed) (bool, error) {
	p.tree, p.diag = result.NewTree(), nil
	start := p.g.Start()
	if p.start != "" {
		r, ok := p.g.Rule(p.start)
		if !ok {
			return false, unknownRule(&UnknownRuleError{Rule: p.start})
		}
		start = r
	}
	e := newEngine(p.g, input, p.maxDepth, p.snapshotSize)
	ok := e.run(start, p.skipLeading, seeds)
	if e.err != nil {
		tracer().Errorf("parse aborted: %v", e.err)
		return false, e.err
	}
	if !ok {
		p.diag = makeDiagnostics(input, e.track, p.excerptWidth)
		tracer().Infof("input does not match %s, rightmost failure at %d:%d",
			start.Name, p.diag.Line(), p.diag.Column())
		return false, nil
	}
	p.tree = e.tree
	tracer().Infof("input matches %s, %d result entries", start.Name, p.tree.Len())
	return true, nil
}

// Result returns the result tree of the last successful parse. After a failed
// parse, the tree is empty.
func (p *Parser) Result() *result.Tree {
	if p.tree == nil {
		return result.NewTree()
	}
	return p.tree
}

// Diagnostics returns the diagnostics of the last failed parse, or nil if the last
// parse succeeded.
func (p *Parser) Diagnostics() *Diagnostics {
	return p.diag
}
