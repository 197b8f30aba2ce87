package grammar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/sbnf"
	"github.com/npillmayer/sbnf/scanner"
	"github.com/timtadh/lexmachine/machines"
)

// Load reads grammar source text and creates a Grammar from it. name is used for
// error messages and as the name of the resulting grammar.
//
// If the grammar text is malformed, Load returns a *SyntaxError for the first
// problem found.
func Load(name, text string) (*Grammar, error) {
	lm, err := grammarLexer()
	if err != nil {
		return nil, fmt.Errorf("cannot create grammar lexer: %w", err)
	}
	sc, err := lm.Scanner(text)
	if err != nil {
		return nil, fmt.Errorf("cannot scan grammar %s: %w", name, err)
	}
	l := &loader{name: name, text: text, g: newGrammar(name)}
	sc.SetErrorHandler(l.scanError)
	l.la = scanner.NewLookahead(sc)
	if err = l.grammar(); err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	tracer().Infof("loaded grammar %s with %d rules", name, l.g.Size())
	return l.g, nil
}

// loader is a recursive descent parser for the SBNF notation.
type loader struct {
	name     string
	text     string
	g        *Grammar
	la       *scanner.Lookahead
	scanErr  error      // first error of the tokenizer
	startTok sbnf.Token // argument of !start, if any
}

func (l *loader) scanError(err error) {
	if l.scanErr != nil {
		return
	}
	offset := len(l.text)
	var ui *machines.UnconsumedInput
	if errors.As(err, &ui) {
		offset = ui.StartTC
	}
	msg := "unexpected character"
	if offset < len(l.text) {
		r, _ := utf8.DecodeRuneInString(l.text[offset:])
		msg = fmt.Sprintf("unexpected character %q", r)
	}
	l.scanErr = newSyntaxError(l.name, l.text, offset, msg)
}

func (l *loader) errorAt(tok sbnf.Token, format string, args ...interface{}) error {
	if l.scanErr != nil {
		return l.scanErr
	}
	return newSyntaxError(l.name, l.text, int(tok.Span().From()), fmt.Sprintf(format, args...))
}

func describe(tok sbnf.Token) string {
	if tok.TokType() == scanner.EOF {
		return "end of grammar"
	}
	return strconv.Quote(tok.Lexeme())
}

// --- Token helpers ---------------------------------------------------------

func isLit(tok sbnf.Token, lit string) bool {
	return int(tok.TokType()) == literalID(lit)
}

func (l *loader) peekIs(n int, lit string) bool {
	return isLit(l.la.Peek(n), lit)
}

func (l *loader) peekType(t sbnf.TokType) bool {
	return l.la.Peek(0).TokType() == t
}

// accept consumes the next token if it is lit.
func (l *loader) accept(lit string) bool {
	if l.peekIs(0, lit) {
		l.la.Next()
		return true
	}
	return false
}

func (l *loader) expect(lit string) error {
	if l.accept(lit) {
		return nil
	}
	tok := l.la.Peek(0)
	return l.errorAt(tok, "expected %q, found %s", lit, describe(tok))
}

func (l *loader) unquote(tok sbnf.Token) (string, error) {
	s, err := strconv.Unquote(tok.Lexeme())
	if err != nil {
		return "", l.errorAt(tok, "invalid string %s", tok.Lexeme())
	}
	return s, nil
}

// --- Top level -------------------------------------------------------------

func (l *loader) grammar() error {
	for {
		tok := l.la.Peek(0)
		var err error
		switch tok.TokType() {
		case scanner.EOF:
			return l.finish(tok)
		case tokDirective:
			err = l.directive()
		case tokName:
			err = l.rule()
		default:
			err = l.errorAt(tok, "expected rule or directive, found %s", describe(tok))
		}
		if err != nil {
			return err
		}
	}
}

func (l *loader) finish(eof sbnf.Token) error {
	if l.scanErr != nil {
		return l.scanErr
	}
	if l.g.first == nil {
		return l.errorAt(eof, "grammar has no rules")
	}
	d := &l.g.Directives
	if d.Start != "" {
		if _, ok := l.g.rules[d.Start]; !ok {
			return l.errorAt(l.startTok, "start rule %q not defined", d.Start)
		}
	}
	if d.LineMode {
		d.Whitespace = strings.ReplaceAll(d.Whitespace, "\n", "")
	}
	return nil
}

func (l *loader) rule() error {
	nameTok := l.la.Next()
	r := &Rule{
		Name:   nameTok.Lexeme(),
		Tag:    nameTok.Lexeme(),
		Serial: len(l.g.rules),
	}
	if l.accept("?") {
		r.Tag = ""
		if l.peekType(tokName) {
			r.Tag = l.la.Next().Lexeme()
		}
	}
	if err := l.expect("::="); err != nil {
		return err
	}
	alts, err := l.alts()
	if err != nil {
		return err
	}
	if err = l.expect("."); err != nil {
		return err
	}
	if _, dup := l.g.rules[r.Name]; dup {
		return l.errorAt(nameTok, "duplicate rule %q", r.Name)
	}
	r.Body = &Node{Type: AltSet, Alts: alts}
	l.g.rules[r.Name] = r
	if l.g.first == nil {
		l.g.first = r
	}
	tracer().Debugf("rule %s", r)
	return nil
}

// --- Rule bodies -----------------------------------------------------------

func (l *loader) alts() ([]Seq, error) {
	var alts []Seq
	for {
		seq, err := l.seq()
		if err != nil {
			return nil, err
		}
		alts = append(alts, seq)
		if !l.accept("|") {
			return alts, nil
		}
	}
}

func (l *loader) seq() (Seq, error) {
	var seq Seq
	for !l.endsSeq(l.la.Peek(0)) {
		n, err := l.element()
		if err != nil {
			return nil, err
		}
		seq = append(seq, n)
	}
	return seq, nil
}

func (l *loader) endsSeq(tok sbnf.Token) bool {
	if tok.TokType() == scanner.EOF {
		return true
	}
	for _, lit := range []string{"|", ".", "]", "}", ")", "?"} {
		if isLit(tok, lit) {
			return true
		}
	}
	return false
}

func (l *loader) element() (*Node, error) {
	tok := l.la.Next()
	switch {
	case tok.TokType() == tokString:
		s, err := l.unquote(tok)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, l.errorAt(tok, "empty terminal")
		}
		return l.terminalTag(&Node{Type: Terminal, Text: s})
	case tok.TokType() == tokName:
		return l.terminalTag(&Node{Type: Terminal, Text: tok.Lexeme()})
	case isLit(tok, "<"):
		return l.leaf()
	case isLit(tok, "["):
		return l.option(tok)
	case isLit(tok, "{"):
		return l.repetition(tok)
	case isLit(tok, "("):
		tag, err := l.groupTag()
		if err != nil {
			return nil, err
		}
		alts, err := l.alts()
		if err != nil {
			return nil, err
		}
		if err = l.expect(")"); err != nil {
			return nil, err
		}
		return &Node{Type: AltSet, Tag: tag, Alts: alts}, nil
	}
	return nil, l.errorAt(tok, "unexpected %s", describe(tok))
}

func (l *loader) terminalTag(n *Node) (*Node, error) {
	if l.accept(":") {
		tag, err := l.tag()
		if err != nil {
			return nil, err
		}
		n.Tag = tag
	}
	return n, nil
}

func (l *loader) option(open sbnf.Token) (*Node, error) {
	typ := Option
	if l.accept("?") {
		typ = Negative
	} else if l.accept("~") {
		typ = AltOptionCheckEmpty
	}
	tag, err := l.groupTag()
	if err != nil {
		return nil, err
	}
	if typ == Negative && tag != "" {
		return nil, l.errorAt(open, "negative lookahead cannot be tagged")
	}
	alts, err := l.alts()
	if err != nil {
		return nil, err
	}
	if err = l.expect("]"); err != nil {
		return nil, err
	}
	if typ == Option && len(alts) > 1 {
		typ = AltOption
	}
	return &Node{Type: typ, Tag: tag, Alts: alts}, nil
}

func (l *loader) repetition(open sbnf.Token) (*Node, error) {
	tag, err := l.groupTag()
	if err != nil {
		return nil, err
	}
	n := &Node{Type: Repetition, Tag: tag}
	if n.Alts, err = l.alts(); err != nil {
		return nil, err
	}
	if len(n.Alts) == 1 && len(n.Alts[0]) == 0 {
		return nil, l.errorAt(open, "empty repetition")
	}
	if l.accept("?") {
		if n.Cont, err = l.alts(); err != nil {
			return nil, err
		}
	}
	if err = l.expect("}"); err != nil {
		return nil, err
	}
	return n, nil
}

// groupTag reads an optional marker at the start of a group.
func (l *loader) groupTag() (string, error) {
	if !l.peekIs(0, "<") || !l.peekIs(1, "?") {
		return "", nil
	}
	l.la.Next()
	l.la.Next()
	tag, err := l.tag()
	if err != nil {
		return "", err
	}
	return tag, l.expect(">")
}

func (l *loader) tag() (string, error) {
	tok := l.la.Next()
	if tok.TokType() == tokName {
		return tok.Lexeme(), nil
	}
	if isLit(tok, "@") {
		return InheritTag, nil
	}
	return "", l.errorAt(tok, "expected tag, found %s", describe(tok))
}

func (l *loader) optTag() string {
	if l.peekType(tokName) || l.peekIs(0, "@") {
		tag, _ := l.tag()
		return tag
	}
	return ""
}

// --- Leaves ----------------------------------------------------------------

func (l *loader) leaf() (*Node, error) {
	switch {
	case l.accept("?"):
		tag, err := l.tag()
		if err != nil {
			return nil, err
		}
		return &Node{Type: Marker, Tag: tag}, l.expect(">")
	case l.accept("~"):
		return &Node{Type: SkipSpace}, l.expect(">")
	case l.peekType(tokName), l.peekIs(0, "^"), l.peekIs(0, "&"), l.peekIs(0, "%"):
		return l.ruleRef()
	}
	return l.leafToken()
}

func (l *loader) ruleRef() (*Node, error) {
	n := &Node{Type: RuleRef}
	for {
		if l.accept("^") {
			n.Produce = true
		} else if l.accept("&") {
			n.Accept = true
		} else if l.accept("%") {
			n.Propagate = true
		} else {
			break
		}
	}
	tok := l.la.Next()
	if tok.TokType() != tokName {
		return nil, l.errorAt(tok, "expected rule name, found %s", describe(tok))
	}
	n.Text = tok.Lexeme()
	if l.accept("?") {
		n.Override = true
		n.Tag = l.optTag()
	}
	return n, l.expect(">")
}

func (l *loader) leafToken() (*Node, error) {
	tok := l.la.Next()
	n := &Node{}
	var err error
	switch {
	case isLit(tok, "$"):
		n.Type = Ident
	case isLit(tok, "#"):
		n.Type = Unsigned
	case isLit(tok, "+#"):
		n.Type = Signed
	case isLit(tok, "0x"):
		n.Type = Hex
	case isLit(tok, ".#"):
		n.Type = Float
	case isLit(tok, "'"):
		n.Type = Quoted
	case isLit(tok, "*"):
		n.Type = ScanCharset
		n.Text, err = l.charset()
	case isLit(tok, "*<"):
		n.Type = ScanFromRight
		n.Inclusive = l.accept("=")
		n.Text, err = l.charset()
	case isLit(tok, "*'"):
		n.Type = ScanOutsideQuotes
		n.Text, err = l.charset()
	case isLit(tok, "*|"):
		n.Type = ScanTerminators
		err = l.terminators(n)
	case tok.TokType() == tokRegex:
		n.Type = Regex
		err = l.regex(tok, n)
	default:
		return nil, l.errorAt(tok, "unknown leaf %s", describe(tok))
	}
	if err != nil {
		return nil, err
	}
	if err = l.expect("?"); err != nil {
		return nil, err
	}
	n.Tag = l.optTag()
	if l.accept("=") {
		r := l.la.Next()
		if r.TokType() != tokName {
			return nil, l.errorAt(r, "expected rule name, found %s", describe(r))
		}
		n.Nested = r.Lexeme()
	}
	if l.accept(":") {
		num := l.la.Next()
		if num.TokType() != tokNumber {
			return nil, l.errorAt(num, "expected maximum length, found %s", describe(num))
		}
		if n.MaxLen, err = strconv.Atoi(num.Lexeme()); err != nil || n.MaxLen == 0 {
			return nil, l.errorAt(num, "invalid maximum length %s", num.Lexeme())
		}
	}
	return n, l.expect(">")
}

func (l *loader) charset() (string, error) {
	tok := l.la.Next()
	if tok.TokType() != tokString {
		return "", l.errorAt(tok, "expected character set, found %s", describe(tok))
	}
	s, err := l.unquote(tok)
	if err == nil && s == "" {
		err = l.errorAt(tok, "empty character set")
	}
	return s, err
}

func (l *loader) terminators(n *Node) error {
	for {
		if l.accept("=") {
			n.Inclusive = true
		} else if l.accept("~") {
			n.IndentAware = true
		} else {
			break
		}
	}
	for l.peekType(tokString) {
		tok := l.la.Next()
		t, err := l.unquote(tok)
		if err != nil {
			return err
		}
		if t == "" {
			return l.errorAt(tok, "empty terminator")
		}
		n.Terms = append(n.Terms, t)
	}
	if len(n.Terms) == 0 {
		tok := l.la.Peek(0)
		return l.errorAt(tok, "expected terminator, found %s", describe(tok))
	}
	return nil
}

func (l *loader) regex(tok sbnf.Token, n *Node) error {
	lx := tok.Lexeme()
	n.Text = strings.ReplaceAll(lx[1:len(lx)-1], `\/`, "/")
	if n.Text == "" {
		return l.errorAt(tok, "empty regular expression")
	}
	re, err := regexp.Compile(`^(?:` + n.Text + `)`)
	if err != nil {
		return l.errorAt(tok, "invalid regular expression: %v", err)
	}
	n.re = re
	return nil
}

// --- Directives ------------------------------------------------------------

func (l *loader) directive() error {
	tok := l.la.Next()
	name := tok.Lexeme()[1:]
	var args []sbnf.Token
	for !l.peekIs(0, ".") {
		arg := l.la.Peek(0)
		if arg.TokType() != tokString && arg.TokType() != tokName {
			return l.errorAt(arg, "unexpected %s in directive !%s", describe(arg), name)
		}
		args = append(args, l.la.Next())
	}
	l.la.Next()
	values := make([]string, len(args))
	for i, arg := range args {
		values[i] = arg.Lexeme()
		if arg.TokType() == tokString {
			s, err := l.unquote(arg)
			if err != nil {
				return err
			}
			values[i] = s
		}
	}
	argc := func(min, max int) error {
		if len(args) < min || (max >= 0 && len(args) > max) {
			return l.errorAt(tok, "wrong number of arguments for directive !%s", name)
		}
		return nil
	}
	d := &l.g.Directives
	var err error
	switch name {
	case "whitespace":
		if err = argc(1, 1); err == nil {
			d.Whitespace = values[0]
		}
	case "comment":
		if err = argc(2, 2); err == nil {
			if values[0] == "" || values[1] == "" {
				return l.errorAt(tok, "empty comment delimiter")
			}
			d.BlockComment = [2]string{values[0], values[1]}
		}
	case "linecomment":
		if err = argc(1, -1); err == nil {
			for _, v := range values {
				if v == "" {
					return l.errorAt(tok, "empty comment delimiter")
				}
			}
			d.LineComments = append(d.LineComments, values...)
		}
	case "keywords":
		if err = argc(1, -1); err == nil {
			for _, kw := range values {
				d.keywords.Add(kw)
			}
		}
	case "linemode":
		if err = argc(0, 0); err == nil {
			d.LineMode = true
		}
	case "encoding":
		if err = argc(1, 1); err == nil {
			d.Encoding = values[0]
		}
	case "namespace":
		if err = argc(1, 2); err == nil {
			ns := Namespace{URI: values[len(values)-1]}
			if len(args) == 2 {
				if args[0].TokType() != tokName {
					return l.errorAt(args[0], "namespace prefix must be a name")
				}
				ns.Prefix = values[0]
			}
			d.Namespaces = append(d.Namespaces, ns)
		}
	case "identchars":
		if err = argc(1, 1); err == nil {
			d.IdentChars = values[0]
		}
	case "start":
		if err = argc(1, 1); err == nil {
			if args[0].TokType() != tokName {
				return l.errorAt(args[0], "start rule must be a name")
			}
			d.Start = values[0]
			l.startTok = args[0]
		}
	default:
		return l.errorAt(tok, "unknown directive !%s", name)
	}
	return err
}
