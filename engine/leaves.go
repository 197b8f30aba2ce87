package engine

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/sbnf"
	"github.com/npillmayer/sbnf/grammar"
	"github.com/npillmayer/sbnf/result"
)

// capture is the outcome of scanning a leaf. The leaf consumes input up to end,
// with its content ranging from `from` to `to`.
type capture struct {
	from, to, end int
	value         interface{}
}

func skipsSpace(t grammar.NodeType) bool {
	switch t {
	case grammar.Ident, grammar.Unsigned, grammar.Signed, grammar.Hex, grammar.Float, grammar.Quoted:
		return true
	}
	return false
}

func resultKind(t grammar.NodeType) result.Kind {
	switch t {
	case grammar.Ident:
		return result.Ident
	case grammar.Unsigned, grammar.Signed, grammar.Hex:
		return result.Integer
	case grammar.Float:
		return result.Float
	}
	return result.String
}

// matchLeaf scans a leaf token. If the leaf refers to a nested rule, the captured
// text is re-parsed with that rule instead of being stored.
func (e *engine) matchLeaf(n *grammar.Node, parent result.Handle) bool {
	pos := e.pos
	if skipsSpace(n.Type) {
		pos = e.skipFrom(pos)
	}
	c, ok := e.scan(n, pos)
	if ok && n.MaxLen > 0 && utf8.RuneCountInString(e.input[c.from:c.to]) > n.MaxLen {
		ok = false
	}
	if !ok {
		e.fail(pos, n)
		return false
	}
	tag := e.resolveTag(n.Tag)
	if n.Nested != "" {
		return e.matchNested(n, c, tag, parent)
	}
	if tag != "" {
		h := e.tree.Append(tag, resultKind(n.Type), c.value, parent)
		leaf := e.tree.At(h)
		leaf.Text = e.input[pos:c.end]
		leaf.Span = sbnf.MakeSpan(pos, c.end)
	}
	e.advanceTo(c.end)
	return true
}

// matchNested re-parses the content of a capture with a rule.
func (e *engine) matchNested(n *grammar.Node, c capture, tag string, parent result.Handle) bool {
	rule, ok := e.g.Rule(n.Nested)
	if !ok {
		e.abort(unknownRule(&UnknownRuleError{Rule: n.Nested, From: e.rule.Name}))
		return false
	}
	if tag == "" {
		tag = rule.Tag
	}
	end := e.end
	e.advanceTo(c.from)
	e.end = c.to
	ok = e.matchRule(rule, tag, parent, nil)
	if ok {
		if q := e.skipFrom(e.pos); q < e.end {
			e.failText(q, "end of "+n.String())
			ok = false
		}
	}
	e.end = end
	if ok {
		e.advanceTo(c.end)
	}
	return ok
}

func (e *engine) scan(n *grammar.Node, pos int) (capture, bool) {
	text := e.text()
	switch n.Type {
	case grammar.Ident:
		return e.scanIdent(text, pos)
	case grammar.Unsigned:
		return scanInteger(text, pos, false)
	case grammar.Signed:
		return scanInteger(text, pos, true)
	case grammar.Hex:
		return scanHex(text, pos)
	case grammar.Float:
		return scanFloat(text, pos)
	case grammar.Quoted:
		return scanQuoted(text, pos)
	case grammar.ScanCharset:
		end := len(text)
		if i := strings.IndexAny(text[pos:], n.Text); i >= 0 {
			end = pos + i
		}
		return capture{pos, end, end, text[pos:end]}, true
	case grammar.ScanFromRight:
		return scanFromRight(text, pos, n.Text, n.Inclusive)
	case grammar.ScanTerminators:
		return scanTerminators(text, pos, n.Terms, n.Inclusive, n.IndentAware)
	case grammar.ScanOutsideQuotes:
		end := scanOutsideQuotes(text, pos, n.Text)
		return capture{pos, end, end, text[pos:end]}, true
	case grammar.Regex:
		loc := n.Regexp().FindStringIndex(text[pos:])
		if loc == nil {
			return capture{}, false
		}
		end := pos + loc[1]
		return capture{pos, end, end, text[pos:end]}, true
	}
	return capture{}, false
}

// --- Scanners --------------------------------------------------------------

func (e *engine) scanIdent(text string, pos int) (capture, bool) {
	r, size := utf8.DecodeRuneInString(text[pos:])
	if size == 0 || !(unicode.IsLetter(r) || r == '_') {
		return capture{}, false
	}
	end := pos + size
	for end < len(text) {
		r, size = utf8.DecodeRuneInString(text[end:])
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || e.dirs.IsIdentChar(r)) {
			break
		}
		end += size
	}
	id := text[pos:end]
	if e.dirs.IsKeyword(id) {
		return capture{}, false
	}
	return capture{pos, end, end, id}, true
}

func scanDigits(text string, pos int, isDigit func(byte) bool) int {
	for pos < len(text) && isDigit(text[pos]) {
		pos++
	}
	return pos
}

func isDecimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hasSign(text string, pos int) bool {
	return pos < len(text) && (text[pos] == '+' || text[pos] == '-')
}

func scanInteger(text string, pos int, signed bool) (capture, bool) {
	p := pos
	if signed && hasSign(text, p) {
		p++
	}
	end := scanDigits(text, p, isDecimal)
	if end == p {
		return capture{}, false
	}
	n, err := strconv.ParseInt(text[pos:end], 10, 64)
	if err != nil {
		return capture{}, false
	}
	return capture{pos, end, end, n}, true
}

// scanHex scans a hex number into an int64. Values beyond math.MaxInt64 do not match.
func scanHex(text string, pos int) (capture, bool) {
	p := pos
	if strings.HasPrefix(text[p:], "0x") || strings.HasPrefix(text[p:], "0X") {
		p += 2
	}
	end := scanDigits(text, p, isHex)
	if end == p {
		return capture{}, false
	}
	n, err := strconv.ParseInt(text[p:end], 16, 64)
	if err != nil {
		tracer().Debugf("hex number %s: %v", text[p:end], err)
		return capture{}, false
	}
	return capture{pos, end, end, n}, true
}

func scanFloat(text string, pos int) (capture, bool) {
	p := pos
	if hasSign(text, p) {
		p++
	}
	end := scanDigits(text, p, isDecimal)
	digits := end > p
	if end+1 < len(text) && text[end] == '.' && isDecimal(text[end+1]) {
		end = scanDigits(text, end+1, isDecimal)
		digits = true
	}
	if !digits {
		return capture{}, false
	}
	if end < len(text) && (text[end] == 'e' || text[end] == 'E') {
		x := end + 1
		if hasSign(text, x) {
			x++
		}
		if y := scanDigits(text, x, isDecimal); y > x {
			end = y
		}
	}
	f, err := strconv.ParseFloat(text[pos:end], 64)
	if err != nil {
		return capture{}, false
	}
	return capture{pos, end, end, f}, true
}

// scanQuoted scans a string enclosed in double or single quotes. A backslash
// escapes the following character.
func scanQuoted(text string, pos int) (capture, bool) {
	if pos >= len(text) || (text[pos] != '"' && text[pos] != '\'') {
		return capture{}, false
	}
	q := text[pos]
	var b strings.Builder
	for p := pos + 1; p < len(text); p++ {
		switch c := text[p]; {
		case c == q:
			return capture{pos + 1, p, p + 1, b.String()}, true
		case c == '\\' && p+1 < len(text):
			p++
			switch text[p] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(text[p])
			}
		default:
			b.WriteByte(c)
		}
	}
	return capture{}, false
}

// scanFromRight scans up to the rightmost character out of set on the current line.
func scanFromRight(text string, pos int, set string, inclusive bool) (capture, bool) {
	eol := len(text)
	if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
		eol = pos + i
	}
	i := strings.LastIndexAny(text[pos:eol], set)
	if i < 0 {
		return capture{}, false
	}
	to := pos + i
	end := to
	if inclusive {
		_, size := utf8.DecodeRuneInString(text[to:])
		end += size
	}
	return capture{pos, to, end, text[pos:to]}, true
}

// scanTerminators scans up to the first occurence of one of terms.
func scanTerminators(text string, pos int, terms []string, inclusive, indentAware bool) (capture, bool) {
	to, term := -1, ""
	for _, t := range terms {
		if i := strings.Index(text[pos:], t); i >= 0 && (to < 0 || i < to) {
			to, term = i, t
		}
	}
	if to < 0 {
		return capture{}, false
	}
	to += pos
	end := to
	if inclusive {
		end += len(term)
	}
	value := text[pos:to]
	if indentAware {
		value = dedent(value)
	}
	return capture{pos, to, end, value}, true
}

// scanOutsideQuotes returns the position of the first character out of set which
// is not within a quoted section.
func scanOutsideQuotes(text string, pos int, set string) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if r == '"' || r == '\'' {
			if c, ok := scanQuoted(text, pos); ok {
				pos = c.end
				continue
			}
			return len(text)
		}
		if strings.ContainsRune(set, r) {
			return pos
		}
		pos += size
	}
	return pos
}

// dedent removes the indentation common to all non-blank lines of a block of text.
// Leading and trailing blank lines are dropped.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) > 1 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if w := len(l) - len(strings.TrimLeft(l, " \t")); indent < 0 || w < indent {
			indent = w
		}
	}
	if indent <= 0 {
		return strings.Join(lines, "\n")
	}
	for i, l := range lines {
		if len(l) >= indent {
			lines[i] = l[indent:]
		} else {
			lines[i] = strings.TrimLeft(l, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
