package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/sbnf"
	"github.com/npillmayer/sbnf/grammar"
	"github.com/npillmayer/sbnf/result"
)

// skipWhitespace returns the position behind a run of whitespace starting at pos.
func (e *engine) skipWhitespace(pos int) int {
	text := e.text()
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !e.dirs.IsWhitespace(r) {
			break
		}
		pos += size
	}
	return pos
}

// skipBlockComment returns the position behind a block comment starting at pos.
// Unterminated comments are not skipped.
func (e *engine) skipBlockComment(pos int) int {
	open, close := e.dirs.BlockComment[0], e.dirs.BlockComment[1]
	text := e.text()
	if open == "" || !strings.HasPrefix(text[pos:], open) {
		return pos
	}
	end := strings.Index(text[pos+len(open):], close)
	if end < 0 {
		return pos
	}
	return pos + len(open) + end + len(close)
}

// skipLineComment returns the position of the end of line if a line comment starts
// at pos. The newline itself is not skipped.
func (e *engine) skipLineComment(pos int) int {
	text := e.text()
	for _, lc := range e.dirs.LineComments {
		if strings.HasPrefix(text[pos:], lc) {
			if eol := strings.IndexByte(text[pos:], '\n'); eol >= 0 {
				return pos + eol
			}
			return len(text)
		}
	}
	return pos
}

// skipOnce skips whitespace, a block comment and a line comment, in that order.
func (e *engine) skipOnce(pos int) int {
	pos = e.skipWhitespace(pos)
	pos = e.skipBlockComment(pos)
	return e.skipLineComment(pos)
}

// skipFrom returns the position behind all whitespace and comments starting at pos.
func (e *engine) skipFrom(pos int) int {
	for {
		q := e.skipOnce(pos)
		if q == pos {
			return pos
		}
		pos = q
	}
}

// matchTerminal compares a literal with the input. The literal is tested again
// after each skipping step (whitespace, block comment, line comment), so a literal
// which starts like a comment is matched as a literal.
func (e *engine) matchTerminal(n *grammar.Node, parent result.Handle) bool {
	text := e.text()
	pos, found := e.seekLiteral(text, e.pos, n.Text)
	if !found {
		e.fail(pos, n)
		return false
	}
	if tag := e.resolveTag(n.Tag); tag != "" {
		h := e.tree.Append(tag, result.Terminal, n.Text, parent)
		t := e.tree.At(h)
		t.Text = n.Text
		t.Span = sbnf.MakeSpan(pos, pos+len(n.Text))
	}
	e.advanceTo(pos + len(n.Text))
	return true
}

// seekLiteral skips whitespace and comments step by step, until lit matches or
// nothing can be skipped any more. It returns the position of the literal or
// the position where skipping stopped.
func (e *engine) seekLiteral(text string, pos int, lit string) (int, bool) {
	steps := [...]func(int) int{e.skipWhitespace, e.skipBlockComment, e.skipLineComment}
	for {
		start := pos
		for _, skip := range steps {
			if strings.HasPrefix(text[pos:], lit) {
				return pos, true
			}
			pos = skip(pos)
		}
		if pos == start {
			return pos, false
		}
	}
}
