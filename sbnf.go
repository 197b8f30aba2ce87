package sbnf

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to tokenizers to define them.
type TokType int

// Tokens represent input tokens. They are produced by a scanner and reflect
// terminals of a language, e.g. the terminals of the SBNF grammar notation.
//
// An example would be a token for a string literal:
//
//    TokType = String          // identifier for this kind of tokens
//    Lexeme  = "\"hello\""     // lexeme how it appeared in the input stream
//    Value   = "hello"         // a string value
//    Span    = 67…74           // occured from byte position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. For every
// token and every entry of a parse result we track which input positions
// it covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// MakeSpan creates a span from integer offsets.
func MakeSpan(from, to int) Span {
	return Span{uint64(from), uint64(to)}
}

// --- Positions --------------------------------------------------------

// LineCol returns the 1-based line and column of a byte offset within text.
// Columns count runes, not bytes.
func LineCol(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	line, col = 1, 1
	for _, r := range text[:offset] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return
}
