/*
Package scanner defines an interface for tokenizers, used to read SBNF grammar
source text.

A default implementation is an adapter for lexmachine, living in sub-package
`lexmach`. The grammar loader of package grammar uses it to split grammar text
into tokens; the descent over these tokens is hand-written.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/sbnf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sbnf.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("sbnf.scanner")
}

// EOF is the token type signalling the end of input.
const EOF sbnf.TokType = -1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() sbnf.Token
	SetErrorHandler(func(error))
}

// LogError is the default error reporting function for tokenizers.
func LogError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// lexmachine tokenizer.
type DefaultToken struct {
	kind   sbnf.TokType
	lexeme string
	Val    interface{}
	span   sbnf.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ sbnf.TokType, lexeme string, span sbnf.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() sbnf.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() sbnf.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.kind == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("%q@%d", t.lexeme, t.span.From())
}

// --- Peeking ---------------------------------------------------------------

// Lookahead wraps a tokenizer and buffers tokens to allow for peeking.
// Hand-written descent parsers usually need one or two tokens of lookahead.
type Lookahead struct {
	tok Tokenizer
	buf []sbnf.Token
}

// NewLookahead creates a peeking tokenizer on top of tok.
func NewLookahead(tok Tokenizer) *Lookahead {
	return &Lookahead{tok: tok, buf: make([]sbnf.Token, 0, 4)}
}

// Peek returns the n-th token ahead (0 = next token) without consuming it.
func (la *Lookahead) Peek(n int) sbnf.Token {
	for len(la.buf) <= n {
		la.buf = append(la.buf, la.tok.NextToken())
	}
	return la.buf[n]
}

// Next consumes and returns the next token.
func (la *Lookahead) Next() sbnf.Token {
	t := la.Peek(0)
	la.buf = la.buf[1:]
	return t
}

// SetErrorHandler is part of the Tokenizer interface.
func (la *Lookahead) SetErrorHandler(h func(error)) {
	la.tok.SetErrorHandler(h)
}

// NextToken is part of the Tokenizer interface.
func (la *Lookahead) NextToken() sbnf.Token {
	return la.Next()
}

var _ Tokenizer = (*Lookahead)(nil)
