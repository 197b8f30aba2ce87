package grammar

import (
	"fmt"

	"github.com/npillmayer/sbnf"
)

// SyntaxError is returned by Load for malformed grammar source text.
type SyntaxError struct {
	Source string // name of the grammar
	Offset int    // byte offset into the grammar source
	Line   int
	Col    int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Col, e.Msg)
}

func newSyntaxError(source, text string, offset int, msg string) *SyntaxError {
	line, col := sbnf.LineCol(text, offset)
	return &SyntaxError{
		Source: source,
		Offset: offset,
		Line:   line,
		Col:    col,
		Msg:    msg,
	}
}
