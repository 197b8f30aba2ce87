package lexmach

import (
	"strings"
	"unicode"

	"github.com/npillmayer/sbnf"
	"github.com/npillmayer/sbnf/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'sbnf.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("sbnf.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', '::=', …), a list of keywords and a
// map for translating token strings to their values.
//
// Literals are added after the patterns of init. Lexmachine prefers the longest
// match, and for matches of equal length the pattern added first.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(quoteLiteral(lit)), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// quoteLiteral escapes every non-alphanumeric character of a literal.
func quoteLiteral(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, scanner.LogError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = scanner.LogError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
//
// Unconsumable input is reported to the error handler and skipped.
// Token spans are byte offsets into the input.
func (lms *LMScanner) NextToken() sbnf.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			if ui.FailTC > lms.scanner.TC {
				lms.scanner.TC = ui.FailTC
			} else {
				lms.scanner.TC++
			}
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		end := uint64(lms.scanner.TC)
		return scanner.MakeDefaultToken(scanner.EOF, "", sbnf.Span{end, end})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d | %q", token.Type, token.Lexeme)
	return scanner.MakeDefaultToken(
		sbnf.TokType(token.Type),
		string(token.Lexeme),
		sbnf.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
