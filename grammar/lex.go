package grammar

import (
	"fmt"
	"sync"

	"github.com/npillmayer/sbnf/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// Token types of the grammar notation. Literals get consecutive ids from
// tokLiteral on.
const (
	tokString = iota + 1
	tokRegex
	tokName
	tokNumber
	tokDirective
	tokLiteral = 32
)

// The tokens representing literal lexemes
var literals = []string{
	"::=", "<", ">", "?", "[", "]", "{", "}", "(", ")", "|", ".", ":", "=", "@",
	"^", "&", "%", "$", "#", "+#", "0x", ".#", "'", "*", "*<", "*|", "*'", "~",
}

// tokenIds will be set in initTokens()
var tokenIds map[string]int // A map from the token names to their token types

var initOnce sync.Once // monitors one-time initialization
var notationLexer *lexmach.LMAdapter
var notationLexerErr error

func initTokens() {
	tokenIds = map[string]int{
		"STRING":    tokString,
		"REGEX":     tokRegex,
		"NAME":      tokName,
		"NUMBER":    tokNumber,
		"DIRECTIVE": tokDirective,
	}
	for i, lit := range literals {
		tokenIds[lit] = tokLiteral + i
	}
}

// grammarLexer returns the lexer for SBNF grammar source. The DFA is compiled
// on first use.
func grammarLexer() (*lexmach.LMAdapter, error) {
	initOnce.Do(func() {
		initTokens()
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`\(\*([^*]|\*+[^*)])*\*+\)`), lexmach.Skip) // skip comments
			lexer.Add([]byte(`\"([^"\\\n]|\\[^\n])*\"`), makeToken("STRING"))
			lexer.Add([]byte(`/([^/\\\n]|\\[^\n])*/`), makeToken("REGEX"))
			lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_|\-)*`), makeToken("NAME"))
			lexer.Add([]byte(`[0-9]+`), makeToken("NUMBER"))
			lexer.Add([]byte(`\![a-z]+`), makeToken("DIRECTIVE"))
			lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
		}
		notationLexer, notationLexerErr = lexmach.NewLMAdapter(init, literals, nil, tokenIds)
		if notationLexerErr == nil {
			tracer().Debugf("grammar lexer compiled, %d literals", len(literals))
		}
	})
	return notationLexer, notationLexerErr
}

func makeToken(s string) lexmachine.Action {
	id, ok := tokenIds[s]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", s))
	}
	return lexmach.MakeToken(s, id)
}

func literalID(lit string) int {
	id, ok := tokenIds[lit]
	if !ok {
		panic(fmt.Errorf("unknown literal: %s", lit))
	}
	return id
}
