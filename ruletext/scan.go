package ruletext

import (
	"fmt"
	"sync"

	"github.com/npillmayer/grammatch/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// Token types of rule text.
const (
	tokNum   = iota + 1 // rule ID
	tokChar             // quoted terminal symbol
	tokColon            // ':'
	tokPipe             // '|'
)

var literals = []string{":", "|"}

var tokenIds = map[string]int{
	"NUM":  tokNum,
	"CHAR": tokChar,
	":":    tokColon,
	"|":    tokPipe,
}

var (
	lexerOnce sync.Once
	lexer     *lexmach.LMAdapter
	lexerErr  error
)

// Lexer returns the lexmachine adapter for rule text. The DFA is compiled
// once.
func Lexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		init := func(lx *lexmachine.Lexer) {
			lx.Add([]byte(`[0-9]+`), makeToken("NUM"))
			lx.Add([]byte(`\"[^"]+\"`), makeToken("CHAR"))
			lx.Add([]byte(`( |\t|\r)+`), lexmach.Skip)
		}
		lexer, lexerErr = lexmach.NewLMAdapter(init, literals, tokenIds)
	})
	return lexer, lexerErr
}

func makeToken(s string) lexmachine.Action {
	id, ok := tokenIds[s]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", s))
	}
	return lexmach.MakeToken(s, id)
}

func tokenName(t int) string {
	switch t {
	case tokNum:
		return "rule ID"
	case tokChar:
		return "terminal"
	case tokColon:
		return "':'"
	case tokPipe:
		return "'|'"
	}
	return "end of line"
}
