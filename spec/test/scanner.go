package test

import (
	"fmt"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokenType int

const (
	tokenTypeKeyword tokenType = iota
	tokenTypeEqual
	tokenTypeSymbol
	tokenTypeEOFMarker
)

func (t tokenType) String() string {
	switch t {
	case tokenTypeKeyword:
		return "keyword"
	case tokenTypeEqual:
		return "'='"
	case tokenTypeSymbol:
		return "symbol"
	case tokenTypeEOFMarker:
		return "'$'"
	}
	return fmt.Sprintf("<unknown token type: %d>", int(t))
}

type token struct {
	typ    tokenType
	lexeme string
	col    int
}

var (
	lexer     *lexmachine.Lexer
	lexerErr  error
	lexerOnce sync.Once
)

func compiledLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		l := lexmachine.NewLexer()
		l.Add([]byte(`//[^\n]*`), skip)
		l.Add([]byte(`( |\t|\r|\n)+`), skip)
		l.Add([]byte(`[a-z]+(-[a-z]+)*`), makeToken(tokenTypeKeyword))
		l.Add([]byte(`=`), makeToken(tokenTypeEqual))
		l.Add([]byte(`(\"|<)[^ \t\r\n]*`), makeToken(tokenTypeSymbol))
		l.Add([]byte(`\$`), makeToken(tokenTypeEOFMarker))
		lexerErr = l.Compile()
		lexer = l
	})
	return lexer, lexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(typ tokenType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(typ), string(m.Bytes), m), nil
	}
}

// scan splits one line into tokens. Comments and white spaces are dropped.
func scan(line string) ([]*token, error) {
	l, err := compiledLexer()
	if err != nil {
		return nil, err
	}
	s, err := l.Scanner([]byte(line))
	if err != nil {
		return nil, err
	}

	var toks []*token
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		toks = append(toks, &token{
			typ:    tokenType(t.Type),
			lexeme: string(t.Lexeme),
			col:    t.StartColumn,
		})
	}
	return toks, nil
}
