package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindWord    = tokenKind("word")
	tokenKindArrow   = tokenKind("->")
	tokenKindNewline = tokenKind("newline")
	tokenKindEOF     = tokenKind("eof")
	tokenKindInvalid = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newWordToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindWord,
		text: text,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

// A word is a maximal run of chunks and dashes. An arrow always splits words, even without surrounding
// spaces, so `<A>-><B>` reads as `<A> -> <B>`.
const (
	lexKindWhiteSpace = "white_space"
	lexKindNewline    = "newline"
	lexKindArrow      = "arrow"
	lexKindDash       = "dash"
	lexKindChunk      = "chunk"
)

var lexSpec = &mlspec.LexSpec{
	Name: "ffgram",
	Entries: []*mlspec.LexEntry{
		{
			Kind:    lexKindWhiteSpace,
			Pattern: `[\u{0009}\u{0020}]+`,
		},
		{
			Kind:    lexKindNewline,
			Pattern: `\u{000A}|\u{000D}|\u{000D}\u{000A}`,
		},
		{
			Kind:    lexKindArrow,
			Pattern: `\u{002D}\u{003E}`,
		},
		{
			Kind:    lexKindDash,
			Pattern: `\u{002D}`,
		},
		{
			Kind:    lexKindChunk,
			Pattern: `[^\u{0009}\u{000A}\u{000D}\u{0020}\u{002D}]+`,
		},
	},
}

var (
	compileOnce sync.Once
	clexSpec    *mlspec.CompiledLexSpec
	compileErr  error
)

func compiledLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileOnce.Do(func() {
		var cErrs []*mlcompiler.CompileError
		clexSpec, compileErr, cErrs = mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if compileErr != nil && len(cErrs) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, "%v: %v", cErrs[0].Kind, cErrs[0].Cause)
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n%v: %v", cerr.Kind, cerr.Cause)
			}
			compileErr = fmt.Errorf("cannot compile the lexical specification: %v", b.String())
		}
	})
	return clexSpec, compileErr
}

type lexer struct {
	s   *mlspec.CompiledLexSpec
	d   *mldriver.Lexer
	buf []*token
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

func (l *lexer) next() (*token, error) {
	if len(l.buf) > 0 {
		tok := l.buf[0]
		l.buf = l.buf[1:]
		return tok, nil
	}

	var word strings.Builder
	var wordPos Position
	for {
		tok, err := l.d.Next()
		if err != nil {
			return nil, err
		}
		pos := newPosition(tok.Row+1, tok.Col+1)

		var delim *token
		switch {
		case tok.EOF:
			delim = newEOFToken(pos)
		case tok.Invalid:
			delim = newInvalidToken(string(tok.Lexeme), pos)
		default:
			switch l.s.KindNames[tok.KindID].String() {
			case lexKindChunk, lexKindDash:
				if word.Len() == 0 {
					wordPos = pos
				}
				word.Write(tok.Lexeme)
				continue
			case lexKindWhiteSpace:
				if word.Len() == 0 {
					continue
				}
				return newWordToken(word.String(), wordPos), nil
			case lexKindArrow:
				delim = newSymbolToken(tokenKindArrow, pos)
			case lexKindNewline:
				delim = newSymbolToken(tokenKindNewline, pos)
			default:
				delim = newInvalidToken(string(tok.Lexeme), pos)
			}
		}

		if word.Len() > 0 {
			l.buf = append(l.buf, delim)
			return newWordToken(word.String(), wordPos), nil
		}
		return delim, nil
	}
}
