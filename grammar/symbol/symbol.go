package symbol

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/utils"
)

type SymbolError struct {
	message string
}

func newSymbolError(message string) *SymbolError {
	return &SymbolError{
		message: message,
	}
}

func (e *SymbolError) Error() string {
	return e.message
}

var ErrUnclassifiableSymbol = newSymbolError("unclassifiable symbol")

type Kind int

const (
	KindTerminal Kind = iota
	KindNonTerminal
	KindEpsilon
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindNonTerminal:
		return "non-terminal"
	case KindEpsilon:
		return "epsilon"
	case KindEOF:
		return "end-of-input"
	}
	return "?"
}

const (
	// TextEpsilon is how the empty-production marker is spelled in a grammar source.
	TextEpsilon = "<epsilon>"

	// TextEOF is reserved for the end-of-input marker. It never appears in a grammar source.
	TextEOF = "$"

	prefixTerminal    = `"`
	prefixNonTerminal = "<"
)

// Symbol is a grammar symbol. The zero value is not a valid symbol.
type Symbol struct {
	kind Kind
	text string
}

var (
	Epsilon = Symbol{kind: KindEpsilon, text: TextEpsilon}
	EOF     = Symbol{kind: KindEOF, text: TextEOF}
)

func NewTerminal(lexeme string) Symbol {
	return Symbol{kind: KindTerminal, text: lexeme}
}

func NewNonTerminal(name string) Symbol {
	return Symbol{kind: KindNonTerminal, text: name}
}

// Classify determines the kind of a raw token of a right-hand side.
func Classify(token string) (Symbol, error) {
	switch {
	case token == TextEpsilon:
		return Epsilon, nil
	case strings.HasPrefix(token, prefixTerminal):
		return NewTerminal(token), nil
	case strings.HasPrefix(token, prefixNonTerminal):
		return NewNonTerminal(token), nil
	case token == TextEOF:
		return Symbol{}, fmt.Errorf("%w: %v is reserved for the end-of-input marker", ErrUnclassifiableSymbol, token)
	}
	return Symbol{}, fmt.Errorf("%w: %v", ErrUnclassifiableSymbol, token)
}

func (s Symbol) Kind() Kind {
	return s.kind
}

func (s Symbol) Text() string {
	return s.text
}

func (s Symbol) IsNil() bool {
	return s.text == ""
}

func (s Symbol) IsTerminal() bool {
	return !s.IsNil() && s.kind == KindTerminal
}

func (s Symbol) IsNonTerminal() bool {
	return !s.IsNil() && s.kind == KindNonTerminal
}

func (s Symbol) IsEpsilon() bool {
	return s == Epsilon
}

func (s Symbol) IsEOF() bool {
	return s == EOF
}

func (s Symbol) String() string {
	return s.text
}

// Byte returns a byte representation that identifies the symbol.
func (s Symbol) Byte() []byte {
	b := make([]byte, 0, len(s.text)+2)
	b = append(b, byte(s.kind))
	b = append(b, s.text...)
	return append(b, 0)
}

// Compare orders symbols: terminals by lexeme, then non-terminals by name, then epsilon, then the
// end-of-input marker. It satisfies utils.Comparator.
func Compare(a, b interface{}) int {
	s1 := a.(Symbol)
	s2 := b.(Symbol)
	if s1.kind != s2.kind {
		return utils.IntComparator(int(s1.kind), int(s2.kind))
	}
	return utils.StringComparator(s1.text, s2.text)
}

// SymbolTable records the terminals and non-terminals of a grammar in the order they were first seen.
type SymbolTable struct {
	text2Sym     map[string]Symbol
	nonTermTexts []string
	termTexts    []string
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{},
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

// Register records sym. Epsilon and the end-of-input marker are not recorded.
func (w *SymbolTableWriter) Register(sym Symbol) {
	if !sym.IsTerminal() && !sym.IsNonTerminal() {
		return
	}
	if _, ok := w.text2Sym[sym.text]; ok {
		return
	}
	w.text2Sym[sym.text] = sym
	if sym.IsTerminal() {
		w.termTexts = append(w.termTexts, sym.text)
	} else {
		w.nonTermTexts = append(w.nonTermTexts, sym.text)
	}
}

func (r *SymbolTableReader) ToSymbol(text string) (Symbol, bool) {
	sym, ok := r.text2Sym[text]
	return sym, ok
}

func (r *SymbolTableReader) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, len(r.termTexts))
	for _, text := range r.termTexts {
		syms = append(syms, r.text2Sym[text])
	}
	return syms
}

func (r *SymbolTableReader) NonTerminalTexts() []string {
	return append([]string(nil), r.nonTermTexts...)
}
