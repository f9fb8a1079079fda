package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/nihei9/ffgram/grammar/symbol"
)

type alternativeID [32]byte

func (id alternativeID) String() string {
	return hex.EncodeToString(id[:])
}

func genAlternativeID(lhs symbol.Symbol, rhs []symbol.Symbol) alternativeID {
	seq := lhs.Byte()
	for _, sym := range rhs {
		seq = append(seq, sym.Byte()...)
	}
	return alternativeID(sha256.Sum256(seq))
}

// Alternative is one right-hand side of a non-terminal. An empty production is the single symbol
// symbol.Epsilon.
type Alternative struct {
	id      alternativeID
	lhs     symbol.Symbol
	num     int
	symbols []symbol.Symbol
	row     int
}

func newAlternative(lhs symbol.Symbol, rhs []symbol.Symbol, row int) (*Alternative, error) {
	if !lhs.IsNonTerminal() {
		return nil, fmt.Errorf("LHS must be a non-terminal symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	if len(rhs) == 0 {
		return nil, fmt.Errorf("RHS must contain at least one symbol; LHS: %v", lhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() || sym.IsEOF() {
			return nil, fmt.Errorf("a symbol of RHS must be a terminal, a non-terminal, or epsilon; LHS: %v, RHS: %v", lhs, rhs)
		}
		if sym.IsEpsilon() && len(rhs) > 1 {
			return nil, fmt.Errorf("epsilon must be the only symbol of RHS; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	return &Alternative{
		id:      genAlternativeID(lhs, rhs),
		lhs:     lhs,
		symbols: rhs,
		row:     row,
	}, nil
}

func (a *Alternative) LHS() symbol.Symbol {
	return a.lhs
}

// Num is the position of the alternative among the alternatives of its LHS, starting at 0.
func (a *Alternative) Num() int {
	return a.num
}

// Row is the source line the alternative was read from, or 0 when unknown.
func (a *Alternative) Row() int {
	return a.row
}

func (a *Alternative) ID() string {
	return a.id.String()
}

func (a *Alternative) Symbols() []symbol.Symbol {
	return append([]symbol.Symbol(nil), a.symbols...)
}

func (a *Alternative) Len() int {
	return len(a.symbols)
}

// IsEmpty reports whether the alternative is the empty production.
func (a *Alternative) IsEmpty() bool {
	return len(a.symbols) == 1 && a.symbols[0].IsEpsilon()
}

func (a *Alternative) equals(b *Alternative) bool {
	return a.id == b.id
}

func (a *Alternative) String() string {
	texts := make([]string, len(a.symbols))
	for i, sym := range a.symbols {
		texts[i] = sym.Text()
	}
	return fmt.Sprintf("%v -> %v", a.lhs, strings.Join(texts, " "))
}

// Occurrence is a place where a non-terminal appears on a right-hand side.
type Occurrence struct {
	Producer    symbol.Symbol
	Alternative *Alternative
	Position    int
}

// Suffix returns the symbols following the occurrence. It may be empty.
func (o *Occurrence) Suffix() []symbol.Symbol {
	return o.Alternative.symbols[o.Position+1:]
}
