package grammar

import (
	"fmt"
	"strings"

	verr "github.com/nihei9/ffgram/error"
	"github.com/nihei9/ffgram/grammar/symbol"
)

type firstState int

const (
	firstStateNotStarted firstState = iota
	firstStateInProgress
	firstStateDone
)

type firstEntry struct {
	state   firstState
	symbols *symbol.Set
}

// firstSet memoizes FIRST of every non-terminal. An entry in progress that is requested again means the
// non-terminal can derive a sequence starting with itself.
type firstSet struct {
	gram    *Grammar
	set     map[symbol.Symbol]*firstEntry
	pending []symbol.Symbol
	alts    []*Alternative
}

func newFirstSet(gram *Grammar) *firstSet {
	fst := &firstSet{
		gram: gram,
		set:  map[symbol.Symbol]*firstEntry{},
	}
	for _, nt := range gram.NonTerminals() {
		fst.set[nt] = &firstEntry{}
	}
	return fst
}

// find returns FIRST of a sequence of symbols. FIRST of an empty sequence is {epsilon}.
func (fst *firstSet) find(syms []symbol.Symbol) (*symbol.Set, error) {
	acc := symbol.NewSet()
	for _, sym := range syms {
		switch {
		case sym.IsTerminal():
			acc.Add(sym)
			return acc, nil
		case sym.IsEpsilon():
			continue
		case sym.IsNonTerminal():
			e, err := fst.findBySymbol(sym)
			if err != nil {
				return nil, err
			}
			acc.MergeExcept(e, symbol.Epsilon)
			if !e.Contains(symbol.Epsilon) {
				return acc, nil
			}
		default:
			return nil, fmt.Errorf("a symbol cannot appear in a sequence; symbol: %v (%v)", sym, sym.Kind())
		}
	}
	acc.Add(symbol.Epsilon)
	return acc, nil
}

// findBySymbol returns FIRST of a non-terminal, computing it on the first request.
func (fst *firstSet) findBySymbol(nt symbol.Symbol) (*symbol.Set, error) {
	e, ok := fst.set[nt]
	if !ok {
		return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %v", nt)
	}
	switch e.state {
	case firstStateDone:
		return e.symbols, nil
	case firstStateInProgress:
		return nil, fst.leftRecursionError(nt)
	}

	e.state = firstStateInProgress
	fst.pending = append(fst.pending, nt)

	acc := symbol.NewSet()
	for _, alt := range fst.gram.AlternativesOf(nt) {
		if alt.IsEmpty() {
			acc.Add(symbol.Epsilon)
			continue
		}
		fst.alts = append(fst.alts, alt)
		s, err := fst.find(alt.symbols)
		if err != nil {
			return nil, err
		}
		fst.alts = fst.alts[:len(fst.alts)-1]
		acc.Merge(s)
	}

	fst.pending = fst.pending[:len(fst.pending)-1]
	e.symbols = acc
	e.state = firstStateDone
	tracer().Debugf("FIRST(%v) = %v", nt, acc)

	return acc, nil
}

// leftRecursionError names nt and the cycle leading from nt back to itself, e.g.
// `<A> (cycle: <A> -> <B> -> <A>)`.
func (fst *firstSet) leftRecursionError(nt symbol.Symbol) error {
	var path []string
	for i, sym := range fst.pending {
		if sym != nt {
			continue
		}
		for _, s := range fst.pending[i:] {
			path = append(path, s.Text())
		}
		break
	}
	path = append(path, nt.Text())

	var row int
	if len(fst.alts) > 0 {
		row = fst.alts[len(fst.alts)-1].row
	}
	return &verr.SpecError{
		Cause:  ErrLeftRecursion,
		Detail: fmt.Sprintf("%v (cycle: %v)", nt, strings.Join(path, " -> ")),
		Row:    row,
	}
}

// genFirstSet computes FIRST of every non-terminal in definition order.
func genFirstSet(gram *Grammar) (*firstSet, error) {
	fst := newFirstSet(gram)
	for _, nt := range gram.NonTerminals() {
		_, err := fst.findBySymbol(nt)
		if err != nil {
			return nil, err
		}
	}
	return fst, nil
}
