package grammar

import (
	"fmt"

	verr "github.com/nihei9/ffgram/error"
	"github.com/nihei9/ffgram/grammar/symbol"
)

type followSet struct {
	set map[symbol.Symbol]*symbol.Set
}

func newFollow(gram *Grammar) *followSet {
	flw := &followSet{
		set: map[symbol.Symbol]*symbol.Set{},
	}
	for _, nt := range gram.NonTerminals() {
		flw.set[nt] = symbol.NewSet()
	}
	return flw
}

func (flw *followSet) find(sym symbol.Symbol) (*symbol.Set, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %v", sym)
	}
	return e, nil
}

type followComContext struct {
	gram   *Grammar
	first  *firstSet
	follow *followSet
}

func newFollowComContext(gram *Grammar, first *firstSet) *followComContext {
	return &followComContext{
		gram:   gram,
		first:  first,
		follow: newFollow(gram),
	}
}

// maxFollowPasses bounds the passes monotone growth can ever need: every pass but the last adds at least
// one symbol, and a table holds at most |N| * (|T| + 1) symbols.
func maxFollowPasses(gram *Grammar) int {
	return len(gram.NonTerminals())*(len(gram.Terminals())+1) + 1
}

// genFollowSet applies the FOLLOW rules to every occurrence of every non-terminal until a whole pass
// changes nothing. first must be complete. It returns the table and the number of passes run.
func genFollowSet(gram *Grammar, first *firstSet, maxPasses int) (*followSet, int, error) {
	cc := newFollowComContext(gram, first)

	e, err := cc.follow.find(gram.Start())
	if err != nil {
		return nil, 0, err
	}
	e.Add(symbol.EOF)

	ntsyms := gram.NonTerminals()
	for pass := 1; ; pass++ {
		if pass > maxPasses {
			return nil, 0, &verr.SpecError{
				Cause:  ErrFixedPointNonConvergence,
				Detail: fmt.Sprintf("no fixed point within %v passes", maxPasses),
			}
		}

		more := false
		for _, ntsym := range ntsyms {
			changed, err := genFollowEntry(cc, ntsym)
			if err != nil {
				return nil, 0, err
			}
			if changed {
				more = true
			}
		}
		tracer().Debugf("FOLLOW pass %v: changed: %v", pass, more)
		if !more {
			return cc.follow, pass, nil
		}
	}
}

func genFollowEntry(cc *followComContext, ntsym symbol.Symbol) (bool, error) {
	acc, err := cc.follow.find(ntsym)
	if err != nil {
		return false, err
	}

	changed := false
	for _, occ := range cc.gram.OccurrencesOf(ntsym) {
		fst, err := cc.first.find(occ.Suffix())
		if err != nil {
			return false, err
		}
		if acc.MergeExcept(fst, symbol.Epsilon) {
			changed = true
		}
		if !fst.Contains(symbol.Epsilon) {
			continue
		}
		// A non-terminal at the end of its own alternative adds nothing to itself.
		if occ.Producer == ntsym {
			continue
		}
		flw, err := cc.follow.find(occ.Producer)
		if err != nil {
			return false, err
		}
		if acc.Merge(flw) {
			changed = true
		}
	}

	return changed, nil
}
