package grammar

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/nihei9/ffgram/grammar/symbol"
	"github.com/nihei9/ffgram/spec"
)

type setTable struct {
	nonTerms []symbol.Symbol
	sets     map[symbol.Symbol]*symbol.Set
}

func newSetTable(nonTerms []symbol.Symbol, sets map[symbol.Symbol]*symbol.Set) *setTable {
	t := &setTable{
		nonTerms: nonTerms,
		sets:     make(map[symbol.Symbol]*symbol.Set, len(nonTerms)),
	}
	for _, nt := range nonTerms {
		t.sets[nt] = sets[nt].Copy()
	}
	return t
}

// Of returns a copy of the set of nt. The second result is false when nt is not a defined non-terminal.
func (t *setTable) Of(nt symbol.Symbol) (*symbol.Set, bool) {
	s, ok := t.sets[nt]
	if !ok {
		return nil, false
	}
	return s.Copy(), true
}

// NonTerminals returns the keys of the table in definition order.
func (t *setTable) NonTerminals() []symbol.Symbol {
	return append([]symbol.Symbol(nil), t.nonTerms...)
}

// FirstTable maps each non-terminal to its FIRST set. The sets hold terminals and possibly epsilon.
type FirstTable struct {
	*setTable
}

// FollowTable maps each non-terminal to its FOLLOW set. The sets hold terminals and possibly the
// end-of-input marker.
type FollowTable struct {
	*setTable
}

type analysisConfig struct {
	maxFollowPasses int
}

type AnalysisOption func(config *analysisConfig)

// MaxFollowPasses overrides the bound on FOLLOW passes. Values less than 1 restore the default.
func MaxFollowPasses(n int) AnalysisOption {
	return func(config *analysisConfig) {
		config.maxFollowPasses = n
	}
}

// Analysis holds the FIRST and FOLLOW tables of a grammar. It is read-only once Analyze returns.
type Analysis struct {
	First  *FirstTable
	Follow *FollowTable

	gram      *Grammar
	first     *firstSet
	passes    int
	reachable map[symbol.Symbol]bool
}

// Analyze computes FIRST of every non-terminal and then FOLLOW of every non-terminal. Any error aborts the
// run; no table is returned alongside an error.
func Analyze(gram *Grammar, opts ...AnalysisOption) (*Analysis, error) {
	config := &analysisConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.maxFollowPasses < 1 {
		config.maxFollowPasses = maxFollowPasses(gram)
	}

	fst, err := genFirstSet(gram)
	if err != nil {
		return nil, err
	}
	flw, passes, err := genFollowSet(gram, fst, config.maxFollowPasses)
	if err != nil {
		return nil, err
	}

	nonTerms := gram.NonTerminals()
	firstSets := map[symbol.Symbol]*symbol.Set{}
	for _, nt := range nonTerms {
		firstSets[nt] = fst.set[nt].symbols
	}

	a := &Analysis{
		First: &FirstTable{
			setTable: newSetTable(nonTerms, firstSets),
		},
		Follow: &FollowTable{
			setTable: newSetTable(nonTerms, flw.set),
		},
		gram:      gram,
		first:     fst,
		passes:    passes,
		reachable: genReachable(gram),
	}
	tracer().Infof("analysis done: %v non-terminals, FOLLOW converged after %v passes", len(nonTerms), passes)
	for _, nt := range nonTerms {
		if !a.reachable[nt] {
			tracer().Infof("%v is unreachable from the start symbol %v", nt, gram.Start())
		}
	}

	return a, nil
}

func (a *Analysis) Grammar() *Grammar {
	return a.gram
}

// FollowPasses returns how many passes the FOLLOW computation needed, the confirming pass included.
func (a *Analysis) FollowPasses() int {
	return a.passes
}

// FirstOfSequence returns FIRST of an arbitrary sequence of terminals, non-terminals, and epsilon. Every
// non-terminal must be defined by the grammar.
func (a *Analysis) FirstOfSequence(syms []symbol.Symbol) (*symbol.Set, error) {
	for _, sym := range syms {
		if sym.IsNonTerminal() && !a.gram.Defines(sym) {
			return nil, fmt.Errorf("%w: %v", ErrUndefinedNonTerminal, sym)
		}
	}
	s, err := a.first.find(syms)
	if err != nil {
		return nil, err
	}
	return s.Copy(), nil
}

// Nullable reports whether nt derives the empty string.
func (a *Analysis) Nullable(nt symbol.Symbol) bool {
	s, ok := a.First.sets[nt]
	return ok && s.Contains(symbol.Epsilon)
}

// Reachable reports whether nt occurs in some derivation from the start symbol.
func (a *Analysis) Reachable(nt symbol.Symbol) bool {
	return a.reachable[nt]
}

func genReachable(gram *Grammar) map[symbol.Symbol]bool {
	reachable := map[symbol.Symbol]bool{
		gram.Start(): true,
	}
	queue := []symbol.Symbol{gram.Start()}
	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]
		for _, alt := range gram.AlternativesOf(nt) {
			for _, sym := range alt.symbols {
				if !sym.IsNonTerminal() || reachable[sym] {
					continue
				}
				reachable[sym] = true
				queue = append(queue, sym)
			}
		}
	}
	return reachable
}

// Report converts the analysis into its printable form.
func (a *Analysis) Report() *spec.Report {
	r := &spec.Report{
		Start: a.gram.Start().Text(),
	}
	for _, t := range a.gram.Terminals() {
		r.Terminals = append(r.Terminals, t.Text())
	}
	for _, nt := range a.gram.NonTerminals() {
		ntr := &spec.NonTerminal{
			Name:      nt.Text(),
			First:     a.First.sets[nt].Texts(),
			Follow:    a.Follow.sets[nt].Texts(),
			Nullable:  a.Nullable(nt),
			Reachable: a.reachable[nt],
		}
		for _, alt := range a.gram.AlternativesOf(nt) {
			var syms []string
			for _, sym := range alt.Symbols() {
				syms = append(syms, sym.Text())
			}
			ntr.Alternatives = append(ntr.Alternatives, &spec.Alternative{
				Number:  alt.Num(),
				Row:     alt.Row(),
				Symbols: syms,
			})
		}
		r.NonTerminals = append(r.NonTerminals, ntr)
	}
	return r
}

// Fingerprint returns a digest of the report. Analyzing an unchanged grammar again yields the same
// fingerprint.
func (a *Analysis) Fingerprint() (string, error) {
	return structhash.Hash(a.Report(), 1)
}
