package grammar

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	verr "github.com/nihei9/ffgram/error"
	"github.com/nihei9/ffgram/grammar/symbol"
	"github.com/nihei9/ffgram/spec"
)

// Grammar maps each non-terminal to its alternatives. Non-terminals keep the order in which they were
// first defined; the first one is the start symbol. A Grammar never changes after GrammarBuilder.Build
// returns it.
type Grammar struct {
	alternatives *linkedhashmap.Map // symbol.Symbol -> []*Alternative
	occurrences  map[symbol.Symbol][]*Occurrence
	symbolTable  *symbol.SymbolTableReader
	start        symbol.Symbol
}

// Start returns the start symbol.
func (g *Grammar) Start() symbol.Symbol {
	return g.start
}

// NonTerminals returns every defined non-terminal in definition order.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	keys := g.alternatives.Keys()
	syms := make([]symbol.Symbol, len(keys))
	for i, k := range keys {
		syms[i] = k.(symbol.Symbol)
	}
	return syms
}

// Terminals returns every terminal appearing in the grammar in the order of first appearance.
func (g *Grammar) Terminals() []symbol.Symbol {
	return g.symbolTable.TerminalSymbols()
}

// Defines reports whether nt has at least one alternative.
func (g *Grammar) Defines(nt symbol.Symbol) bool {
	_, ok := g.alternatives.Get(nt)
	return ok
}

// ToSymbol resolves the text of a terminal or non-terminal appearing in the grammar.
func (g *Grammar) ToSymbol(text string) (symbol.Symbol, bool) {
	return g.symbolTable.ToSymbol(text)
}

// AlternativesOf returns the alternatives of nt in the order they were added.
func (g *Grammar) AlternativesOf(nt symbol.Symbol) []*Alternative {
	v, ok := g.alternatives.Get(nt)
	if !ok {
		return nil
	}
	return v.([]*Alternative)
}

// Alternatives returns all alternatives, grouped by non-terminal in definition order.
func (g *Grammar) Alternatives() []*Alternative {
	var alts []*Alternative
	it := g.alternatives.Iterator()
	for it.Next() {
		alts = append(alts, it.Value().([]*Alternative)...)
	}
	return alts
}

// OccurrencesOf returns every place nt appears on a right-hand side, in the order of Alternatives and
// left to right within each alternative.
func (g *Grammar) OccurrencesOf(nt symbol.Symbol) []*Occurrence {
	return g.occurrences[nt]
}

type buildConfig struct {
	dedup bool
}

type BuildOption func(config *buildConfig)

// DeduplicateAlternatives drops an alternative when its LHS already has an identical one. By default every
// alternative is kept, duplicates included.
func DeduplicateAlternatives() BuildOption {
	return func(config *buildConfig) {
		config.dedup = true
	}
}

type GrammarBuilder struct {
	AST *spec.RootNode

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build(opts ...BuildOption) (*Grammar, error) {
	config := &buildConfig{}
	for _, opt := range opts {
		opt(config)
	}
	b.errs = nil

	if b.AST == nil || len(b.AST.Rules) == 0 {
		return nil, &verr.SpecError{
			Cause: ErrNoRule,
		}
	}

	symTab := symbol.NewSymbolTable()
	alts := linkedhashmap.New()
	for _, rule := range b.AST.Rules {
		alt, ok := b.genAlternative(rule, symTab.Writer())
		if !ok {
			continue
		}

		var prods []*Alternative
		if v, found := alts.Get(alt.lhs); found {
			prods = v.([]*Alternative)
		}
		if config.dedup && containsAlternative(prods, alt) {
			tracer().Debugf("duplicate alternative dropped: %v (row %v)", alt, alt.row)
			continue
		}
		alt.num = len(prods)
		alts.Put(alt.lhs, append(prods, alt))
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	gram := &Grammar{
		alternatives: alts,
		symbolTable:  symTab.Reader(),
		start:        alts.Keys()[0].(symbol.Symbol),
	}

	b.checkReferences(gram)
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	gram.occurrences = genOccurrences(gram)

	tracer().Infof("grammar built: %v non-terminals, %v terminals, %v alternatives, start symbol %v",
		len(gram.NonTerminals()), len(gram.Terminals()), len(gram.Alternatives()), gram.start)

	return gram, nil
}

func (b *GrammarBuilder) genAlternative(rule *spec.RuleNode, w *symbol.SymbolTableWriter) (*Alternative, bool) {
	lhs, err := symbol.Classify(rule.LHS)
	if err != nil {
		b.raise(err, "", rule.Pos.Row)
		return nil, false
	}
	if !lhs.IsNonTerminal() {
		b.raise(ErrInvalidLHS, rule.LHS, rule.Pos.Row)
		return nil, false
	}

	ok := true
	rhs := make([]symbol.Symbol, 0, len(rule.RHS))
	for _, text := range rule.RHS {
		sym, err := symbol.Classify(text)
		if err != nil {
			b.raise(err, "", rule.Pos.Row)
			ok = false
			continue
		}
		rhs = append(rhs, sym)
	}
	if !ok {
		return nil, false
	}
	if len(rhs) > 1 {
		for _, sym := range rhs {
			if sym.IsEpsilon() {
				b.raise(ErrMisplacedEpsilon, strings.Join(rule.RHS, " "), rule.Pos.Row)
				return nil, false
			}
		}
	}

	alt, err := newAlternative(lhs, rhs, rule.Pos.Row)
	if err != nil {
		b.raise(err, "", rule.Pos.Row)
		return nil, false
	}

	w.Register(lhs)
	for _, sym := range rhs {
		w.Register(sym)
	}

	return alt, true
}

func containsAlternative(alts []*Alternative, alt *Alternative) bool {
	for _, a := range alts {
		if a.equals(alt) {
			return true
		}
	}
	return false
}

// checkReferences reports every non-terminal that is referenced but never defined.
func (b *GrammarBuilder) checkReferences(gram *Grammar) {
	for _, alt := range gram.Alternatives() {
		for _, sym := range alt.symbols {
			if !sym.IsNonTerminal() || gram.Defines(sym) {
				continue
			}
			b.raise(ErrUndefinedNonTerminal, sym.Text(), alt.row)
		}
	}
}

func (b *GrammarBuilder) raise(cause error, detail string, row int) {
	b.errs = append(b.errs, &verr.SpecError{
		Cause:  cause,
		Detail: detail,
		Row:    row,
	})
}

func genOccurrences(gram *Grammar) map[symbol.Symbol][]*Occurrence {
	occs := map[symbol.Symbol][]*Occurrence{}
	for _, alt := range gram.Alternatives() {
		for i, sym := range alt.symbols {
			if !sym.IsNonTerminal() {
				continue
			}
			occs[sym] = append(occs[sym], &Occurrence{
				Producer:    alt.lhs,
				Alternative: alt,
				Position:    i,
			})
		}
	}
	return occs
}
