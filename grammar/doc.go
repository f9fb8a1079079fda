// Package grammar holds a context-free grammar and computes the FIRST and FOLLOW sets of its
// non-terminals.
//
// A grammar is built from the rules read by package spec:
//
//	ast, err := spec.Parse(src)
//	b := grammar.GrammarBuilder{AST: ast}
//	gram, err := b.Build()
//	a, err := grammar.Analyze(gram)
//	first, _ := a.First.Of(symbol.NewNonTerminal("<A>"))
//
// FIRST sets are computed by memoized recursion; a non-terminal reached again while its own FIRST set is
// still being computed is left-recursive and aborts the analysis. FOLLOW sets are computed by iterating
// over every occurrence of every non-terminal until a fixed point is reached.
package grammar

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'ffgram.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("ffgram.grammar")
}
