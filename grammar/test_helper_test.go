package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/ffgram/grammar/symbol"
	"github.com/nihei9/ffgram/spec"
)

func buildGrammar(t *testing.T, src string, opts ...BuildOption) (*Grammar, error) {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := GrammarBuilder{
		AST: ast,
	}
	return b.Build(opts...)
}

func mustBuildGrammar(t *testing.T, src string, opts ...BuildOption) *Grammar {
	t.Helper()

	gram, err := buildGrammar(t, src, opts...)
	if err != nil {
		t.Fatalf("failed to build a grammar: %v", err)
	}
	return gram
}

func mustAnalyze(t *testing.T, src string) *Analysis {
	t.Helper()

	a, err := Analyze(mustBuildGrammar(t, src))
	if err != nil {
		t.Fatalf("failed to analyze a grammar: %v", err)
	}
	return a
}

type testSymbolGenerator func(text string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		sym, err := symbol.Classify(text)
		if err != nil {
			t.Fatal(err)
		}
		return sym
	}
}

func testSymbolSet(t *testing.T, actual *symbol.Set, expected []string) {
	t.Helper()

	texts := actual.Texts()
	if len(texts) != len(expected) {
		t.Fatalf("unexpected set; want: %v, got: %v", expected, actual)
	}
	for i, text := range expected {
		if texts[i] != text {
			t.Fatalf("unexpected set; want: %v, got: %v", expected, actual)
		}
	}
}

const (
	srcOptionalPrefix = `
<S> -> <A> "b"
<A> -> "a"
<A> -> <epsilon>
`

	srcExpr = `
<E> -> <T> <E'>
<E'> -> "+" <T> <E'>
<E'> -> <epsilon>
<T> -> <F> <T'>
<T'> -> "*" <F> <T'>
<T'> -> <epsilon>
<F> -> "(" <E> ")"
<F> -> "id"
`
)
