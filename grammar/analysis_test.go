package grammar

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nihei9/ffgram/grammar/symbol"
	"github.com/nihei9/ffgram/spec"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestAnalyze(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ffgram.grammar")
	defer teardown()

	a := mustAnalyze(t, srcOptionalPrefix)
	genSym := newTestSymbolGenerator(t)

	tests := []struct {
		nt     string
		first  []string
		follow []string
	}{
		{nt: "<S>", first: []string{`"a"`, `"b"`}, follow: []string{"$"}},
		{nt: "<A>", first: []string{`"a"`, "<epsilon>"}, follow: []string{`"b"`}},
	}
	for _, tt := range tests {
		first, ok := a.First.Of(genSym(tt.nt))
		if !ok {
			t.Fatalf("FIRST of %v was not found", tt.nt)
		}
		testSymbolSet(t, first, tt.first)
		follow, ok := a.Follow.Of(genSym(tt.nt))
		if !ok {
			t.Fatalf("FOLLOW of %v was not found", tt.nt)
		}
		testSymbolSet(t, follow, tt.follow)
	}

	if _, ok := a.First.Of(genSym("<Z>")); ok {
		t.Fatal("FIRST of an undefined non-terminal must not be found")
	}
	if a.FollowPasses() != 2 {
		t.Fatalf("unexpected pass count; want: 2, got: %v", a.FollowPasses())
	}

	nonTerms := a.Follow.NonTerminals()
	if len(nonTerms) != 2 || nonTerms[0] != genSym("<S>") || nonTerms[1] != genSym("<A>") {
		t.Fatalf("non-terminals must be in definition order; got: %v", nonTerms)
	}
}

func TestAnalyze_TablesAreCopies(t *testing.T) {
	a := mustAnalyze(t, srcOptionalPrefix)
	genSym := newTestSymbolGenerator(t)

	first, _ := a.First.Of(genSym("<A>"))
	first.Add(symbol.NewTerminal(`"z"`))
	follow, _ := a.Follow.Of(genSym("<A>"))
	follow.Add(symbol.EOF)

	first, _ = a.First.Of(genSym("<A>"))
	testSymbolSet(t, first, []string{`"a"`, "<epsilon>"})
	follow, _ = a.Follow.Of(genSym("<A>"))
	testSymbolSet(t, follow, []string{`"b"`})
}

func TestAnalyze_Error(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		opts    []AnalysisOption
		cause   error
	}{
		{
			caption: "direct left recursion",
			src: `
<E> -> <E> "+" "n"
<E> -> "n"
`,
			cause: ErrLeftRecursion,
		},
		{
			caption: "indirect left recursion",
			src: `
<A> -> <B> "y"
<B> -> <A> "z"
`,
			cause: ErrLeftRecursion,
		},
		{
			caption: "the bound on FOLLOW passes is too small",
			src:     srcOptionalPrefix,
			opts:    []AnalysisOption{MaxFollowPasses(1)},
			cause:   ErrFixedPointNonConvergence,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			a, err := Analyze(mustBuildGrammar(t, tt.src), tt.opts...)
			if a != nil {
				t.Fatal("no table may be returned along with an error")
			}
			if !errors.Is(err, tt.cause) {
				t.Fatalf("unexpected error; want: %v, got: %v", tt.cause, err)
			}
		})
	}
}

func TestAnalyze_DefaultBound(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := Analyze(mustBuildGrammar(t, srcExpr), MaxFollowPasses(n)); err != nil {
			t.Fatalf("a bound less than 1 must restore the default; got: %v", err)
		}
	}
}

func TestAnalysis_FirstOfSequence(t *testing.T) {
	a := mustAnalyze(t, srcExpr)
	genSym := newTestSymbolGenerator(t)

	tests := []struct {
		caption string
		syms    []string
		first   []string
	}{
		{
			caption: "an empty sequence",
			syms:    []string{},
			first:   []string{"<epsilon>"},
		},
		{
			caption: "epsilon alone",
			syms:    []string{"<epsilon>"},
			first:   []string{"<epsilon>"},
		},
		{
			caption: "nullable non-terminals only",
			syms:    []string{"<E'>", "<T'>"},
			first:   []string{`"*"`, `"+"`, "<epsilon>"},
		},
		{
			caption: "a nullable non-terminal followed by a terminal",
			syms:    []string{"<T'>", `")"`},
			first:   []string{`")"`, `"*"`},
		},
		{
			caption: "a non-nullable non-terminal hides the rest",
			syms:    []string{"<F>", "<E'>"},
			first:   []string{`"("`, `"id"`},
		},
		{
			caption: "a terminal that does not appear in the grammar",
			syms:    []string{`"new"`, "<E>"},
			first:   []string{`"new"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			syms := make([]symbol.Symbol, len(tt.syms))
			for i, text := range tt.syms {
				syms[i] = genSym(text)
			}
			first, err := a.FirstOfSequence(syms)
			if err != nil {
				t.Fatal(err)
			}
			testSymbolSet(t, first, tt.first)
		})
	}

	_, err := a.FirstOfSequence([]symbol.Symbol{genSym("<Z>")})
	if !errors.Is(err, ErrUndefinedNonTerminal) {
		t.Fatalf("unexpected error; want: %v, got: %v", ErrUndefinedNonTerminal, err)
	}
}

func TestAnalysis_NullableAndReachable(t *testing.T) {
	a := mustAnalyze(t, `
<S> -> <A> "s"
<A> -> <B>
<B> -> <epsilon>
<U> -> <V>
<V> -> "v"
`)
	genSym := newTestSymbolGenerator(t)

	tests := []struct {
		nt        string
		nullable  bool
		reachable bool
	}{
		{nt: "<S>", nullable: false, reachable: true},
		{nt: "<A>", nullable: true, reachable: true},
		{nt: "<B>", nullable: true, reachable: true},
		{nt: "<U>", nullable: false, reachable: false},
		{nt: "<V>", nullable: false, reachable: false},
	}
	for _, tt := range tests {
		if a.Nullable(genSym(tt.nt)) != tt.nullable {
			t.Errorf("unexpected nullability of %v; want: %v", tt.nt, tt.nullable)
		}
		if a.Reachable(genSym(tt.nt)) != tt.reachable {
			t.Errorf("unexpected reachability of %v; want: %v", tt.nt, tt.reachable)
		}
	}
}

func TestAnalysis_Report(t *testing.T) {
	a := mustAnalyze(t, srcOptionalPrefix)

	expected := &spec.Report{
		Start:     "<S>",
		Terminals: []string{`"b"`, `"a"`},
		NonTerminals: []*spec.NonTerminal{
			{
				Name: "<S>",
				Alternatives: []*spec.Alternative{
					{Number: 0, Row: 2, Symbols: []string{"<A>", `"b"`}},
				},
				First:     []string{`"a"`, `"b"`},
				Follow:    []string{"$"},
				Nullable:  false,
				Reachable: true,
			},
			{
				Name: "<A>",
				Alternatives: []*spec.Alternative{
					{Number: 0, Row: 3, Symbols: []string{`"a"`}},
					{Number: 1, Row: 4, Symbols: []string{"<epsilon>"}},
				},
				First:     []string{`"a"`, "<epsilon>"},
				Follow:    []string{`"b"`},
				Nullable:  true,
				Reachable: true,
			},
		},
	}
	r := a.Report()
	if !reflect.DeepEqual(r, expected) {
		t.Fatalf("unexpected report; want: %#v, got: %#v", expected, r)
	}
}

func TestAnalysis_Idempotence(t *testing.T) {
	gram := mustBuildGrammar(t, srcExpr)

	a1, err := Analyze(gram)
	if err != nil {
		t.Fatal(err)
	}
	a2, err := Analyze(gram)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a1.Report(), a2.Report()) {
		t.Fatal("analyzing the same grammar twice must produce the same tables")
	}
	fp1, err := a1.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	fp2, err := a2.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fp1 != fp2 {
		t.Fatalf("fingerprints differ; %v, %v", fp1, fp2)
	}

	other := mustAnalyze(t, srcOptionalPrefix)
	fp3, err := other.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fp1 == fp3 {
		t.Fatal("different grammars must have different fingerprints")
	}
}

func TestAnalysis_OrderIndependence(t *testing.T) {
	// srcExpr with the alternatives of unrelated non-terminals interleaved and reordered.
	reordered := `
<E> -> <T> <E'>
<F> -> "id"
<T'> -> <epsilon>
<E'> -> <epsilon>
<T> -> <F> <T'>
<F> -> "(" <E> ")"
<E'> -> "+" <T> <E'>
<T'> -> "*" <F> <T'>
`
	r1 := mustAnalyze(t, srcExpr).Report()
	r2 := mustAnalyze(t, reordered).Report()

	if len(r1.NonTerminals) != len(r2.NonTerminals) {
		t.Fatalf("unexpected non-terminal count; want: %v, got: %v", len(r1.NonTerminals), len(r2.NonTerminals))
	}
	for _, nt1 := range r1.NonTerminals {
		nt2, ok := r2.NonTerminal(nt1.Name)
		if !ok {
			t.Fatalf("%v was not found", nt1.Name)
		}
		if !reflect.DeepEqual(nt1.First, nt2.First) {
			t.Errorf("FIRST of %v differs; want: %v, got: %v", nt1.Name, nt1.First, nt2.First)
		}
		if !reflect.DeepEqual(nt1.Follow, nt2.Follow) {
			t.Errorf("FOLLOW of %v differs; want: %v, got: %v", nt1.Name, nt1.Follow, nt2.Follow)
		}
	}
}
