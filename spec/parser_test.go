package spec

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/ffgram/error"
)

func TestParse(t *testing.T) {
	rule := func(lhs string, rhs ...string) *RuleNode {
		return &RuleNode{
			LHS: lhs,
			RHS: rhs,
		}
	}

	tests := []struct {
		caption string
		src     string
		ast     *RootNode
		errRows []int
	}{
		{
			caption: "single rule is a valid grammar",
			src:     `<S> -> "a"`,
			ast: &RootNode{
				Rules: []*RuleNode{
					rule("<S>", `"a"`),
				},
			},
		},
		{
			caption: "the same left-hand side on several lines contributes several rules in file order",
			src: `
<S> -> <A> "b"
<A> -> "a"

<A> -> <epsilon>
<A> -> "a"
`,
			ast: &RootNode{
				Rules: []*RuleNode{
					rule("<S>", "<A>", `"b"`),
					rule("<A>", `"a"`),
					rule("<A>", "<epsilon>"),
					rule("<A>", `"a"`),
				},
			},
		},
		{
			caption: "leading and trailing white spaces are trimmed",
			src:     "   <S>   ->   \"x\"   <T>   \n<T> -> \"y\"",
			ast: &RootNode{
				Rules: []*RuleNode{
					rule("<S>", `"x"`, "<T>"),
					rule("<T>", `"y"`),
				},
			},
		},
		{
			caption: "the parser does not classify tokens",
			src:     `<S> -> foo $ "a"`,
			ast: &RootNode{
				Rules: []*RuleNode{
					rule("<S>", "foo", "$", `"a"`),
				},
			},
		},
		{
			caption: "an empty source has no rules",
			src:     "\n\n",
			ast:     &RootNode{},
		},
		{
			caption: "a line without an arrow is malformed",
			src:     `<S> "a"`,
			errRows: []int{1},
		},
		{
			caption: "a line with two arrows is malformed",
			src:     `<S> -> "a" -> "b"`,
			errRows: []int{1},
		},
		{
			caption: "a line without a left-hand side is malformed",
			src:     `-> "a"`,
			errRows: []int{1},
		},
		{
			caption: "a line without a right-hand side is malformed",
			src:     `<S> ->`,
			errRows: []int{1},
		},
		{
			caption: "a left-hand side must be one symbol",
			src:     `<S> <T> -> "a"`,
			errRows: []int{1},
		},
		{
			caption: "every malformed line is reported",
			src: `<S> -> <A>
<A> "a"
<A> -> "b"
<A> -> -> "c"
`,
			errRows: []int{2, 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := Parse(strings.NewReader(tt.src))
			if len(tt.errRows) > 0 {
				if ast != nil {
					t.Fatalf("an AST must be nil when an error occurred")
				}
				var specErrs verr.SpecErrors
				if !errors.As(err, &specErrs) {
					t.Fatalf("unexpected error; want: verr.SpecErrors, got: %#v", err)
				}
				if len(specErrs) != len(tt.errRows) {
					t.Fatalf("unexpected error count; want: %v, got: %v (%v)", len(tt.errRows), len(specErrs), err)
				}
				for i, e := range specErrs {
					if !errors.Is(e, ErrMalformedRuleLine) {
						t.Errorf("unexpected cause; want: %v, got: %v", ErrMalformedRuleLine, e.Cause)
					}
					if e.Row != tt.errRows[i] {
						t.Errorf("unexpected row; want: %v, got: %v", tt.errRows[i], e.Row)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testRootNode(t, ast, tt.ast)
		})
	}
}

func testRootNode(t *testing.T, root, expected *RootNode) {
	t.Helper()
	if len(root.Rules) != len(expected.Rules) {
		t.Fatalf("unexpected rule count; want: %v, got: %v", len(expected.Rules), len(root.Rules))
	}
	for i, rule := range root.Rules {
		e := expected.Rules[i]
		if rule.LHS != e.LHS {
			t.Fatalf("unexpected LHS; want: %v, got: %v", e.LHS, rule.LHS)
		}
		if len(rule.RHS) != len(e.RHS) {
			t.Fatalf("unexpected RHS length; want: %v, got: %v", e.RHS, rule.RHS)
		}
		for j, tok := range rule.RHS {
			if tok != e.RHS[j] {
				t.Fatalf("unexpected RHS; want: %v, got: %v", e.RHS, rule.RHS)
			}
		}
	}
}

func TestCompiledLexSpec(t *testing.T) {
	s, err := compiledLexSpec()
	if err != nil {
		t.Fatalf("the lexical specification must compile: %v", err)
	}
	if s.Name != lexSpec.Name {
		t.Fatalf("unexpected specification name; want: %v, got: %v", lexSpec.Name, s.Name)
	}
}

func TestParse_Positions(t *testing.T) {
	src := `<S> -> <A> "b"
<A> -> "a"
<A> -> <epsilon>
`
	ast, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []struct {
		lhs string
		rhs []string
		row int
	}{
		{lhs: "<S>", rhs: []string{"<A>", `"b"`}, row: 1},
		{lhs: "<A>", rhs: []string{`"a"`}, row: 2},
		{lhs: "<A>", rhs: []string{"<epsilon>"}, row: 3},
	}
	if len(ast.Rules) != len(expected) {
		t.Fatalf("unexpected rule count; want: %v, got: %v", len(expected), len(ast.Rules))
	}
	for i, e := range expected {
		r := ast.Rules[i]
		if r.LHS != e.lhs {
			t.Errorf("unexpected LHS; want: %v, got: %v", e.lhs, r.LHS)
		}
		if strings.Join(r.RHS, " ") != strings.Join(e.rhs, " ") {
			t.Errorf("unexpected RHS; want: %v, got: %v", e.rhs, r.RHS)
		}
		if r.Pos.Row != e.row {
			t.Errorf("unexpected row; want: %v, got: %v", e.row, r.Pos.Row)
		}
	}
}
