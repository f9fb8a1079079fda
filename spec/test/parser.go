package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

type SetKind string

const (
	SetKindFirst  = SetKind("first")
	SetKindFollow = SetKind("follow")
)

func (k SetKind) Label() string {
	return strings.ToUpper(string(k))
}

// Expectation states the exact contents of a FIRST or FOLLOW set, e.g. `first <A> = "a" <epsilon>`.
type Expectation struct {
	Kind        SetKind
	NonTerminal string
	Symbols     []string
	Row         int
}

// SetDiff describes how an actual set differs from an expectation.
type SetDiff struct {
	Expectation *Expectation
	Missing     []string
	Unexpected  []string
}

// DiffSet compares an expected set with an actual one. The order of the symbols is irrelevant. It
// returns nil when both sets are equal.
func DiffSet(exp *Expectation, actual []string) *SetDiff {
	expected := map[string]struct{}{}
	for _, sym := range exp.Symbols {
		expected[sym] = struct{}{}
	}
	act := map[string]struct{}{}
	for _, sym := range actual {
		act[sym] = struct{}{}
	}

	diff := &SetDiff{
		Expectation: exp,
	}
	for sym := range expected {
		if _, ok := act[sym]; !ok {
			diff.Missing = append(diff.Missing, sym)
		}
	}
	for sym := range act {
		if _, ok := expected[sym]; !ok {
			diff.Unexpected = append(diff.Unexpected, sym)
		}
	}
	if len(diff.Missing) == 0 && len(diff.Unexpected) == 0 {
		return nil
	}
	sort.Strings(diff.Missing)
	sort.Strings(diff.Unexpected)
	return diff
}

type TestCase struct {
	Description  string
	Expectations []*Expectation
}

// ParseTestCase reads a test case consisting of a description and a list of expectations separated by
// a line of dashes. Each expectation occupies one line.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just two parts: %v parts found", len(parts))
	}

	lineOffset := parts[0].lineCount + 1
	var exps []*Expectation
	s := bufio.NewScanner(bytes.NewReader(parts[1].buf))
	for row := lineOffset + 1; s.Scan(); row++ {
		toks, err := scan(s.Text())
		if err != nil {
			return nil, fmt.Errorf("%v: %w", row, err)
		}
		if len(toks) == 0 {
			continue
		}
		exp, err := parseExpectation(toks)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", row, err)
		}
		exp.Row = row
		exps = append(exps, exp)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(exps) == 0 {
		return nil, fmt.Errorf("a test case needs at least one expectation")
	}

	return &TestCase{
		Description:  string(parts[0].buf),
		Expectations: exps,
	}, nil
}

func parseExpectation(toks []*token) (*Expectation, error) {
	kw := toks[0]
	if kw.typ != tokenTypeKeyword {
		return nil, fmt.Errorf("%v: an expectation must start with 'first' or 'follow'; got: %v", kw.col, kw.lexeme)
	}
	var kind SetKind
	switch kw.lexeme {
	case string(SetKindFirst):
		kind = SetKindFirst
	case string(SetKindFollow):
		kind = SetKindFollow
	default:
		return nil, fmt.Errorf("%v: unknown set kind: %v", kw.col, kw.lexeme)
	}

	if len(toks) < 3 {
		return nil, fmt.Errorf("an expectation must have the form `%v <A> = ...`", kind)
	}
	nt := toks[1]
	if !isNonTerminal(nt) {
		return nil, fmt.Errorf("%v: a non-terminal is expected; got: %v", nt.col, nt.lexeme)
	}
	if toks[2].typ != tokenTypeEqual {
		return nil, fmt.Errorf("%v: '=' is expected; got: %v", toks[2].col, toks[2].lexeme)
	}

	exp := &Expectation{
		Kind:        kind,
		NonTerminal: nt.lexeme,
		Symbols:     []string{},
	}
	for _, tok := range toks[3:] {
		if err := checkSetMember(kind, tok); err != nil {
			return nil, err
		}
		exp.Symbols = append(exp.Symbols, tok.lexeme)
	}
	return exp, nil
}

// checkSetMember rejects symbols that can never be members of a set of the kind.
func checkSetMember(kind SetKind, tok *token) error {
	switch {
	case tok.typ == tokenTypeSymbol && strings.HasPrefix(tok.lexeme, `"`):
		return nil
	case tok.typ == tokenTypeSymbol && tok.lexeme == textEpsilon:
		if kind == SetKindFirst {
			return nil
		}
	case tok.typ == tokenTypeEOFMarker:
		if kind == SetKindFollow {
			return nil
		}
	}
	return fmt.Errorf("%v: %v cannot be a member of a %v set", tok.col, tok.lexeme, kind.Label())
}

const textEpsilon = "<epsilon>"

func isNonTerminal(tok *token) bool {
	return tok.typ == tokenTypeSymbol && strings.HasPrefix(tok.lexeme, "<") && tok.lexeme != textEpsilon
}

type QueryKind string

const (
	QueryKindFirst    = QueryKind("first")
	QueryKindFollow   = QueryKind("follow")
	QueryKindNullable = QueryKind("nullable")
	QueryKindGrammar  = QueryKind("grammar")
	QueryKindHelp     = QueryKind("help")
	QueryKindQuit     = QueryKind("quit")
)

// Query is a command of the interactive explorer. Symbols holds the operands in input order.
type Query struct {
	Kind    QueryKind
	Symbols []string
}

// ParseQuery parses one line of the interactive explorer. An empty line yields nil.
//
//	first <A>            FIRST of a non-terminal
//	first <A> "x" <B>    FIRST of a sequence
//	follow <A>
//	nullable <A>
//	grammar | help | quit
func ParseQuery(line string) (*Query, error) {
	toks, err := scan(line)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, nil
	}

	cmd := toks[0]
	if cmd.typ != tokenTypeKeyword {
		return nil, fmt.Errorf("a command is expected; got: %v", cmd.lexeme)
	}
	q := &Query{
		Kind: QueryKind(cmd.lexeme),
	}
	args := toks[1:]
	switch q.Kind {
	case QueryKindFirst:
		if len(args) == 0 {
			return nil, fmt.Errorf("first takes at least one symbol")
		}
		for _, arg := range args {
			if arg.typ != tokenTypeSymbol {
				return nil, fmt.Errorf("%v cannot appear in a sequence", arg.lexeme)
			}
		}
	case QueryKindFollow, QueryKindNullable:
		if len(args) != 1 || !isNonTerminal(args[0]) {
			return nil, fmt.Errorf("%v takes just one non-terminal", q.Kind)
		}
	case QueryKindGrammar, QueryKindHelp, QueryKindQuit:
		if len(args) != 0 {
			return nil, fmt.Errorf("%v takes no arguments", q.Kind)
		}
	default:
		return nil, fmt.Errorf("unknown command: %v", cmd.lexeme)
	}
	for _, arg := range args {
		q.Symbols = append(q.Symbols, arg.lexeme)
	}
	return q, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	buf.Write(line)
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		buf.WriteString("\n")
		buf.Write(line)
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
