package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/ffgram/grammar"
	"github.com/nihei9/ffgram/grammar/symbol"
	tspec "github.com/nihei9/ffgram/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*tspec.SetDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			exp := diff.Expectation
			diffLines = append(diffLines, fmt.Sprintf("%v(%v) at row %v", exp.Kind.Label(), exp.NonTerminal, exp.Row))
			if len(diff.Missing) > 0 {
				diffLines = append(diffLines, fmt.Sprintf("%vmissing:    %v", indent1, strings.Join(diff.Missing, " ")))
			}
			if len(diff.Unexpected) > 0 {
				diffLines = append(diffLines, fmt.Sprintf("%vunexpected: %v", indent1, strings.Join(diff.Unexpected, " ")))
			}
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

// ListTestCases reads a test case file, or every test case file under a directory recursively.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

type Tester struct {
	Analysis *grammar.Analysis
	Cases    []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.Analysis, c))
	}
	return rs
}

func runTest(a *grammar.Analysis, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	var diffs []*tspec.SetDiff
	for _, exp := range c.TestCase.Expectations {
		actual, err := lookUp(a, exp)
		if err != nil {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("%v: %w", exp.Row, err),
			}
		}
		if diff := tspec.DiffSet(exp, actual.Texts()); diff != nil {
			diffs = append(diffs, diff)
		}
	}
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("set mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func lookUp(a *grammar.Analysis, exp *tspec.Expectation) (*symbol.Set, error) {
	nt, ok := a.Grammar().ToSymbol(exp.NonTerminal)
	if !ok || !nt.IsNonTerminal() {
		return nil, fmt.Errorf("%w: %v", grammar.ErrUndefinedNonTerminal, exp.NonTerminal)
	}
	var s *symbol.Set
	switch exp.Kind {
	case tspec.SetKindFirst:
		s, ok = a.First.Of(nt)
	case tspec.SetKindFollow:
		s, ok = a.Follow.Of(nt)
	default:
		return nil, fmt.Errorf("unknown set kind: %v", exp.Kind)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v", grammar.ErrUndefinedNonTerminal, exp.NonTerminal)
	}
	return s, nil
}
