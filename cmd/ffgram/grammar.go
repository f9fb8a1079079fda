package main

import (
	"fmt"
	"os"

	verr "github.com/nihei9/ffgram/error"
	"github.com/nihei9/ffgram/grammar"
	"github.com/nihei9/ffgram/spec"
)

var grammarFlags = struct {
	dedup     *bool
	maxPasses *int
}{}

func buildOptions() []grammar.BuildOption {
	var opts []grammar.BuildOption
	if grammarFlags.dedup != nil && *grammarFlags.dedup {
		opts = append(opts, grammar.DeduplicateAlternatives())
	}
	return opts
}

func analysisOptions() []grammar.AnalysisOption {
	var opts []grammar.AnalysisOption
	if grammarFlags.maxPasses != nil && *grammarFlags.maxPasses > 0 {
		opts = append(opts, grammar.MaxFollowPasses(*grammarFlags.maxPasses))
	}
	return opts
}

func readGrammar(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	ast, err := spec.Parse(f)
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	return b.Build(buildOptions()...)
}

// analyzeGrammar reads and analyzes the grammar located at path. sourceName is the name used in error
// messages.
func analyzeGrammar(path, sourceName string) (*grammar.Analysis, error) {
	gram, err := readGrammar(path)
	if err != nil {
		verr.Locate(err, path, sourceName)
		return nil, err
	}
	a, err := grammar.Analyze(gram, analysisOptions()...)
	if err != nil {
		verr.Locate(err, path, sourceName)
		return nil, err
	}
	return a, nil
}
