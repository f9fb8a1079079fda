package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/ffgram/grammar"
	"github.com/nihei9/ffgram/grammar/symbol"
	tspec "github.com/nihei9/ffgram/spec/test"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "explore <grammar file path>",
		Short:   "Query FIRST and FOLLOW sets of a grammar interactively",
		Example: `  ffgram explore grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runExplore,
	}
	rootCmd.AddCommand(cmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	a, err := analyzeGrammar(args[0], args[0])
	if err != nil {
		return err
	}

	rl, err := readline.New("ffgram> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println(fmt.Sprintf("%v: %v non-terminals; type 'help' for commands, quit with <ctrl>D", args[0], len(a.Grammar().NonTerminals())))
	e := &explorer{
		analysis: a,
	}
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		out, quit, err := e.eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
		if out != "" {
			pterm.Info.Println(out)
		}
	}
	return nil
}

const exploreHelp = `first <A>            FIRST of a non-terminal
first <X> <Y> ...    FIRST of a sequence of symbols
follow <A>           FOLLOW of a non-terminal
nullable <A>         whether a non-terminal derives the empty string
grammar              print the grammar
help                 print this message
quit                 leave the explorer`

type explorer struct {
	analysis *grammar.Analysis
}

// eval runs one line of input. It returns the text to print and whether the explorer should stop.
func (e *explorer) eval(line string) (string, bool, error) {
	q, err := tspec.ParseQuery(line)
	if err != nil {
		return "", false, err
	}
	if q == nil {
		return "", false, nil
	}
	tracer().Debugf("query: %v %v", q.Kind, q.Symbols)

	switch q.Kind {
	case tspec.QueryKindFirst:
		syms := make([]symbol.Symbol, len(q.Symbols))
		for i, text := range q.Symbols {
			syms[i], err = symbol.Classify(text)
			if err != nil {
				return "", false, err
			}
		}
		if len(syms) == 1 && syms[0].IsNonTerminal() {
			s, err := e.lookUp(e.analysis.First, syms[0])
			if err != nil {
				return "", false, err
			}
			return fmt.Sprintf("FIRST(%v) = %v", syms[0], s), false, nil
		}
		s, err := e.analysis.FirstOfSequence(syms)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf("FIRST(%v) = %v", strings.Join(q.Symbols, " "), s), false, nil
	case tspec.QueryKindFollow:
		nt := symbol.NewNonTerminal(q.Symbols[0])
		s, err := e.lookUp(e.analysis.Follow, nt)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf("FOLLOW(%v) = %v", nt, s), false, nil
	case tspec.QueryKindNullable:
		nt := symbol.NewNonTerminal(q.Symbols[0])
		if !e.analysis.Grammar().Defines(nt) {
			return "", false, fmt.Errorf("%w: %v", grammar.ErrUndefinedNonTerminal, nt)
		}
		return fmt.Sprintf("%v nullable: %v", nt, e.analysis.Nullable(nt)), false, nil
	case tspec.QueryKindGrammar:
		var b strings.Builder
		for i, alt := range e.analysis.Grammar().Alternatives() {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(alt.String())
		}
		return b.String(), false, nil
	case tspec.QueryKindHelp:
		return exploreHelp, false, nil
	case tspec.QueryKindQuit:
		return "", true, nil
	}
	return "", false, fmt.Errorf("unknown command: %v", q.Kind)
}

type setLookUp interface {
	Of(nt symbol.Symbol) (*symbol.Set, bool)
}

func (e *explorer) lookUp(tab setLookUp, nt symbol.Symbol) (*symbol.Set, error) {
	s, ok := tab.Of(nt)
	if !ok {
		return nil, fmt.Errorf("%w: %v", grammar.ErrUndefinedNonTerminal, nt)
	}
	return s, nil
}
