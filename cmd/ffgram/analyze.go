package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var analyzeFlags = struct {
	format *string
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "analyze [<grammar file path>]",
		Short: "Compute FIRST and FOLLOW sets of a grammar",
		Example: `  ffgram analyze grammar.txt
  ffgram analyze grammar.txt --format json -o report.json
  cat grammar.txt | ffgram analyze --format table`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}
	analyzeFlags.format = cmd.Flags().StringP("format", "f", formatText, "output format [text|table|json]")
	analyzeFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	write, err := reportWriter(*analyzeFlags.format)
	if err != nil {
		return err
	}

	var tmpDirPath string
	defer func() {
		if tmpDirPath == "" {
			return
		}
		os.RemoveAll(tmpDirPath)
	}()

	var grmPath string
	sourceName := "stdin"
	if len(args) > 0 {
		grmPath = args[0]
		sourceName = grmPath
	} else {
		tmpDirPath, err = os.MkdirTemp("", "ffgram-analyze-*")
		if err != nil {
			return err
		}
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		grmPath = filepath.Join(tmpDirPath, "stdin.txt")
		err = os.WriteFile(grmPath, src, 0600)
		if err != nil {
			return err
		}
	}

	a, err := analyzeGrammar(grmPath, sourceName)
	if err != nil {
		return err
	}

	report := a.Report()
	for _, nt := range report.NonTerminals {
		if !nt.Reachable {
			pterm.Warning.Println(fmt.Sprintf("%v is unreachable from the start symbol %v", nt.Name, report.Start))
		}
	}

	var w io.Writer = os.Stdout
	if *analyzeFlags.output != "" {
		f, err := os.OpenFile(*analyzeFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	err = write(w, report)
	if err != nil {
		return fmt.Errorf("Cannot write a report: %w", err)
	}
	tracer().Infof("report written in %v format; FOLLOW converged after %v passes", *analyzeFlags.format, a.FollowPasses())

	return nil
}
