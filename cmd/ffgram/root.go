package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var traceKeys = []string{
	"ffgram.cmd",
	"ffgram.spec",
	"ffgram.grammar",
}

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "ffgram",
	Short: "Compute FIRST and FOLLOW sets of a context-free grammar",
	Long: `ffgram provides three features:
- Computes FIRST and FOLLOW sets of every non-terminal of a grammar.
- Checks the sets against expectations written in test files.
- Explores the sets of a grammar interactively.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := tracing.TraceLevelFromString(*rootFlags.trace)
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
		initDisplay()
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
	grammarFlags.dedup = rootCmd.PersistentFlags().Bool("dedup", false, "drop an alternative identical to a previous one of the same non-terminal")
	grammarFlags.maxPasses = rootCmd.PersistentFlags().Int("max-passes", 0, "the maximum number of FOLLOW passes (default |N| * (|T| + 1) + 1)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// tracer traces with key 'ffgram.cmd'.
func tracer() tracing.Trace {
	return tracing.Select("ffgram.cmd")
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
