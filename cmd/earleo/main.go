package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by all commands.
type rootOptions struct {
	grammarFile string
	start       string
	trace       string
}

var traceKeys = []string{
	"earleo.cmd", "earleo.earley", "earleo.grammar", "earleo.scanner", "earleo.asi",
}

func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:          "earleo",
		Short:        "Parse text with an Earley parser",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := traceLevel(opts.trace)
			for _, key := range traceKeys {
				tracing.Select(key).SetTraceLevel(level)
			}
			tracer().Infof("Trace level is %s", opts.trace)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.grammarFile, "grammar", "g", "",
		"grammar file (default: expression grammar)")
	rootCmd.PersistentFlags().StringVar(&opts.start, "start", "",
		"start symbol for EBNF grammars")
	rootCmd.PersistentFlags().StringVar(&opts.trace, "trace", "Error",
		"trace level [Debug|Info|Error]")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newReplCmd(opts))
	rootCmd.AddCommand(newGrammarCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
