package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/earleo/earley"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse input lines interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gf, err := opts.grammar()
			if err != nil {
				return err
			}
			p, err := gf.parser()
			if err != nil {
				return err
			}
			repl, err := readline.New("earleo> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp := &Intp{
				gf:     gf,
				parser: p,
				repl:   repl,
			}
			pterm.Info.Println("Welcome to earleo") // colored welcome message
			pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
			intp.REPL()
			return nil
		},
	}
}

// Intp is our interpreter object
type Intp struct {
	gf     *grammarFile
	parser *earley.Parser
	repl   *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval executes a command or parses a line of input. It returns true if the
// user asked to quit.
func (intp *Intp) Eval(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":grammar":
		printGrammar(intp.gf)
		return false
	case ":chart":
		intp.dumpChart()
		return false
	}
	forest, err := intp.parser.Parse(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		if perr, ok := err.(*earley.ParseError); ok {
			if exp := perr.Expected(); len(exp) > 0 {
				pterm.Info.Println("expected one of: " + strings.Join(exp, " "))
			}
		}
		return false
	}
	printForest(forest)
	return false
}

// dumpChart traces the chart of the most recent parse. Chart dumps are written
// at debug level to the parser's tracer.
func (intp *Intp) dumpChart() {
	t := tracing.Select("earleo.earley")
	level := t.GetTraceLevel()
	t.SetTraceLevel(tracing.LevelDebug)
	defer t.SetTraceLevel(level)
	intp.parser.Chart().Dump()
}
