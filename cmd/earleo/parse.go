package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/npillmayer/earleo"
	"github.com/npillmayer/earleo/earley"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var inputFile string
	var stats bool

	cmd := &cobra.Command{
		Use:   "parse [input...]",
		Short: "Parse input text and print the parse trees",
		Long: `Parse input text with a grammar and print all parse trees.

The input is either given as arguments or read from a file (--file).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gf, err := opts.grammar()
			if err != nil {
				return fmt.Errorf("grammar: %w", err)
			}
			input := strings.Join(args, " ")
			if inputFile != "" {
				data, err := os.ReadFile(inputFile)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				input = string(data)
			}
			p, err := gf.parser()
			if err != nil {
				return err
			}
			started := time.Now()
			forest, err := p.Parse(input)
			elapsed := time.Since(started)
			if err != nil {
				pterm.Error.Println(err.Error())
				return err
			}
			printForest(forest)
			if stats {
				printStats(p, elapsed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "read input from file")
	cmd.Flags().BoolVar(&stats, "stats", false, "print parser statistics")

	return cmd
}

func printForest(forest earley.Forest) {
	if len(forest) > 1 {
		pterm.Info.Printf("input is ambiguous, %d parse trees\n", len(forest))
	}
	for _, tree := range forest {
		root := pterm.NewTreeFromLeveledList(leveledNodes(tree, pterm.LeveledList{}, 0))
		pterm.DefaultTree.WithRoot(root).Render()
	}
}

// leveledNodes flattens a parse tree into a list of indented items, as needed
// for pterm's tree printer.
func leveledNodes(n *earleo.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  nodeLabel(n),
	})
	for _, ch := range n.Children {
		ll = leveledNodes(ch, ll, level+1)
	}
	return ll
}

func nodeLabel(n *earleo.Node) string {
	if n.IsLeaf() {
		label := fmt.Sprintf("%s %q %s", n.Type, fmt.Sprintf("%v", n.Value), n.Span())
		if n.Token != nil && n.Token.Synthetic() {
			label += " (inserted)"
		}
		return label
	}
	if n.Value != nil {
		return fmt.Sprintf("%s = %v %s", n.Type, n.Value, n.Span())
	}
	return fmt.Sprintf("%s %s", n.Type, n.Span())
}

func printStats(p *earley.Parser, elapsed time.Duration) {
	chart := p.Chart()
	pterm.Info.Printf("%s states in %s columns, %s bytes of input, %v\n",
		humanize.Comma(int64(chart.Size())),
		humanize.Comma(int64(chart.Len())),
		humanize.Comma(int64(len(p.Input()))),
		elapsed)
}

func newGrammarCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Print the rules and terminals of a grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gf, err := opts.grammar()
			if err != nil {
				return fmt.Errorf("grammar: %w", err)
			}
			printGrammar(gf)
			return nil
		},
	}
}

func printGrammar(gf *grammarFile) {
	g := gf.table
	pterm.Info.Printf("grammar %s, %d alternatives\n", g.Name, g.Size())
	for _, r := range g.Rules() {
		pterm.Println(r.String())
	}
	pterm.Info.Println("terminals: " + strings.Join(g.Terminals(), " "))
	g.Dump() // only visible in debug mode
}
