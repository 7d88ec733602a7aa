package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/grepql/grepql/internal/query"
)

var (
	headingStyle = color.New(color.FgYellow, color.Bold)
	patternStyle = color.New(color.FgCyan)
)

var explainCmd = &cobra.Command{
	Use:   "explain [query]",
	Short: "Show the tokens, parsed form, and compiled patterns of a query",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide a query")
			os.Exit(1)
		}
		queryText := strings.Join(args, " ")

		tokens, err := query.Tokenize(queryText)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		headingStyle.Println("tokens:")
		for _, tok := range tokens {
			fmt.Printf("  %-12s %-14q %d:%d\n", tok.Type, tok.Value, tok.Line, tok.Column)
		}

		q, err := query.NewParser(tokens).Parse()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		headingStyle.Println("query:")
		fmt.Printf("  command: %s\n", q.Command)
		fmt.Printf("  target:  %s\n", q.Target)
		if q.FilePattern != "" {
			fmt.Printf("  source:  %q\n", q.FilePattern)
		}
		if q.ExtractPattern != "" {
			fmt.Printf("  extract: %q\n", q.ExtractPattern)
		}
		for _, cond := range q.Conditions {
			negated := ""
			if cond.Negated {
				negated = " NOT"
			}
			quantifier := ""
			if cond.Quantifier != "" {
				quantifier = " " + cond.Quantifier
			}
			fmt.Printf("  condition: %s%s %s %q%s\n", cond.Logic, negated, cond.Kind, cond.Value, quantifier)
		}
		fmt.Printf("  modifiers: %+v\n", q.Modifiers)
		fmt.Printf("  output:  %s\n", q.Output)

		compiled := query.Compile(q.Conditions, q.Modifiers)
		headingStyle.Println("patterns:")
		fmt.Printf("  include: %s\n", patternStyle.Sprint(compiled.Include))
		for _, exclude := range compiled.Excludes {
			fmt.Printf("  exclude: %s\n", patternStyle.Sprint(exclude))
		}
	},
}
