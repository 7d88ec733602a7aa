package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grepql/grepql/formatter"
	"github.com/grepql/grepql/internal/query"
	"github.com/grepql/grepql/search"
)

var (
	filePattern string
	outPath     string
)

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Run a single query and print its results",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide a query")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		runner := newRunner()
		queryText := strings.Join(args, " ")

		result, engine, err := runner.Run(ctx, queryText, filePattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		output, err := formatter.Format(result, engine)
		if err != nil {
			logger.Fatal("Failed to format results", zap.Error(err))
		}

		if outPath != "" {
			if err := os.WriteFile(outPath, []byte(output+"\n"), 0o644); err != nil {
				logger.Fatal("Failed to write output file", zap.Error(err))
			}
		} else if output != "" {
			fmt.Println(output)
		}

		// grep convention: non-zero exit when nothing matched
		if result.Count == 0 && engine.Query().Command != query.CommandCount {
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().StringVarP(&filePattern, "file", "f", "", "Override the query's FROM source")
	runCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write results to a file instead of stdout")
}

func newRunner() *search.Runner {
	cfg, err := search.LoadConfig(cfgFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	runner, err := search.NewRunner(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize query runner", zap.Error(err))
	}
	return runner
}
