package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grepql/grepql/formatter"
	"github.com/grepql/grepql/internal"
	tt "github.com/grepql/grepql/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [query]",
	Short: "Re-run a query whenever its source files change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide a query")
			os.Exit(1)
		}

		runner := newRunner()
		queryText := strings.Join(args, " ")

		engine, err := runner.Plan(queryText)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		files, err := internal.ResolveSources(engine.Query().FilePattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if files == nil {
			fmt.Fprintln(os.Stderr, "error: watch mode needs a FROM file source")
			os.Exit(1)
		}

		rerun := func(path string) {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			matches, err := runQueryOnFile(ctx, engine, path)
			if err != nil {
				logger.Error("Error re-running query", zap.String("file", path), zap.Error(err))
				return
			}
			result := &tt.Result{Query: queryText, Count: len(matches), Matches: matches}
			output, err := formatter.Format(result, engine)
			if err != nil {
				logger.Error("Error formatting results", zap.Error(err))
				return
			}
			fmt.Printf("-- %s --\n", path)
			if output != "" {
				fmt.Println(output)
			} else {
				fmt.Println("no matches")
			}
		}

		watcher, err := internal.NewWatcher(files, rerun, logger)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		if err := watcher.Start(); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watcher.Stop()

		// run once up front so the first output does not wait for a write
		for _, f := range files {
			rerun(f)
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	},
}

func runQueryOnFile(ctx context.Context, engine *internal.Engine, path string) ([]tt.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return engine.Run(ctx, f, path)
}
