package cmd

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grepql/grepql/repl"
	"github.com/grepql/grepql/search"
)

var historyFile string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive query loop",
	Run: func(cmd *cobra.Command, args []string) {
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

		history := historyFile
		if history == "" {
			history = cfg.HistoryFile
		}

		loop, err := repl.New(runner, history, os.Stdin, os.Stdout, logger)
		if err != nil {
			logger.Fatal("Failed to start REPL", zap.Error(err))
		}

		if err := loop.Run(context.Background()); err != nil {
			logger.Fatal("REPL terminated", zap.Error(err))
		}
	},
}

func init() {
	replCmd.Flags().StringVar(&historyFile, "history", "", "Path to the query history file")
}
