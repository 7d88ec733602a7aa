package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/grepql/grepql/formatter"
	"github.com/grepql/grepql/internal/query"
	"github.com/grepql/grepql/search"
)

var (
	promptStyle = color.New(color.FgGreen, color.Bold)
	errorStyle  = color.New(color.FgRed, color.Bold)
)

const helpText = `Enter a query, or one of:
  :help      show this help
  :history   list queries from previous sessions
  :quit      leave the REPL

Query form:
  SELECT [COUNT | EXTRACT "<pattern>"] [LINES|WORDS] FROM "<source>"
         [WHERE <condition> ((AND|OR) [NOT] <condition>)*]
         [IGNORE CASE] [WHOLE WORD] [MULTILINE] [DOTALL] [CONTEXT <n>]
         [AS (JSON|CSV)]`

// REPL is the interactive read-eval-print loop. Queries are executed
// through the shared Runner, so repeated queries hit the plan cache.
type REPL struct {
	runner  *search.Runner
	history *History
	in      io.Reader
	out     io.Writer
	logger  *zap.Logger
}

// New builds a REPL reading from in and writing to out.
func New(runner *search.Runner, historyPath string, in io.Reader, out io.Writer, logger *zap.Logger) (*REPL, error) {
	history, err := LoadHistory(historyPath)
	if err != nil {
		return nil, err
	}
	return &REPL{
		runner:  runner,
		history: history,
		in:      in,
		out:     out,
		logger:  logger,
	}, nil
}

// Run reads queries until :quit or end of input.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "grepql interactive mode. Type :help for help, :quit to leave.")

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, promptStyle.Sprint("grepql> "))
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":exit" || line == ":q":
			return nil
		case line == ":help":
			fmt.Fprintln(r.out, helpText)
			continue
		case line == ":history":
			for i, entry := range r.history.Entries() {
				fmt.Fprintf(r.out, "%4d  %s\n", i+1, entry)
			}
			continue
		}

		if err := r.history.Append(line); err != nil {
			r.logger.Warn("Failed to persist history", zap.Error(err))
		}
		r.eval(ctx, line)
	}
}

func (r *REPL) eval(ctx context.Context, queryText string) {
	result, engine, err := r.runner.Run(ctx, queryText, "")
	if err != nil {
		fmt.Fprintln(r.out, errorStyle.Sprint("error: ")+err.Error())
		return
	}

	output, err := formatter.Format(result, engine)
	if err != nil {
		fmt.Fprintln(r.out, errorStyle.Sprint("error: ")+err.Error())
		return
	}
	if output != "" {
		fmt.Fprintln(r.out, output)
	}
	if result.Count == 0 && engine.Query().Command != query.CommandCount {
		fmt.Fprintln(r.out, "no matches")
	}
}
