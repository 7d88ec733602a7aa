package search

import (
	"context"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/grepql/grepql/internal"
	"github.com/grepql/grepql/internal/query"
	tt "github.com/grepql/grepql/internal/types"
)

// Runner is the front door of the tool: it turns query text into a
// prepared engine (through the plan cache) and executes it over the
// query's sources.
type Runner struct {
	cfg    Config
	logger *zap.Logger
	plans  *internal.PlanCache
}

// NewRunner creates a Runner with the given configuration.
func NewRunner(cfg Config, logger *zap.Logger) (*Runner, error) {
	plans, err := internal.NewPlanCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, logger: logger, plans: plans}, nil
}

// Plan parses and compiles queryText, consulting the plan cache first.
// Configuration defaults the query does not override (output format,
// context lines) are folded in before the engine is built.
func (r *Runner) Plan(queryText string) (*internal.Engine, error) {
	if engine, ok := r.plans.Get(queryText); ok {
		return engine, nil
	}

	q, err := query.Parse(queryText)
	if err != nil {
		return nil, err
	}
	r.applyDefaults(q)

	engine, err := internal.NewEngine(q)
	if err != nil {
		return nil, err
	}
	r.plans.Add(queryText, engine)
	return engine, nil
}

func (r *Runner) applyDefaults(q *query.Query) {
	if q.Modifiers.ContextLines == 0 && r.cfg.Context > 0 {
		q.Modifiers.ContextLines = r.cfg.Context
	}
	if q.Output == query.OutputText {
		switch r.cfg.Output {
		case "json":
			q.Output = query.OutputJSON
		case "csv":
			q.Output = query.OutputCSV
		}
	}
}

// Run executes queryText. fileOverride, when non-empty, replaces the
// query's FROM pattern; an empty resolved source set reads stdin.
func (r *Runner) Run(ctx context.Context, queryText, fileOverride string) (*tt.Result, *internal.Engine, error) {
	engine, err := r.Plan(queryText)
	if err != nil {
		return nil, nil, err
	}

	pattern := engine.Query().FilePattern
	if fileOverride != "" {
		pattern = fileOverride
	}
	files, err := internal.ResolveSources(pattern)
	if err != nil {
		return nil, nil, err
	}

	var matches []tt.Match
	if files == nil {
		matches, err = engine.Run(ctx, os.Stdin, "")
	} else {
		matches, err = ProcessFiles(ctx, r.logger, engine, files)
	}
	if err != nil {
		return nil, nil, err
	}

	return &tt.Result{
		Query:   queryText,
		Count:   len(matches),
		Matches: matches,
	}, engine, nil
}

// ProcessFiles runs the engine over every file, in parallel for
// multi-file sets, and returns the matches in file order.
func ProcessFiles(ctx context.Context, logger *zap.Logger, engine *internal.Engine, files []string) ([]tt.Match, error) {
	if len(files) == 1 {
		return processFile(ctx, engine, files[0])
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("searching"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	results := make([][]tt.Match, len(files))
	errs := make([]error, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i], errs[i] = processFile(ctx, engine, path)
			bar.Add(1)
		}(i, path)
	}
	wg.Wait()

	var matches []tt.Match
	for i := range files {
		if errs[i] != nil {
			if logger != nil {
				logger.Error("Error processing file", zap.String("file", files[i]), zap.Error(errs[i]))
			}
			return nil, errs[i]
		}
		matches = append(matches, results[i]...)
	}
	return matches, nil
}

func processFile(ctx context.Context, engine *internal.Engine, path string) ([]tt.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return engine.Run(ctx, f, path)
}
