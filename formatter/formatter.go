package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/grepql/grepql/internal"
	"github.com/grepql/grepql/internal/query"
	tt "github.com/grepql/grepql/internal/types"
)

var (
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgGreen)
	matchStyle   = color.New(color.FgRed, color.Bold)
	countStyle   = color.New(color.FgYellow, color.Bold)
	contextStyle = color.New(color.Faint)
)

// Format renders a result in the query's output format. The engine is
// consulted for match spans when highlighting text output.
func Format(result *tt.Result, engine *internal.Engine) (string, error) {
	q := engine.Query()
	switch q.Output {
	case query.OutputJSON:
		return formatJSON(result)
	case query.OutputCSV:
		return formatCSV(result, q)
	default:
		return formatText(result, engine), nil
	}
}

func formatJSON(result *tt.Result) (string, error) {
	d, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(d), nil
}

func formatCSV(result *tt.Result, q *query.Query) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if q.Command == query.CommandExtract {
		if err := w.Write([]string{"file", "line", "extracted"}); err != nil {
			return "", err
		}
		for _, m := range result.Matches {
			for _, ex := range m.Extracted {
				if err := w.Write([]string{m.File, strconv.Itoa(m.Line), ex}); err != nil {
					return "", err
				}
			}
		}
	} else {
		if err := w.Write([]string{"file", "line", "column", "text"}); err != nil {
			return "", err
		}
		for _, m := range result.Matches {
			record := []string{m.File, strconv.Itoa(m.Line), strconv.Itoa(m.Column), m.Text}
			if err := w.Write(record); err != nil {
				return "", err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatText(result *tt.Result, engine *internal.Engine) string {
	q := engine.Query()

	switch q.Command {
	case query.CommandCount:
		unit := "lines"
		if q.Target == query.TargetWords {
			unit = "words"
		}
		return countStyle.Sprintf("Matched %s: %d", unit, result.Count)

	case query.CommandExtract:
		var b strings.Builder
		for _, m := range result.Matches {
			for _, ex := range m.Extracted {
				b.WriteString(ex)
				b.WriteString("\n")
			}
		}
		return strings.TrimRight(b.String(), "\n")
	}

	var b strings.Builder
	for _, m := range result.Matches {
		for _, before := range m.Before {
			writeContextLine(&b, m.File, before)
		}
		writeMatchLine(&b, m, engine)
		for _, after := range m.After {
			writeContextLine(&b, m.File, after)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeMatchLine(b *strings.Builder, m tt.Match, engine *internal.Engine) {
	if m.File != "" {
		b.WriteString(fileStyle.Sprint(m.File))
		b.WriteString(":")
	}
	b.WriteString(lineStyle.Sprintf("%d", m.Line))
	b.WriteString(": ")
	b.WriteString(highlight(m.Text, engine))
	b.WriteString("\n")
}

func writeContextLine(b *strings.Builder, file, text string) {
	if file != "" {
		b.WriteString(contextStyle.Sprint(file))
		b.WriteString(contextStyle.Sprint("-"))
	}
	b.WriteString(contextStyle.Sprint(text))
	b.WriteString("\n")
}

// highlight wraps the matched span in the match style. A span covering
// the whole candidate (the usual case for AND-chain patterns) renders
// the full text highlighted.
func highlight(text string, engine *internal.Engine) string {
	start, length, ok := engine.FindSpan(text)
	if !ok || length == 0 {
		return text
	}
	return fmt.Sprintf("%s%s%s",
		text[:start],
		matchStyle.Sprint(text[start:start+length]),
		text[start+length:])
}
