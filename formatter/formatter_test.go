package formatter

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grepql/grepql/internal"
	"github.com/grepql/grepql/internal/query"
	tt "github.com/grepql/grepql/internal/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// run builds an engine for queryText and executes it over input, so the
// formatted output reflects a real execution.
func run(t *testing.T, queryText, input, name string) (*tt.Result, *internal.Engine) {
	t.Helper()
	q, err := query.Parse(queryText)
	require.NoError(t, err)
	engine, err := internal.NewEngine(q)
	require.NoError(t, err)
	matches, err := engine.Run(context.Background(), strings.NewReader(input), name)
	require.NoError(t, err)
	return &tt.Result{Query: queryText, Count: len(matches), Matches: matches}, engine
}

func TestFormat_Text(t *testing.T) {
	result, engine := run(t,
		`SELECT FROM WHERE CONTAINS "err"`,
		"ok\nan error\n", "log.txt")

	out, err := Format(result, engine)
	require.NoError(t, err)
	assert.Equal(t, "log.txt:2: an error", out)
}

func TestFormat_TextWithoutFilePrefix(t *testing.T) {
	result, engine := run(t,
		`SELECT FROM WHERE CONTAINS "err"`,
		"an error\n", "")

	out, err := Format(result, engine)
	require.NoError(t, err)
	assert.Equal(t, "1: an error", out)
}

func TestFormat_TextWithContext(t *testing.T) {
	result, engine := run(t,
		`SELECT FROM WHERE CONTAINS "hit" CONTEXT 1`,
		"one\nhit\ntwo\n", "log.txt")

	out, err := Format(result, engine)
	require.NoError(t, err)
	assert.Equal(t, "log.txt-one\nlog.txt:2: hit\nlog.txt-two", out)
}

func TestFormat_Count(t *testing.T) {
	result, engine := run(t,
		`SELECT COUNT LINES FROM WHERE CONTAINS "a"`,
		"a\nb\nba\n", "")

	out, err := Format(result, engine)
	require.NoError(t, err)
	assert.Equal(t, "Matched lines: 2", out)

	result, engine = run(t,
		`SELECT COUNT WORDS FROM WHERE CONTAINS "a"`,
		"alpha beta\n", "")

	out, err = Format(result, engine)
	require.NoError(t, err)
	assert.Equal(t, "Matched words: 2", out)
}

func TestFormat_ExtractText(t *testing.T) {
	result, engine := run(t,
		`SELECT EXTRACT "id=(\d+)" FROM WHERE CONTAINS "id"`,
		"id=1 id=2\nid=3\n", "")

	out, err := Format(result, engine)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3", out)
}

func TestFormat_JSON(t *testing.T) {
	result, engine := run(t,
		`SELECT FROM WHERE CONTAINS "err" AS JSON`,
		"an error\n", "log.txt")

	out, err := Format(result, engine)
	require.NoError(t, err)

	var decoded tt.Result
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 1, decoded.Count)
	require.Len(t, decoded.Matches, 1)
	assert.Equal(t, "an error", decoded.Matches[0].Text)
	assert.Equal(t, "log.txt", decoded.Matches[0].File)
}

func TestFormat_CSV(t *testing.T) {
	result, engine := run(t,
		`SELECT FROM WHERE CONTAINS "err" AS CSV`,
		"ok\nan error\n", "log.txt")

	out, err := Format(result, engine)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "file,line,column,text", lines[0])
	assert.Equal(t, "log.txt,2,4,an error", lines[1])
}

func TestFormat_CSVExtract(t *testing.T) {
	result, engine := run(t,
		`SELECT EXTRACT "id=(\d+)" FROM WHERE CONTAINS "id" AS CSV`,
		"id=1 id=2\n", "log.txt")

	out, err := Format(result, engine)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "file,line,extracted", lines[0])
	assert.Equal(t, "log.txt,1,1", lines[1])
	assert.Equal(t, "log.txt,1,2", lines[2])
}

func TestFormat_EmptyResult(t *testing.T) {
	result, engine := run(t,
		`SELECT FROM WHERE CONTAINS "nothing"`,
		"a\nb\n", "")

	out, err := Format(result, engine)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}
