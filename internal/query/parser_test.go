package query

import (
	"errors"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, input string) *Query {
	t.Helper()
	q, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", input, err)
	}
	return q
}

func TestParser_Defaults(t *testing.T) {
	q := mustParse(t, `SELECT FROM "f.txt"`)

	if q.Command != CommandFind {
		t.Errorf("Command = %v, want FIND", q.Command)
	}
	if q.Target != TargetLines {
		t.Errorf("Target = %v, want LINES", q.Target)
	}
	if q.Output != OutputText {
		t.Errorf("Output = %v, want TEXT", q.Output)
	}
	if q.FilePattern != "f.txt" {
		t.Errorf("FilePattern = %q, want %q", q.FilePattern, "f.txt")
	}
	if len(q.Conditions) != 0 {
		t.Errorf("Conditions = %v, want empty", q.Conditions)
	}
}

func TestParser_RoundTrip(t *testing.T) {
	q := mustParse(t, `SELECT WORDS FROM "f.txt" WHERE STARTS WITH "err" AND ENDS WITH "!" IGNORE CASE`)

	if q.Target != TargetWords {
		t.Errorf("Target = %v, want WORDS", q.Target)
	}
	if q.FilePattern != "f.txt" {
		t.Errorf("FilePattern = %q, want %q", q.FilePattern, "f.txt")
	}
	if !q.Modifiers.IgnoreCase {
		t.Error("Modifiers.IgnoreCase = false, want true")
	}

	want := []Condition{
		{Kind: KindStartsWith, Value: "err", Logic: LogicAnd},
		{Kind: KindEndsWith, Value: "!", Logic: LogicAnd},
	}
	if !reflect.DeepEqual(q.Conditions, want) {
		t.Errorf("Conditions = %+v, want %+v", q.Conditions, want)
	}
}

func TestParser_Commands(t *testing.T) {
	q := mustParse(t, `SELECT COUNT LINES FROM "f.txt"`)
	if q.Command != CommandCount {
		t.Errorf("Command = %v, want COUNT", q.Command)
	}

	q = mustParse(t, `SELECT EXTRACT "(\d+)" FROM "f.txt" WHERE CONTAINS "ID"`)
	if q.Command != CommandExtract {
		t.Errorf("Command = %v, want EXTRACT", q.Command)
	}
	if q.ExtractPattern != `(\d+)` {
		t.Errorf("ExtractPattern = %q, want %q", q.ExtractPattern, `(\d+)`)
	}
}

func TestParser_SourceIsOptional(t *testing.T) {
	q := mustParse(t, `SELECT FROM WHERE CONTAINS "x"`)
	if q.FilePattern != "" {
		t.Errorf("FilePattern = %q, want empty", q.FilePattern)
	}
	if len(q.Conditions) != 1 || q.Conditions[0].Value != "x" {
		t.Errorf("Conditions = %+v, want one CONTAINS x", q.Conditions)
	}

	q = mustParse(t, `SELECT FROM IGNORE CASE`)
	if q.FilePattern != "" || !q.Modifiers.IgnoreCase {
		t.Errorf("got FilePattern %q IgnoreCase %v", q.FilePattern, q.Modifiers.IgnoreCase)
	}

	q = mustParse(t, `SELECT FROM`)
	if q.FilePattern != "" {
		t.Errorf("FilePattern = %q, want empty", q.FilePattern)
	}
}

func TestParser_ConditionKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Condition
	}{
		{
			name:  "bare string defaults to contains",
			input: `SELECT FROM WHERE "x"`,
			want:  Condition{Kind: KindContains, Value: "x", Logic: LogicAnd},
		},
		{
			name:  "explicit contains",
			input: `SELECT FROM WHERE CONTAINS "x"`,
			want:  Condition{Kind: KindContains, Value: "x", Logic: LogicAnd},
		},
		{
			name:  "matches is kept raw",
			input: `SELECT FROM WHERE MATCHES "[0-9]+"`,
			want:  Condition{Kind: KindMatches, Value: "[0-9]+", Logic: LogicAnd},
		},
		{
			name:  "at least",
			input: `SELECT FROM WHERE AT LEAST 2 TIMES "ab"`,
			want:  Condition{Kind: KindRepeat, Value: "ab", Logic: LogicAnd, Quantifier: "{2,}"},
		},
		{
			name:  "at most",
			input: `SELECT FROM WHERE AT MOST 3 TIMES "ab"`,
			want:  Condition{Kind: KindRepeat, Value: "ab", Logic: LogicAnd, Quantifier: "{0,3}"},
		},
		{
			name:  "exactly with TIMES omitted",
			input: `SELECT FROM WHERE EXACTLY 3 "ab"`,
			want:  Condition{Kind: KindRepeat, Value: "ab", Logic: LogicAnd, Quantifier: "{3}"},
		},
		{
			name:  "between",
			input: `SELECT FROM WHERE BETWEEN 2 AND 4 TIMES "ab"`,
			want:  Condition{Kind: KindRepeat, Value: "ab", Logic: LogicAnd, Quantifier: "{2,4}"},
		},
		{
			name:  "quantifier wins over an explicit kind keyword",
			input: `SELECT FROM WHERE AT LEAST 2 TIMES CONTAINS "ab"`,
			want:  Condition{Kind: KindRepeat, Value: "ab", Logic: LogicAnd, Quantifier: "{2,}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustParse(t, tt.input)
			if len(q.Conditions) != 1 {
				t.Fatalf("got %d conditions, want 1", len(q.Conditions))
			}
			if !reflect.DeepEqual(q.Conditions[0], tt.want) {
				t.Errorf("Condition = %+v, want %+v", q.Conditions[0], tt.want)
			}
		})
	}
}

func TestParser_ConnectorsAttachToNewCondition(t *testing.T) {
	q := mustParse(t, `SELECT FROM "f.txt" WHERE CONTAINS "a" OR CONTAINS "b" AND NOT CONTAINS "c"`)

	want := []Condition{
		{Kind: KindContains, Value: "a", Logic: LogicAnd},
		{Kind: KindContains, Value: "b", Logic: LogicOr},
		{Kind: KindContains, Value: "c", Logic: LogicAnd, Negated: true},
	}
	if !reflect.DeepEqual(q.Conditions, want) {
		t.Errorf("Conditions = %+v, want %+v", q.Conditions, want)
	}
}

func TestParser_Modifiers(t *testing.T) {
	q := mustParse(t, `SELECT FROM "f.txt" IGNORE CASE WHOLE WORD MULTILINE DOTALL CONTEXT 3`)

	want := Modifiers{
		IgnoreCase:   true,
		WholeWord:    true,
		Multiline:    true,
		DotAll:       true,
		ContextLines: 3,
	}
	if q.Modifiers != want {
		t.Errorf("Modifiers = %+v, want %+v", q.Modifiers, want)
	}
}

func TestParser_OutputFormats(t *testing.T) {
	if q := mustParse(t, `SELECT FROM "f.txt" AS JSON`); q.Output != OutputJSON {
		t.Errorf("Output = %v, want JSON", q.Output)
	}
	if q := mustParse(t, `SELECT FROM "f.txt" AS CSV`); q.Output != OutputCSV {
		t.Errorf("Output = %v, want CSV", q.Output)
	}
}

func TestParser_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantExpected TokenType
		wantValue    string
	}{
		{
			name:         "missing FROM",
			input:        `SELECT WHERE CONTAINS "x"`,
			wantExpected: TokenKeyword,
			wantValue:    "FROM",
		},
		{
			name:         "missing SELECT",
			input:        `FROM "f.txt"`,
			wantExpected: TokenKeyword,
			wantValue:    "SELECT",
		},
		{
			name:         "extract without a pattern",
			input:        `SELECT EXTRACT FROM "f.txt"`,
			wantExpected: TokenString,
		},
		{
			name:         "condition without a literal",
			input:        `SELECT FROM "f.txt" WHERE CONTAINS`,
			wantExpected: TokenString,
		},
		{
			name:         "starts without with",
			input:        `SELECT FROM "f.txt" WHERE STARTS "x"`,
			wantExpected: TokenKeyword,
			wantValue:    "WITH",
		},
		{
			name:         "at without least or most",
			input:        `SELECT FROM "f.txt" WHERE AT 3 TIMES "x"`,
			wantExpected: TokenKeyword,
			wantValue:    "LEAST or MOST",
		},
		{
			name:         "between with a reversed range",
			input:        `SELECT FROM "f.txt" WHERE BETWEEN 4 AND 2 TIMES "x"`,
			wantExpected: TokenNumber,
			wantValue:    "a number >= 4",
		},
		{
			name:         "ignore without case",
			input:        `SELECT FROM "f.txt" IGNORE`,
			wantExpected: TokenKeyword,
			wantValue:    "CASE",
		},
		{
			name:         "context without a count",
			input:        `SELECT FROM "f.txt" CONTEXT`,
			wantExpected: TokenNumber,
		},
		{
			name:         "as with an unknown format",
			input:        `SELECT FROM "f.txt" AS XML`,
			wantExpected: TokenKeyword,
			wantValue:    "JSON or CSV",
		},
		{
			name:         "trailing garbage",
			input:        `SELECT FROM "f.txt" hello`,
			wantExpected: TokenEOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("Parse() error = %T (%v), want *SyntaxError", err, err)
			}
			if synErr.Expected != tt.wantExpected {
				t.Errorf("Expected = %v, want %v", synErr.Expected, tt.wantExpected)
			}
			if synErr.ExpectedValue != tt.wantValue {
				t.Errorf("ExpectedValue = %q, want %q", synErr.ExpectedValue, tt.wantValue)
			}
		})
	}
}

func TestParser_ErrorPosition(t *testing.T) {
	_, err := Parse(`SELECT WHERE CONTAINS "x"`)
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error = %T, want *SyntaxError", err)
	}
	if synErr.Line != 1 || synErr.Column != 8 {
		t.Errorf("position = %d:%d, want 1:8", synErr.Line, synErr.Column)
	}
	if synErr.Got != TokenKeyword || synErr.GotValue != "WHERE" {
		t.Errorf("got token = %v %q, want keyword WHERE", synErr.Got, synErr.GotValue)
	}
}
