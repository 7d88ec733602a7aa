package types

// Match represents one matching candidate (a line or a word) found
// while executing a query.
type Match struct {
	File      string   `json:"file,omitempty"`
	Line      int      `json:"line"`
	Column    int      `json:"column,omitempty"`
	Text      string   `json:"text"`
	Before    []string `json:"before,omitempty"`
	After     []string `json:"after,omitempty"`
	Extracted []string `json:"extracted,omitempty"`
}

// Result aggregates the matches of one query execution across all of
// its input sources.
type Result struct {
	Query   string  `json:"query"`
	Count   int     `json:"count"`
	Matches []Match `json:"matches,omitempty"`
}
