package repl

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const defaultHistoryName = ".grepql_history"

// History keeps the queries entered across REPL sessions, one per line
// in a plain text file.
type History struct {
	path    string
	entries []string
}

// LoadHistory reads the history file at path, creating state for a new
// one when it does not exist yet. An empty path resolves to
// ~/.grepql_history.
func LoadHistory(path string) (*History, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, defaultHistoryName)
	}

	h := &History{path: path}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			h.entries = append(h.entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return h, nil
}

// Append records one query, in memory and on disk.
func (h *History) Append(entry string) error {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil
	}
	h.entries = append(h.entries, entry)

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(entry + "\n")
	return err
}

// Entries returns the recorded queries, oldest first.
func (h *History) Entries() []string {
	return h.entries
}
