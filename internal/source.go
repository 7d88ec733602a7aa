package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolveSources expands a query's FROM pattern into concrete file
// paths. An empty pattern returns nil, meaning the caller should read
// the default input source (stdin). A pattern containing glob
// metacharacters is expanded; matching zero files is an error, since a
// silent empty result would be indistinguishable from "no matches".
func ResolveSources(pattern string) ([]string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, nil
	}

	if strings.ContainsAny(pattern, "*?[") {
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", pattern, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		sort.Strings(files)
		return files, nil
	}

	if _, err := os.Stat(pattern); err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", pattern, err)
	}
	return []string{pattern}, nil
}
