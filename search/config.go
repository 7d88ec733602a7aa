package search

import (
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".grepql.yaml"

// Config holds tool-wide defaults that queries do not specify
// themselves. Everything a query does set takes precedence.
type Config struct {
	// Output overrides the default text rendering when a query has no
	// AS clause: "text", "json", or "csv".
	Output string `yaml:"output"`
	// Context is the default number of context lines when a query has
	// no CONTEXT modifier.
	Context int `yaml:"context"`
	// NoColor disables colored output, same as the --no-color flag.
	NoColor bool `yaml:"no_color"`
	// HistoryFile is where the REPL persists query history. Empty means
	// ~/.grepql_history.
	HistoryFile string `yaml:"history_file"`
	// CacheSize bounds the compiled query plan cache.
	CacheSize int `yaml:"cache_size"`
}

// LoadConfig reads the configuration file at path. An empty path falls
// back to .grepql.yaml in the working directory, and a missing default
// file is not an error; an explicitly named file must exist.
func LoadConfig(path string) (Config, error) {
	var config Config

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}
	return config, nil
}
