package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// UserConfig holds per-user default search preferences, loaded from a
// small TOML file rather than the per-index XML configuration (§6's XML
// format describes an index's sources and filters; these are just the
// CLI's own defaults, analogous to how standardbeagle-lci's
// build_artifact_detector.go reaches for pelletier/go-toml/v2 to parse
// a config file that isn't itself the tool's primary wire format).
type UserConfig struct {
	DefaultSearchType string `toml:"default_search_type"`
	CaseSensitive     bool   `toml:"case_sensitive"`
	DefaultLimit      int    `toml:"default_limit"`
}

// LoadUserConfig reads path, returning a zero-value UserConfig (not an
// error) when the file does not exist.
func LoadUserConfig(path string) (UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return UserConfig{}, nil
		}
		return UserConfig{}, err
	}
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return UserConfig{}, err
	}
	return cfg, nil
}

func (c UserConfig) applyDefaults(searchType *string, caseSensitive *bool, limit *int) {
	if *searchType == "" && c.DefaultSearchType != "" {
		*searchType = c.DefaultSearchType
	}
	if c.CaseSensitive {
		*caseSensitive = true
	}
	if *limit == 0 && c.DefaultLimit != 0 {
		*limit = c.DefaultLimit
	}
}
