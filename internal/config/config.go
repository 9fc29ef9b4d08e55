// Package config loads crosslocale's project defaults from a
// .crosslocale.kdl file, the same KDL-based configuration format the
// teacher tool uses for its own .lci.kdl.
package config

import (
	"os"
	"path/filepath"
)

// Config holds the defaults applied to new projects and to pipelines that
// don't receive an explicit override on the command line. CLI flags always
// take precedence over a value loaded here.
type Config struct {
	Splitter           string
	OriginalLocale     string
	ReferenceLocales   []string
	TranslationLocale  string
	TranslationsDir    string
	Include            []string
	Exclude            []string
	LogVerbose         bool
}

// Default returns the built-in defaults used when no .crosslocale.kdl file
// is present, matching create-project's own fallback values.
func Default() *Config {
	return &Config{
		Splitter:          "same-file-tree",
		OriginalLocale:    "en_US",
		ReferenceLocales:  nil,
		TranslationLocale: "ru_RU",
		TranslationsDir:   "translations",
		Include:           []string{},
		Exclude:           []string{},
		LogVerbose:        false,
	}
}

// Load looks for a .crosslocale.kdl file in searchDir and merges it over
// the built-in defaults. A missing file is not an error: Load returns the
// defaults unchanged.
func Load(searchDir string) (*Config, error) {
	cfg := Default()

	kdlPath := filepath.Join(searchDir, ".crosslocale.kdl")
	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return cfg, nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, err
	}

	if err := parseKDL(string(content), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
