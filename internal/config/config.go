// Package config loads a Runtime's Config from a TOML file, layered under
// the programmatic defaults. Fields that cannot be expressed in TOML
// (SourceTree, Logger) are left for the caller to set after Load returns.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/borolgs/js-runtime"
)

// File is the on-disk shape of a runtime config: workers, pages_dir, and a
// [functions] table of name -> source pairs.
type File struct {
	Workers   int               `toml:"workers"`
	PagesDir  string            `toml:"pages_dir"`
	Functions map[string]string `toml:"functions"`
}

// Load reads path and decodes it into a runtime.Config. A missing file is
// not an error -- it returns runtime's zero-value Config, which New fills
// in with its own defaults. A malformed file returns an error. Unrecognized
// keys are returned as warnings rather than failing the load, since they're
// usually typos rather than fatal misconfiguration.
func Load(path string) (runtime.Config, []string, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		if os.IsNotExist(err) {
			return runtime.Config{}, nil, nil
		}
		return runtime.Config{}, nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	var warnings []string
	for _, key := range meta.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unknown config key: %s", key))
	}

	return runtime.Config{
		Workers:   f.Workers,
		PagesDir:  f.PagesDir,
		Functions: f.Functions,
	}, warnings, nil
}
