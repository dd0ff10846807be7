// Package config loads BOLI's runtime configuration in layers: defaults,
// then an optional YAML file, then environment variables, then
// command-line flags, each overriding the last — built on
// github.com/knadh/koanf/v2's provider-layering pattern rather than a
// hand-rolled flag/env merge.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config is the fully-resolved set of knobs the CLI, REPL, and module
// loader read from.
type Config struct {
	// SearchDirs are the roots `require` walks for `.boli`/`.boli.xz`
	// modules, in priority order.
	SearchDirs []string `koanf:"search_dirs"`
	// PreludeDir, if set, is prepended to SearchDirs for the standard
	// library shipped alongside the interpreter.
	PreludeDir string `koanf:"prelude_dir"`
	// HistoryFile is where the REPL persists its readline history.
	HistoryFile string `koanf:"history_file"`
	// EnableXZModules is loaded from configuration (default true). The
	// module loader does not read it: internal/module always tries
	// `.boli.xz` files after `.boli` files.
	EnableXZModules bool `koanf:"enable_xz_modules"`
}

func defaultsMap() map[string]any {
	home, _ := os.UserHomeDir()
	return map[string]any{
		"search_dirs":       []string{"."},
		"prelude_dir":       "",
		"history_file":      home + "/.boli_history",
		"enable_xz_modules": true,
	}
}

// Load resolves Config from, in increasing priority: built-in defaults,
// configFile (if it exists), `BOLI_`-prefixed environment variables, and
// flags (if non-nil).
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, err
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	envProvider := env.Provider("BOLI_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "BOLI_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, err
		}
	}

	out := &Config{}
	if err := k.Unmarshal("", out); err != nil {
		return nil, err
	}
	return out, nil
}
