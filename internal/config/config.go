// Package config resolves runtime settings from defaults, an optional TOML
// file and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/tareas/internal/store/jsonstore"
)

// DefaultConfigFile is looked up in the working directory when -config is
// not given.
const DefaultConfigFile = "tareas.toml"

const (
	DefaultTheme     = "classic"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

type Config struct {
	File      string `toml:"file"`
	Theme     string `toml:"theme"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

func defaults() *Config {
	return &Config{
		File:      jsonstore.DefaultFile,
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load parses args with fs and layers the result over the config file and
// defaults. It returns the remaining positional arguments.
func Load(fs *flag.FlagSet, args []string) (*Config, []string, error) {
	var (
		configPath = fs.String("config", "", "path to a TOML config file (default ./"+DefaultConfigFile+")")
		file       = fs.String("file", "", "task list file (default "+jsonstore.DefaultFile+")")
		theme      = fs.String("theme", "", "colour theme: classic, neon or mono")
		logLevel   = fs.String("log-level", "", "diagnostic level: debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg := defaults()
	if err := loadFile(cfg, *configPath); err != nil {
		return nil, nil, err
	}

	if *file != "" {
		cfg.File = *file
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	return cfg, fs.Args(), nil
}

// loadFile decodes path over cfg. An explicit path must exist; the default
// one is optional.
func loadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("config file %s: unknown key %q", path, undec[0].String())
	}
	return nil
}
