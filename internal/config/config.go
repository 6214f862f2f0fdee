// Package config loads weeknotes configuration from JSONC files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/tailscale/hujson"
)

// Error variables for config loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrLogLevelInvalid    = errors.New("invalid log_level")
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	NotesFile  string `json:"notes_file,omitempty"`
	AtomicSave *bool  `json:"atomic_save,omitempty"`
	History    *bool  `json:"history,omitempty"`
	LogFile    string `json:"log_file,omitempty"`
	LogLevel   string `json:"log_level,omitempty"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// FileName is the default project config file name.
const FileName = ".weeknotes.json"

// Default returns the default configuration.
func Default() Config {
	return Config{
		AtomicSave: boolPtr(true),
		History:    boolPtr(true),
		LogLevel:   "info",
	}
}

// UseAtomicSave reports whether saves go through a temp file and rename.
func (c Config) UseAtomicSave() bool {
	return c.AtomicSave == nil || *c.AtomicSave
}

// UseHistory reports whether interactive sessions keep a history file.
func (c Config) UseHistory() bool {
	return c.History == nil || *c.History
}

// Level returns the parsed log level. Call after [Load] has validated it.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}

	return lvl
}

// LoadInput holds the inputs for [Load].
type LoadInput struct {
	WorkDir    string            // if empty, os.Getwd() is used
	ConfigPath string            // -c/--config flag value
	Overrides  Config            // flag values; empty fields mean no override
	Env        map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/weeknotes/config.json or $XDG_CONFIG_HOME/weeknotes/config.json)
// 3. Project config file at default location (.weeknotes.json, if exists)
// 4. Explicit config file via ConfigPath (replaces 3)
// 5. Flag overrides.
//
// Relative notes_file and log_file paths are resolved against the working directory.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDir
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	if globalPath := globalConfigPath(input.Env); globalPath != "" {
		globalCfg, loaded, err := loadFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg = merge(cfg, globalCfg)
			cfg.Sources.Global = globalPath
		}
	}

	projectPath, mustExist := filepath.Join(workDir, FileName), false
	if input.ConfigPath != "" {
		projectPath, mustExist = resolve(workDir, input.ConfigPath), true
	}

	projectCfg, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg = merge(cfg, projectCfg)
		cfg.Sources.Project = projectPath
	}

	cfg = merge(cfg, input.Overrides)

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("%w: %q", ErrLogLevelInvalid, cfg.LogLevel)
	}

	if cfg.NotesFile != "" {
		cfg.NotesFile = resolve(workDir, cfg.NotesFile)
	}

	if cfg.LogFile != "" {
		cfg.LogFile = resolve(workDir, cfg.LogFile)
	}

	return cfg, nil
}

// globalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/weeknotes/config.json if set, otherwise
// ~/.config/weeknotes/config.json. Returns empty string if neither is known.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "weeknotes", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "weeknotes", "config.json")
	}

	return ""
}

// loadFile loads a config file. If mustExist is false, a missing file returns
// a zero config and loaded=false.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			}

			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.NotesFile != "" {
		base.NotesFile = overlay.NotesFile
	}

	if overlay.AtomicSave != nil {
		base.AtomicSave = overlay.AtomicSave
	}

	if overlay.History != nil {
		base.History = overlay.History
	}

	if overlay.LogFile != "" {
		base.LogFile = overlay.LogFile
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	return base
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

func boolPtr(b bool) *bool {
	return &b
}
