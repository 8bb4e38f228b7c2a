// Package config loads linkdown's optional TOML configuration file.
//
// Command-line flags always win over the file, and the file wins over
// built-in defaults. A typical file:
//
//	input_snapshot_base  = "~/mddo/configs/pushed_configs"
//	output_snapshot_base = "~/mddo/configs/linkdown"
//	artifact_dirs        = ["configs", "hosts"]
//	best_effort          = false
//
// Config file locations (priority order):
//  1. --config flag
//  2. $LINKDOWN_CONFIG
//  3. ./linkdown.toml
//  4. $XDG_CONFIG_HOME/linkdown/config.toml
//  5. ~/.config/linkdown/config.toml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/snapshot"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path.
	EnvConfigPath = "LINKDOWN_CONFIG"
	// ConfigFileName is the config file looked up in the working directory.
	ConfigFileName = "linkdown.toml"
	// ConfigDirName is the config directory name under XDG.
	ConfigDirName = "linkdown"
)

// Config holds settings shared by the commands.
type Config struct {
	InputSnapshotBase  string   `toml:"input_snapshot_base"`
	OutputSnapshotBase string   `toml:"output_snapshot_base"`
	ArtifactDirs       []string `toml:"artifact_dirs"`
	BestEffort         bool     `toml:"best_effort"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{ArtifactDirs: slices.Clone(snapshot.DefaultArtifactDirs)}
}

// Load reads the config file at path, or the first file found by
// FindPath when path is empty. With no file anywhere the defaults are
// returned together with an empty path.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = FindPath()
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath reads and validates one config file. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func LoadFromPath(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	cfg.InputSnapshotBase = ExpandHome(cfg.InputSnapshotBase)
	cfg.OutputSnapshotBase = ExpandHome(cfg.OutputSnapshotBase)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.ArtifactDirs) == 0 {
		c.ArtifactDirs = slices.Clone(snapshot.DefaultArtifactDirs)
	}
}

// Validate checks the artifact directory names.
func (c *Config) Validate() error {
	for _, dir := range c.ArtifactDirs {
		if err := errors.ValidateArtifactDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// FindPath returns the first existing config file in priority order, or
// an empty string.
func FindPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.toml")
		if fileExists(path) {
			return path
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", ConfigDirName, "config.toml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
