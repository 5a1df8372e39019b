// Package config provides configuration for the notesmcp binary.
// Loads from: env vars > .notesmcp/config.toml > built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all notesmcp configuration, loaded from TOML + env.
type Config struct {
	Notes  NotesConfig  `toml:"notes"`
	Script ScriptConfig `toml:"script"`
	Log    LogConfig    `toml:"log"`
}

// NotesConfig holds Notes account settings.
type NotesConfig struct {
	Account         string `toml:"account"`
	DefaultFolder   string `toml:"default_folder"`
	AllowDuplicates bool   `toml:"allow_duplicate_names"`
}

// ScriptConfig holds osascript execution settings.
type ScriptConfig struct {
	OsascriptPath  string `toml:"osascript_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info" (default), "warn", "error"
}

// DefaultConfig returns a Config with all built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Notes: NotesConfig{
			Account:       "iCloud",
			DefaultFolder: "Notes",
		},
		Script: ScriptConfig{
			OsascriptPath:  "osascript",
			TimeoutSeconds: 45,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Timeout returns the per-call osascript ceiling as a duration.
func (c *Config) Timeout() time.Duration {
	if c.Script.TimeoutSeconds <= 0 {
		return 45 * time.Second
	}
	return time.Duration(c.Script.TimeoutSeconds) * time.Second
}

// LoadConfig merges all configuration sources: defaults < TOML file < env.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(findConfigFile())
}

// LoadConfigFrom loads configuration from a specific file path, merging with
// defaults and env vars. An empty or absent path just applies defaults and
// env.
func LoadConfigFrom(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			meta, err := toml.DecodeFile(configPath, cfg)
			if err != nil {
				return nil, fmt.Errorf("parse config %s: %w", configPath, err)
			}
			warnUnknownKeys(meta, configPath)
		}
	}

	if v := os.Getenv("NOTES_ACCOUNT"); v != "" {
		cfg.Notes.Account = v
	}
	if v := os.Getenv("NOTES_DEFAULT_FOLDER"); v != "" {
		cfg.Notes.DefaultFolder = v
	}
	if v := os.Getenv("NOTES_ALLOW_DUPLICATES"); v != "" {
		allow, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse NOTES_ALLOW_DUPLICATES=%q: %w", v, err)
		}
		cfg.Notes.AllowDuplicates = allow
	}
	if v := os.Getenv("NOTES_OSASCRIPT"); v != "" {
		cfg.Script.OsascriptPath = v
	}
	if v := os.Getenv("NOTES_SCRIPT_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse NOTES_SCRIPT_TIMEOUT=%q: %w", v, err)
		}
		cfg.Script.TimeoutSeconds = secs
	}
	if v := os.Getenv("NOTES_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}

// findConfigFile looks for .notesmcp/config.toml in the CWD, then the home
// directory.
func findConfigFile() string {
	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, ".notesmcp", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".notesmcp", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ConfigFilePath returns where the config file lives under baseDir.
func ConfigFilePath(baseDir string) string {
	return filepath.Join(baseDir, ".notesmcp", "config.toml")
}

// GenerateConfig writes a default config.toml with comments under baseDir.
func GenerateConfig(baseDir string) (string, error) {
	configPath := ConfigFilePath(baseDir)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(generateTOMLContent()), 0o600); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return configPath, nil
}

func generateTOMLContent() string {
	var b strings.Builder
	b.WriteString("# notesmcp configuration\n")
	b.WriteString("#\n")
	b.WriteString("# Priority: environment variables > this file > built-in defaults\n")
	b.WriteString("# Environment variables: NOTES_ACCOUNT, NOTES_DEFAULT_FOLDER,\n")
	b.WriteString("#   NOTES_ALLOW_DUPLICATES, NOTES_OSASCRIPT, NOTES_SCRIPT_TIMEOUT,\n")
	b.WriteString("#   NOTES_LOG_LEVEL\n\n")

	b.WriteString("[notes]\n")
	b.WriteString("# account = \"iCloud\"            # Notes account to operate on\n")
	b.WriteString("# default_folder = \"Notes\"      # target for note operations without a path\n")
	b.WriteString("# allow_duplicate_names = false # permit duplicate note names on create\n\n")

	b.WriteString("[script]\n")
	b.WriteString("# osascript_path = \"osascript\"\n")
	b.WriteString("# timeout_seconds = 45          # per-call ceiling; Notes can be slow to wake\n\n")

	b.WriteString("[log]\n")
	b.WriteString("# level = \"info\"                # debug, info, warn, error\n")
	return b.String()
}

// configSuggestions maps common misspellings to the intended key.
var configSuggestions = map[string]string{
	"acount":          "account",
	"accounts":        "account",
	"folder":          "default_folder",
	"timeout":         "timeout_seconds",
	"allow_duplicate": "allow_duplicate_names",
	"loglevel":        "level",
}

func warnUnknownKeys(meta toml.MetaData, configPath string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}

	fname := filepath.Base(configPath)
	for _, key := range undecoded {
		keyStr := key.String()
		lastPart := key[len(key)-1]

		if suggestion, ok := configSuggestions[lastPart]; ok {
			fmt.Fprintf(os.Stderr, "notesmcp: WARNING: unknown key %q in %s — did you mean %q?\n",
				keyStr, fname, suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "notesmcp: WARNING: unknown key %q in %s (will be ignored)\n",
				keyStr, fname)
		}
	}
}
