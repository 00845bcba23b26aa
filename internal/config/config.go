// Package config holds the settings passed explicitly into the recording
// session: file locations, the default tree, the command alias table and the
// reminder interval.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/actlog/internal/tree"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ReminderUnset asks the user for an interval at session start.
const ReminderUnset = -1

// Config is the complete configuration of a session.
type Config struct {
	SchemaPath  string `yaml:"schema_path"`
	DataPath    string `yaml:"data_path"`
	HistoryPath string `yaml:"history_path"`

	// OptionsKey is the top-level branch navigation starts from.
	OptionsKey string `yaml:"options_key"`
	// DefaultOption is the leaf created under OptionsKey for a new file.
	DefaultOption string `yaml:"default_option"`
	// RootLabel prefixes displayed paths.
	RootLabel string `yaml:"root_label"`

	// ReminderMinutes caps empty-amount recordings. 0 disables them;
	// ReminderUnset asks at startup.
	ReminderMinutes int `yaml:"reminder_minutes"`

	Aliases map[string]string `yaml:"aliases"`

	Forms bool `yaml:"forms"`
	Log   bool `yaml:"log"`
}

// DefaultAliases maps single-letter shortcuts to command words.
func DefaultAliases() map[string]string {
	return map[string]string{
		"C": "CONFIRM",
		"H": "HELP",
		"N": "NO",
		"P": "PRINT",
		"Y": "YES",
	}
}

// DefaultConfig returns a Config rooted at dir (normally ~/.actlog).
func DefaultConfig(dir string) Config {
	return Config{
		SchemaPath:      filepath.Join(dir, "schema.json"),
		DataPath:        filepath.Join(dir, "data.json"),
		HistoryPath:     filepath.Join(dir, "history.db"),
		OptionsKey:      "options",
		DefaultOption:   "default",
		RootLabel:       "ROOT",
		ReminderMinutes: ReminderUnset,
		Aliases:         DefaultAliases(),
	}
}

// DefaultTree builds the tree written when no file exists yet:
// {"options": {"default": 0}}.
func (c Config) DefaultTree() *tree.Node {
	options := tree.NewBranch()
	_ = tree.AddLeaf(options, c.DefaultOption)
	root := tree.NewBranch()
	_ = root.Insert(c.OptionsKey, options)
	return root
}

// ReminderInterval returns the configured cap, or 0 when disabled or unset.
func (c Config) ReminderInterval() time.Duration {
	if c.ReminderMinutes <= 0 {
		return 0
	}
	return time.Duration(c.ReminderMinutes) * time.Minute
}

// Command maps raw input through the alias table and upper-cases it.
func (c Config) Command(input string) string {
	word := strings.ToUpper(strings.TrimSpace(input))
	if mapped, ok := c.Aliases[word]; ok {
		return strings.ToUpper(mapped)
	}
	return word
}

// Validate reports settings the session cannot run with.
func (c Config) Validate() error {
	switch {
	case c.SchemaPath == "":
		return fmt.Errorf("schema path is required")
	case c.DataPath == "":
		return fmt.Errorf("data path is required")
	case c.OptionsKey == "":
		return fmt.Errorf("options key is required")
	case c.DefaultOption == "":
		return fmt.Errorf("default option is required")
	case c.ReminderMinutes < ReminderUnset:
		return fmt.Errorf("reminder minutes must be %d (ask), 0 (off) or positive", ReminderUnset)
	}
	return nil
}

// Dir returns the default configuration directory, ~/.actlog.
func Dir() (string, error) {
	if v := os.Getenv("ACTLOG_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".actlog"), nil
}

// Load builds the configuration from defaults, dir/config.yaml and the
// environment, in increasing order of precedence. A missing file is fine.
func Load(dir string) (Config, error) {
	cfg := DefaultConfig(dir)
	if err := LoadFile(filepath.Join(dir, "config.yaml"), &cfg); err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg.
func LoadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	aliases := cfg.Aliases
	cfg.Aliases = nil
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		cfg.Aliases = aliases
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	// File aliases extend the defaults rather than replacing them.
	merged := make(map[string]string, len(aliases)+len(cfg.Aliases))
	for k, v := range aliases {
		merged[k] = v
	}
	for k, v := range cfg.Aliases {
		merged[strings.ToUpper(k)] = strings.ToUpper(v)
	}
	cfg.Aliases = merged
	return nil
}

// ApplyEnv overlays ACTLOG_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("ACTLOG_SCHEMA"); v != "" {
		cfg.SchemaPath = v
	}
	if v := os.Getenv("ACTLOG_DATA"); v != "" {
		cfg.DataPath = v
	}
	if v, ok := os.LookupEnv("ACTLOG_DB"); ok {
		cfg.HistoryPath = v
	}
	if v := os.Getenv("ACTLOG_REMIND"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= ReminderUnset {
			cfg.ReminderMinutes = n
		}
	}
	if v := os.Getenv("ACTLOG_FORMS"); v != "" {
		cfg.Forms, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ACTLOG_LOG"); v != "" {
		cfg.Log, _ = strconv.ParseBool(v)
	}
}

// BindFlags registers flags that override cfg when parsed.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.SchemaPath, "schema", cfg.SchemaPath, "Schema file (category shape)")
	fs.StringVar(&cfg.DataPath, "data", cfg.DataPath, "Data file (accumulated minutes)")
	fs.StringVar(&cfg.HistoryPath, "db", cfg.HistoryPath, "History database; empty disables history")
	fs.IntVar(&cfg.ReminderMinutes, "remind", cfg.ReminderMinutes, "Reminder interval in minutes (0 = none, -1 = ask)")
	fs.BoolVar(&cfg.Forms, "forms", cfg.Forms, "Use interactive forms on a terminal")
	fs.BoolVar(&cfg.Log, "log", cfg.Log, "Write structured event logs to stderr")
}
