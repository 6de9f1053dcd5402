package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level wrapstats configuration.
type Config struct {
	RootDir        string           `mapstructure:"root_dir"`
	Registry       string           `mapstructure:"registry"`
	Output         string           `mapstructure:"output"`
	SelfDay        int              `mapstructure:"self_day"`
	DoneStatus     string           `mapstructure:"done_status"`
	FolderPrefix   string           `mapstructure:"folder_prefix"`
	Jobs           int              `mapstructure:"jobs"`
	Cloc           Cloc             `mapstructure:"cloc"`
	WeekLabels     []string         `mapstructure:"week_labels"`
	Infrastructure []Infrastructure `mapstructure:"infrastructure"`
	History        History          `mapstructure:"history"`
	Log            Log              `mapstructure:"log"`
	Terminal       Terminal         `mapstructure:"output_style"`
}

// Cloc configures the external line counter.
type Cloc struct {
	Binary      string        `mapstructure:"binary"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ExcludeDirs []string      `mapstructure:"exclude_dirs"`
}

// Infrastructure is a fixed supporting project listed in the report.
type Infrastructure struct {
	Name string `mapstructure:"name" json:"name"`
	Desc string `mapstructure:"desc" json:"desc"`
}

// History configures the run history database.
type History struct {
	Enabled bool   `mapstructure:"enabled"`
	DB      string `mapstructure:"db"`
}

// Log configures the structured logger.
type Log struct {
	Level      string `mapstructure:"level"`
	JSON       bool   `mapstructure:"json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Terminal defines output preferences.
type Terminal struct {
	Color bool `mapstructure:"color"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// resolveAgainst makes a relative path relative to base.
func resolveAgainst(base, path string) string {
	path = expandPath(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Load reads configuration from the given path (or wrapstats.yaml in the
// working directory) and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("root_dir", DefaultRootDir)
	v.SetDefault("registry", DefaultRegistry)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("self_day", DefaultSelfDay)
	v.SetDefault("done_status", DefaultDoneStatus)
	v.SetDefault("folder_prefix", DefaultFolderPrefix)
	v.SetDefault("jobs", DefaultJobs)
	v.SetDefault("cloc.binary", DefaultCloc.Binary)
	v.SetDefault("cloc.timeout", DefaultCloc.Timeout)
	v.SetDefault("cloc.exclude_dirs", DefaultCloc.ExcludeDirs)
	v.SetDefault("week_labels", DefaultWeekLabels)
	v.SetDefault("history.enabled", DefaultHistory.Enabled)
	v.SetDefault("history.db", DefaultHistory.DB)
	v.SetDefault("log.level", DefaultLog.Level)
	v.SetDefault("log.max_size_mb", DefaultLog.MaxSizeMB)
	v.SetDefault("log.max_backups", DefaultLog.MaxBackups)
	v.SetDefault("log.max_age_days", DefaultLog.MaxAgeDays)
	v.SetDefault("output_style.color", DefaultTerminal.Color)

	v.SetEnvPrefix("WRAPSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, filepath.Ext(DefaultConfigFile)))
		v.SetConfigType("yaml")
	}

	// Missing default config file is not an error; an explicit one is.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Slices of structs have no viper default key; fill them here.
	if len(cfg.Infrastructure) == 0 {
		cfg.Infrastructure = DefaultInfrastructure
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.RootDir = expandPath(cfg.RootDir)
	cfg.History.DB = expandPath(cfg.History.DB)
	cfg.Log.File = expandPath(cfg.Log.File)

	return &cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if len(c.WeekLabels) != 5 {
		return fmt.Errorf("week_labels must have exactly 5 entries, got %d", len(c.WeekLabels))
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Cloc.Timeout <= 0 {
		return fmt.Errorf("cloc.timeout must be positive, got %s", c.Cloc.Timeout)
	}
	if c.Cloc.Binary == "" {
		return errors.New("cloc.binary must not be empty")
	}
	return nil
}

// RegistryPath returns the registry location resolved against the root.
func (c *Config) RegistryPath() string {
	return resolveAgainst(c.RootDir, c.Registry)
}

// OutputPath returns the artifact location resolved against the root.
func (c *Config) OutputPath() string {
	return resolveAgainst(c.RootDir, c.Output)
}
