package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DirName is the per-workspace directory holding ECB files.
const DirName = ".ecb"

// SupportedConfigVersions lists the config schema versions this build reads.
var SupportedConfigVersions = []int{1}

// Config represents the complete ECB configuration (v1 schema)
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Workspace WorkspaceConfig `json:"workspace" mapstructure:"workspace"`
	Packages  PackagesConfig  `json:"packages" mapstructure:"packages"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// WorkspaceConfig contains manifest discovery configuration
type WorkspaceConfig struct {
	Roots       []string `json:"roots" mapstructure:"roots"`
	ExcludeDirs []string `json:"excludeDirs" mapstructure:"excludeDirs"`
}

// PackagesConfig contains dependency package resolution configuration
type PackagesConfig struct {
	// Root overrides the platform package cache location when set.
	Root string `json:"root" mapstructure:"root"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file" mapstructure:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Workspace: WorkspaceConfig{
			Roots:       []string{"."},
			ExcludeDirs: []string{"elm-stuff", "node_modules", ".git"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadResult carries a loaded config along with where it came from.
type LoadResult struct {
	Config       *Config
	ConfigPath   string
	UsedDefaults bool
	EnvOverrides []EnvOverride
}

// LoadConfig loads configuration from .ecb/config.json, applying environment
// overrides.
func LoadConfig(workspaceRoot string) (*Config, error) {
	result, err := LoadConfigWithDetails(workspaceRoot)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// LoadConfigWithDetails loads configuration and reports its provenance.
// ECB_CONFIG_PATH names an explicit config file; otherwise
// <workspaceRoot>/.ecb/config.json is used, falling back to defaults when
// absent.
func LoadConfigWithDetails(workspaceRoot string) (*LoadResult, error) {
	if path := os.Getenv("ECB_CONFIG_PATH"); path != "" {
		cfg, err := loadConfigFromPath(path)
		if err != nil {
			return nil, err
		}
		return &LoadResult{Config: cfg, ConfigPath: path, EnvOverrides: applyEnvOverrides(cfg)}, nil
	}

	v := viper.New()

	// Set defaults
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("workspace.roots", def.Workspace.Roots)
	v.SetDefault("workspace.excludeDirs", def.Workspace.ExcludeDirs)
	v.SetDefault("packages.root", def.Packages.Root)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.file", def.Logging.File)

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(workspaceRoot, DirName))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return &LoadResult{Config: def, UsedDefaults: true, EnvOverrides: applyEnvOverrides(def)}, nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &LoadResult{Config: &cfg, ConfigPath: v.ConfigFileUsed(), EnvOverrides: applyEnvOverrides(&cfg)}, nil
}

// loadConfigFromPath reads one explicit config file. Fields absent from the
// file keep their defaults.
func loadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to .ecb/config.json
func (c *Config) Save(workspaceRoot string) error {
	configPath := filepath.Join(workspaceRoot, DirName, "config.json")

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(configPath, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	supported := false
	for _, v := range SupportedConfigVersions {
		if c.Version == v {
			supported = true
			break
		}
	}
	if !supported {
		return &ConfigError{Field: "version", Message: fmt.Sprintf("unsupported config version %d", c.Version)}
	}

	if len(c.Workspace.Roots) == 0 {
		return &ConfigError{Field: "workspace.roots", Message: "at least one workspace root is required"}
	}

	if c.Logging.Level != "" && !validLevel(c.Logging.Level) {
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown log level %q", c.Logging.Level)}
	}

	return nil
}

func validLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
