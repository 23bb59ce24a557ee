package config

import (
	"os"
	"path/filepath"
	"sort"
)

// EnvOverride records one environment variable applied on top of the loaded
// configuration.
type EnvOverride struct {
	EnvVar string `json:"envVar"`
	Path   string `json:"path"`
	Value  string `json:"value"`
}

// envVarMappings maps environment variables to config paths. Editors spawn
// `ecb lsp` without a flag surface, so env vars are the practical way to
// adjust a workspace's server.
var envVarMappings = map[string]string{
	"ECB_LOG_LEVEL":       "logging.level",
	"ECB_LOG_FILE":        "logging.file",
	"ECB_PACKAGES_ROOT":   "packages.root",
	"ECB_WORKSPACE_ROOTS": "workspace.roots",
}

// applyEnvOverrides applies recognized environment variables to cfg and
// reports which took effect. Invalid values are skipped.
func applyEnvOverrides(cfg *Config) []EnvOverride {
	vars := make([]string, 0, len(envVarMappings))
	for envVar := range envVarMappings {
		vars = append(vars, envVar)
	}
	sort.Strings(vars)

	var overrides []EnvOverride
	for _, envVar := range vars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		path := envVarMappings[envVar]
		if !applyOverride(cfg, path, value) {
			continue
		}
		overrides = append(overrides, EnvOverride{EnvVar: envVar, Path: path, Value: value})
	}
	return overrides
}

// applyOverride sets one config path. ECB_WORKSPACE_ROOTS holds a list in
// the platform's $PATH separator format.
func applyOverride(cfg *Config, path, value string) bool {
	switch path {
	case "logging.level":
		if !validLevel(value) {
			return false
		}
		cfg.Logging.Level = value
	case "logging.file":
		cfg.Logging.File = value
	case "packages.root":
		cfg.Packages.Root = value
	case "workspace.roots":
		cfg.Workspace.Roots = filepath.SplitList(value)
	default:
		return false
	}
	return true
}

// GetSupportedEnvVars returns the environment variables ECB honors.
func GetSupportedEnvVars() []string {
	vars := make([]string, 0, len(envVarMappings)+1)
	vars = append(vars, "ECB_CONFIG_PATH")
	for envVar := range envVarMappings {
		vars = append(vars, envVar)
	}
	sort.Strings(vars)
	return vars
}
