// Package paths centralizes filesystem path rules: where the Elm package
// cache lives per platform and how contextual paths are matched against
// project source directories.
package paths

import (
	"path/filepath"
	"strings"
)

// PackageCacheRoot returns the directory holding downloaded packages for the
// given tooling version, e.g. ~/.elm/0.19.1/packages. It is a pure function
// of its inputs so per-OS behavior stays unit-testable (goos is a GOOS value,
// getenv is usually os.Getenv).
//
// ELM_HOME overrides the platform default root. Returns "" when no root can
// be determined; callers treat that as "no package cache".
func PackageCacheRoot(goos string, getenv func(string) string, toolingVersion string) string {
	root := getenv("ELM_HOME")
	if root == "" {
		if goos == "windows" {
			appData := getenv("APPDATA")
			if appData == "" {
				return ""
			}
			root = filepath.Join(appData, "elm")
		} else {
			home := getenv("HOME")
			if home == "" {
				return ""
			}
			root = filepath.Join(home, ".elm")
		}
	}
	if toolingVersion == "" {
		return ""
	}
	return filepath.Join(root, toolingVersion, "packages")
}

// IsWithinDir reports whether path is dir itself or inside it.
// Both paths are cleaned before comparison; no symlink resolution is
// performed (project source dirs are compared as declared).
func IsWithinDir(path, dir string) bool {
	path = filepath.Clean(path)
	dir = filepath.Clean(dir)
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
