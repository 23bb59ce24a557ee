package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// WorkspaceFile is the optional .ecb/workspace.toml declaration. Each
// [[root]] entry names one workspace root; when any are present they replace
// the configured roots.
type WorkspaceFile struct {
	Roots []WorkspaceRoot `toml:"root"`
}

// WorkspaceRoot is a single [[root]] entry.
type WorkspaceRoot struct {
	Path string `toml:"path"`
}

// LoadWorkspaceFile reads .ecb/workspace.toml under the workspace root. A
// missing file yields (nil, nil).
func LoadWorkspaceFile(workspaceRoot string) (*WorkspaceFile, error) {
	path := filepath.Join(workspaceRoot, DirName, "workspace.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var wf WorkspaceFile
	if err := toml.Unmarshal(data, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// EffectiveRoots resolves the roots to scan for manifests. Declaration file
// roots win over configured roots; relative paths are resolved against the
// workspace root and duplicates are dropped.
func EffectiveRoots(workspaceRoot string, cfg *Config, wf *WorkspaceFile) []string {
	roots := cfg.Workspace.Roots
	if wf != nil && len(wf.Roots) > 0 {
		roots = make([]string, 0, len(wf.Roots))
		for _, r := range wf.Roots {
			roots = append(roots, r.Path)
		}
	}

	seen := make(map[string]bool, len(roots))
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		if r == "" {
			continue
		}
		if !filepath.IsAbs(r) {
			r = filepath.Join(workspaceRoot, r)
		}
		r = filepath.Clean(r)
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
