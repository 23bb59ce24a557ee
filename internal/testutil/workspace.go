// Package testutil builds on-disk workspace fixtures for tests: project
// trees with manifests and a fake package cache with documentation bundles.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Workspace is a temporary directory tree holding one or more Elm projects
// plus a package cache directory usable as a loader's package-root override.
type Workspace struct {
	t *testing.T

	// Root is the workspace root that loaders scan.
	Root string

	// PackageRoot is the fake package cache, laid out
	// <author>/<name>/<version>/documentation.json.
	PackageRoot string
}

// NewWorkspace creates an empty workspace fixture under t.TempDir().
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	base := t.TempDir()
	w := &Workspace{
		t:           t,
		Root:        filepath.Join(base, "workspace"),
		PackageRoot: filepath.Join(base, "packages"),
	}
	for _, dir := range []string{w.Root, w.PackageRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return w
}

// WriteFile writes content to rel (slash-separated, relative to the
// workspace root), creating parent directories. Returns the absolute path.
func (w *Workspace) WriteFile(rel, content string) string {
	w.t.Helper()

	path := filepath.Join(w.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		w.t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

// WriteAppManifest writes an application elm.json under dir (relative to the
// workspace root, "" for the root itself) and returns its absolute path.
func (w *Workspace) WriteAppManifest(dir string, sourceDirs []string, deps map[string]string) string {
	w.t.Helper()

	if deps == nil {
		deps = map[string]string{}
	}
	manifest := map[string]interface{}{
		"type":               "application",
		"source-directories": sourceDirs,
		"elm-version":        "0.19.1",
		"dependencies": map[string]interface{}{
			"direct":   deps,
			"indirect": map[string]string{},
		},
		"test-dependencies": map[string]interface{}{
			"direct":   map[string]string{},
			"indirect": map[string]string{},
		},
	}
	return w.WriteFile(joinRel(dir, "elm.json"), marshal(w.t, manifest))
}

// WritePackageManifest writes a package elm.json under dir and returns its
// absolute path.
func (w *Workspace) WritePackageManifest(dir, name string, deps map[string]string) string {
	w.t.Helper()

	if deps == nil {
		deps = map[string]string{}
	}
	manifest := map[string]interface{}{
		"type":              "package",
		"name":              name,
		"summary":           "fixture package",
		"license":           "BSD-3-Clause",
		"version":           "1.0.0",
		"exposed-modules":   []string{},
		"elm-version":       "0.19.0 <= v < 0.20.0",
		"dependencies":      deps,
		"test-dependencies": map[string]string{},
	}
	return w.WriteFile(joinRel(dir, "elm.json"), marshal(w.t, manifest))
}

// WriteLegacyManifest writes a 0.18-era elm-package.json under dir and
// returns its absolute path.
func (w *Workspace) WriteLegacyManifest(dir string, exposedModules []string, deps map[string]string) string {
	w.t.Helper()

	if exposedModules == nil {
		exposedModules = []string{}
	}
	if deps == nil {
		deps = map[string]string{}
	}
	manifest := map[string]interface{}{
		"version":            "1.0.0",
		"summary":            "fixture project",
		"repository":         "https://github.com/fixture/fixture.git",
		"license":            "BSD-3-Clause",
		"source-directories": []string{"src"},
		"exposed-modules":    exposedModules,
		"dependencies":       deps,
		"elm-version":        "0.18.0 <= v < 0.19.0",
	}
	return w.WriteFile(joinRel(dir, "elm-package.json"), marshal(w.t, manifest))
}

// AddPackage writes a documentation bundle for name@version into the package
// cache and returns the package directory.
func (w *Workspace) AddPackage(name, version, docsJSON string) string {
	w.t.Helper()

	dir := filepath.Join(w.PackageRoot, filepath.FromSlash(name), version)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.t.Fatalf("mkdir package %s: %v", name, err)
	}
	path := filepath.Join(dir, "documentation.json")
	if err := os.WriteFile(path, []byte(docsJSON), 0o644); err != nil {
		w.t.Fatalf("write docs for %s: %v", name, err)
	}
	return dir
}

// AddPackageModule writes a module source file under the package's src/
// directory, so name-to-path resolution can find it.
func (w *Workspace) AddPackageModule(name, version, moduleName, text string) string {
	w.t.Helper()

	rel := filepath.FromSlash("src/" + modulePath(moduleName))
	path := filepath.Join(w.PackageRoot, filepath.FromSlash(name), version, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.t.Fatalf("mkdir module dir for %s: %v", moduleName, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		w.t.Fatalf("write module %s: %v", moduleName, err)
	}
	return path
}

// DocsJSON builds a one-module documentation bundle with the given values.
// Each value is name -> [type, comment].
func DocsJSON(t *testing.T, moduleName string, values map[string][2]string) string {
	t.Helper()

	var vals []map[string]string
	for name, tc := range values {
		vals = append(vals, map[string]string{
			"name":    name,
			"comment": tc[1],
			"type":    tc[0],
		})
	}
	bundle := []map[string]interface{}{
		{
			"name":    moduleName,
			"comment": "",
			"unions":  []interface{}{},
			"aliases": []interface{}{},
			"values":  vals,
			"binops":  []interface{}{},
		},
	}
	return marshal(t, bundle)
}

func joinRel(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func modulePath(moduleName string) string {
	out := make([]byte, 0, len(moduleName)+4)
	for i := 0; i < len(moduleName); i++ {
		if moduleName[i] == '.' {
			out = append(out, '/')
		} else {
			out = append(out, moduleName[i])
		}
	}
	return string(out) + ".elm"
}

func marshal(t *testing.T, v interface{}) string {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(data)
}
