package manifest

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	ecberrors "ecb/internal/errors"
	"ecb/internal/paths"
	"ecb/internal/slogutil"
)

// Options configure a Loader.
type Options struct {
	// Roots are the workspace roots scanned for manifests.
	Roots []string
	// ExcludeDirs are directory names skipped during the scan. Defaults to
	// DefaultExcludeDirs when empty.
	ExcludeDirs []string
	// PackageRoot overrides the platform package cache location when set.
	PackageRoot string
	// GOOS and Getenv parameterize package cache resolution. They default to
	// the running platform and process environment.
	GOOS   string
	Getenv func(string) string
}

// Loader discovers and loads workspace projects. The loaded list is memoized
// while non-empty; Reset drops it. Safe for concurrent use.
type Loader struct {
	opts   Options
	logger *slog.Logger

	// mu also serializes the first scan so concurrent first callers share
	// one load instead of racing duplicate scans.
	mu       sync.Mutex
	projects []*Project
}

// NewLoader returns a Loader for the given workspace roots.
func NewLoader(opts Options, logger *slog.Logger) *Loader {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if len(opts.ExcludeDirs) == 0 {
		opts.ExcludeDirs = DefaultExcludeDirs
	}
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Loader{opts: opts, logger: logger}
}

// Projects returns the workspace's projects, scanning on first use. An empty
// workspace yields an empty list, not an error, and is rescanned on the next
// call.
func (l *Loader) Projects(ctx context.Context) []*Project {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.projects) > 0 {
		return l.projects
	}
	l.projects = l.scan(ctx)
	return l.projects
}

// Reset drops the memoized project list. The next Projects call rescans.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.projects = nil
	l.mu.Unlock()
}

// scan discovers manifests under every root and loads them concurrently.
// Result order follows discovery order; failed loads are dropped.
func (l *Loader) scan(ctx context.Context) []*Project {
	manifests := l.discoverManifests()
	if len(manifests) == 0 {
		return nil
	}

	loaded := make([]*Project, len(manifests))
	var wg sync.WaitGroup
	for i, path := range manifests {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			p, err := l.loadProject(ctx, path)
			if err != nil {
				l.logger.Debug("project load failed", "manifest", path, "error", err)
				return
			}
			loaded[i] = p
		}(i, path)
	}
	wg.Wait()

	var out []*Project
	for _, p := range loaded {
		if p != nil {
			out = append(out, p)
		}
	}
	l.logger.Debug("workspace scan complete", "manifests", len(manifests), "projects", len(out))
	return out
}

// discoverManifests walks every root for both manifest filenames, skipping
// excluded directory names. Walk order is lexical, so discovery order is
// stable across runs.
func (l *Loader) discoverManifests() []string {
	var found []string
	seen := make(map[string]bool)
	for _, root := range l.opts.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		filepath.Walk(abs, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if path != abs && l.excluded(info.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			name := info.Name()
			if name != ManifestElmJSON && name != ManifestLegacy {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				found = append(found, path)
			}
			return nil
		})
	}
	return found
}

func (l *Loader) excluded(dirName string) bool {
	for _, ex := range l.opts.ExcludeDirs {
		if dirName == ex {
			return true
		}
	}
	return false
}

func (l *Loader) loadProject(ctx context.Context, manifestPath string) (*Project, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, ecberrors.New(ecberrors.NotFound, "read "+manifestPath, err)
	}
	if filepath.Base(manifestPath) == ManifestLegacy {
		return l.loadLegacy(ctx, manifestPath, raw)
	}
	return l.loadElmJSON(ctx, manifestPath, raw)
}

type elmJSON struct {
	Type              string          `json:"type"`
	SourceDirectories []string        `json:"source-directories"`
	ElmVersion        string          `json:"elm-version"`
	Dependencies      json.RawMessage `json:"dependencies"`
}

// loadElmJSON loads a current-format manifest. Applications declare their
// source directories and split dependencies into direct/indirect; packages
// have an implicit src/ directory and a flat dependency map.
func (l *Loader) loadElmJSON(ctx context.Context, manifestPath string, raw []byte) (*Project, error) {
	var m elmJSON
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, ecberrors.New(ecberrors.ParseFailure, "parse "+manifestPath, err)
	}

	dir := filepath.Dir(manifestPath)
	p := &Project{
		ManifestPath: manifestPath,
		ElmVersion:   lowerBound(m.ElmVersion),
		Raw:          json.RawMessage(raw),
	}

	var direct map[string]string
	if m.Type == "package" {
		p.Kind = KindLibrary
		p.SourceDirs = []string{filepath.Join(dir, "src")}
		if len(m.Dependencies) > 0 {
			if err := json.Unmarshal(m.Dependencies, &direct); err != nil {
				return nil, ecberrors.New(ecberrors.ParseFailure, "parse dependencies in "+manifestPath, err)
			}
		}
	} else {
		p.Kind = KindApplication
		p.SourceDirs = resolveDirs(dir, m.SourceDirectories)
		if len(m.Dependencies) > 0 {
			var split struct {
				Direct map[string]string `json:"direct"`
			}
			if err := json.Unmarshal(m.Dependencies, &split); err != nil {
				return nil, ecberrors.New(ecberrors.ParseFailure, "parse dependencies in "+manifestPath, err)
			}
			direct = split.Direct
		}
	}

	p.Dependencies = l.loadDependencies(ctx, direct, p.ElmVersion)
	return p, nil
}

type legacyJSON struct {
	SourceDirectories []string          `json:"source-directories"`
	ExposedModules    []string          `json:"exposed-modules"`
	Dependencies      map[string]string `json:"dependencies"`
	ElmVersion        string            `json:"elm-version"`
}

// loadLegacy loads a 0.18-era manifest. Packages are recognized by a
// non-empty exposed-modules list.
func (l *Loader) loadLegacy(ctx context.Context, manifestPath string, raw []byte) (*Project, error) {
	var m legacyJSON
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, ecberrors.New(ecberrors.ParseFailure, "parse "+manifestPath, err)
	}

	kind := KindApplication
	if len(m.ExposedModules) > 0 {
		kind = KindLibrary
	}
	p := &Project{
		ManifestPath: manifestPath,
		Kind:         kind,
		ElmVersion:   lowerBound(m.ElmVersion),
		SourceDirs:   resolveDirs(filepath.Dir(manifestPath), m.SourceDirectories),
		Raw:          json.RawMessage(raw),
	}
	p.Dependencies = l.loadDependencies(ctx, m.Dependencies, p.ElmVersion)
	return p, nil
}

// loadDependencies loads every direct dependency's documentation bundle
// concurrently, in sorted package-name order. A dependency whose bundle
// cannot be read or parsed is dropped with a warning; the project keeps
// loading with a reduced dependency set.
func (l *Loader) loadDependencies(ctx context.Context, deps map[string]string, elmVersion string) []*Dependency {
	if len(deps) == 0 {
		return nil
	}

	cacheRoot := l.opts.PackageRoot
	if cacheRoot == "" {
		cacheRoot = paths.PackageCacheRoot(l.opts.GOOS, l.opts.Getenv, elmVersion)
	}
	if cacheRoot == "" {
		l.logger.Warn("package cache root undeterminable, dependencies skipped", "elmVersion", elmVersion)
		return nil
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	loaded := make([]*Dependency, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			version := lowerBound(deps[name])
			dep, err := l.loadDependency(cacheRoot, name, version)
			if err != nil {
				l.logger.Warn("dependency docs unavailable", "package", name, "version", version, "error", err)
				return
			}
			loaded[i] = dep
		}(i, name)
	}
	wg.Wait()

	var out []*Dependency
	for _, d := range loaded {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// loadDependency reads one package's documentation bundle from the cache.
func (l *Loader) loadDependency(cacheRoot, name, version string) (*Dependency, error) {
	dir := filepath.Join(cacheRoot, filepath.FromSlash(name), version)
	raw, err := os.ReadFile(filepath.Join(dir, DocsFileName))
	if err != nil {
		return nil, ecberrors.New(ecberrors.NotFound, "read docs for "+name, err)
	}
	var docs []ModuleDocs
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, ecberrors.New(ecberrors.ParseFailure, "parse docs for "+name, err)
	}

	exposed := make([]string, 0, len(docs))
	for _, d := range docs {
		exposed = append(exposed, d.Name)
	}
	return &Dependency{
		Name:           name,
		Version:        version,
		Dir:            dir,
		ExposedModules: exposed,
		Docs:           docs,
	}, nil
}

// resolveDirs makes each listed source directory absolute against the
// manifest's directory, preserving declaration order.
func resolveDirs(manifestDir string, dirs []string) []string {
	var out []string
	for _, d := range dirs {
		if !filepath.IsAbs(d) {
			d = filepath.Join(manifestDir, d)
		}
		out = append(out, filepath.Clean(d))
	}
	return out
}

// lowerBound reduces a version range like "0.19.0 <= v < 0.20.0" to its
// lower bound. Exact versions pass through unchanged.
func lowerBound(v string) string {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return v
	}
	return fields[0]
}
