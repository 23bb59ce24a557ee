// Package modules caches parsed modules keyed by absolute file path and
// resolves dotted module names to source files through the owning project.
package modules

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"ecb/internal/elm"
	"ecb/internal/manifest"
	"ecb/internal/paths"
	"ecb/internal/slogutil"
	"ecb/internal/source"
)

// Entry is one cached module: the parsed descriptor plus the exact text that
// produced it, so callers classify against the text they resolved.
type Entry struct {
	Module *elm.Module
	// Name is the declared module name.
	Name string
	// Path is the absolute source file path.
	Path string
	// Text is the raw text that parsed into Module.
	Text string
}

// Store is the module cache and resolver. Entries are created only on
// successful parse and dropped only by explicit invalidation. Safe for
// concurrent use.
type Store struct {
	loader *manifest.Loader
	reader source.Reader
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*Entry
}

// NewStore returns a Store resolving through loader and reading module text
// through reader. A nil reader falls back to the OS filesystem.
func NewStore(loader *manifest.Loader, reader source.Reader, logger *slog.Logger) *Store {
	if reader == nil {
		reader = source.OS()
	}
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Store{
		loader: loader,
		reader: reader,
		logger: logger,
		cache:  make(map[string]*Entry),
	}
}

// ProjectFor returns the project owning path: the first project in discovery
// order with a source directory that is a path prefix of path. No
// longest-prefix tie-break.
func (s *Store) ProjectFor(ctx context.Context, path string) *manifest.Project {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	for _, p := range s.loader.Projects(ctx) {
		for _, dir := range p.SourceDirs {
			if paths.IsWithinDir(abs, dir) {
				return p
			}
		}
	}
	return nil
}

// ModuleFromPath returns the cached entry for path, reading and parsing on a
// miss. Missing files and parse failures both yield nil; neither is cached.
func (s *Store) ModuleFromPath(ctx context.Context, path string) *Entry {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}

	s.mu.RLock()
	entry, ok := s.cache[abs]
	s.mu.RUnlock()
	if ok {
		return entry
	}

	text, err := s.reader.ReadText(abs)
	if err != nil {
		s.logger.Debug("module read failed", "path", abs, "error", err)
		return nil
	}
	mod, err := elm.Parse(text)
	if err != nil {
		s.logger.Debug("module parse failed", "path", abs, "error", err)
		return nil
	}

	entry = &Entry{Module: mod, Name: mod.Name, Path: abs, Text: text}
	s.mu.Lock()
	s.cache[abs] = entry
	s.mu.Unlock()
	return entry
}

// ModuleFromName resolves a dotted module name within the project owning
// contextualPath. Search order is the project's local source directories in
// declaration order, then each dependency's src/ directory in dependency
// order; the first readable, parseable hit wins, so a local module shadows a
// same-named dependency module.
func (s *Store) ModuleFromName(ctx context.Context, contextualPath, moduleName string) *Entry {
	project := s.ProjectFor(ctx, contextualPath)
	if project == nil {
		return nil
	}

	rel := elm.SourceRelPath(moduleName)
	for _, dir := range project.SourceDirs {
		if entry := s.ModuleFromPath(ctx, filepath.Join(dir, rel)); entry != nil {
			return entry
		}
	}
	for _, dep := range project.Dependencies {
		if entry := s.ModuleFromPath(ctx, filepath.Join(dep.Dir, "src", rel)); entry != nil {
			return entry
		}
	}
	return nil
}

// Invalidate drops any cache entry for path. Safe on paths with no entry.
func (s *Store) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	s.mu.Lock()
	delete(s.cache, abs)
	s.mu.Unlock()
}
