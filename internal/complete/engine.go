package complete

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"ecb/internal/docs"
	"ecb/internal/elm"
	"ecb/internal/lexical"
	"ecb/internal/modules"
	"ecb/internal/slogutil"
)

// Engine orchestrates completion: module cache, lexical classification, and
// the documentation index.
type Engine struct {
	store  *modules.Store
	docs   *docs.Index
	logger *slog.Logger
}

// NewEngine returns an Engine over the given store and documentation index.
func NewEngine(store *modules.Store, index *docs.Index, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Engine{store: store, docs: index, logger: logger}
}

// Provide computes completion candidates for the cursor at byte offset in
// path. Failures of any kind yield an empty list, never an error.
func (e *Engine) Provide(ctx context.Context, path string, offset int) []Candidate {
	// The active file has unsaved edits more recent than any cache entry.
	e.store.Invalidate(path)

	entry := e.store.ModuleFromPath(ctx, path)
	if entry == nil {
		return nil
	}
	if lexical.TokenAt(entry.Text, offset) == "" {
		return nil
	}

	lc := lexical.Classify(entry.Text, offset)
	match := lc.Prefix
	if match == "" {
		match = lc.CurrentWord
	}

	imports := matchingImports(entry.Module.Imports, match)
	resolved := e.resolveImports(ctx, path, imports)

	var out []Candidate
	switch lc.Classification {
	case lexical.BareFunction:
		out = e.bareCandidates(entry, resolved)
	case lexical.ModuleQualified:
		out = e.qualifiedCandidates(entry, lc.Prefix, imports, resolved)
	}
	e.logger.Debug("completions assembled",
		"path", path,
		"classification", lc.Classification,
		"match", match,
		"imports", len(imports),
		"candidates", len(out))
	return out
}

// Resolve fills the candidate's detail and documentation from the
// documentation index. When no entry exists both stay empty strings. The
// candidate is mutated and returned, never replaced.
func (e *Engine) Resolve(ctx context.Context, c *Candidate) *Candidate {
	entry := e.docs.Lookup(ctx, c.Path, c.Module, c.Name)
	if entry == nil {
		c.Detail = ""
		c.Documentation = ""
		return c
	}
	c.Detail = c.Name + " : " + entry.Signature
	c.Documentation = entry.Comment
	return c
}

// Invalidate drops the cached module for path.
func (e *Engine) Invalidate(path string) {
	e.store.Invalidate(path)
}

// matchingImports filters imports whose module name or alias starts with
// match. An empty match string keeps every import.
func matchingImports(imports []elm.Import, match string) []elm.Import {
	var out []elm.Import
	for _, imp := range imports {
		if strings.HasPrefix(imp.Module, match) ||
			(imp.Alias != "" && strings.HasPrefix(imp.Alias, match)) {
			out = append(out, imp)
		}
	}
	return out
}

// resolveImports resolves every matching import's module concurrently,
// preserving import order. Unresolvable imports come back nil and are
// dropped by the candidate assembly.
func (e *Engine) resolveImports(ctx context.Context, path string, imports []elm.Import) []*modules.Entry {
	if len(imports) == 0 {
		return nil
	}
	resolved := make([]*modules.Entry, len(imports))
	var wg sync.WaitGroup
	for i, imp := range imports {
		wg.Add(1)
		go func(i int, moduleName string) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			resolved[i] = e.store.ModuleFromName(ctx, path, moduleName)
		}(i, imp.Module)
	}
	wg.Wait()
	return resolved
}

// bareCandidates emits, in order: every function declared in the current
// module, every exposed function of every resolved import, then every
// constructor of every exposed custom type of every resolved import.
// Constructor candidates carry the module kind.
func (e *Engine) bareCandidates(entry *modules.Entry, resolved []*modules.Entry) []Candidate {
	surfaces := make([]elm.Exposed, len(resolved))
	for i, target := range resolved {
		if target != nil {
			surfaces[i] = elm.Surface(target.Module)
		}
	}

	var out []Candidate
	for _, d := range entry.Module.Decls {
		if d.Kind == elm.KindFunction {
			out = append(out, Candidate{
				Label:  d.Name,
				Kind:   KindValue,
				Path:   entry.Path,
				Module: entry.Name,
				Name:   d.Name,
			})
		}
	}
	for i, target := range resolved {
		if target == nil {
			continue
		}
		for _, f := range surfaces[i].Functions {
			out = append(out, Candidate{
				Label:  f.Name,
				Kind:   KindValue,
				Path:   entry.Path,
				Module: target.Name,
				Name:   f.Name,
			})
		}
	}
	for i, target := range resolved {
		if target == nil {
			continue
		}
		for _, ty := range surfaces[i].Types {
			for _, ctor := range ty.Constructors {
				out = append(out, Candidate{
					Label:  ctor,
					Kind:   KindModule,
					Path:   entry.Path,
					Module: target.Name,
					Name:   ctor,
				})
			}
		}
	}
	return out
}

// qualifiedCandidates emits, per resolved import: a module-kind candidate
// for the dotted segments not yet typed, and, when the typed prefix exactly
// equals the import's module name or alias, a value-kind candidate for every
// exposed function.
func (e *Engine) qualifiedCandidates(entry *modules.Entry, prefix string, imports []elm.Import, resolved []*modules.Entry) []Candidate {
	var out []Candidate
	for i, imp := range imports {
		target := resolved[i]
		if target == nil {
			continue
		}
		if remaining := remainingSegments(imp.Module, prefix); remaining != "" {
			out = append(out, Candidate{
				Label:  remaining,
				Kind:   KindModule,
				Path:   entry.Path,
				Module: imp.Module,
				Name:   remaining,
			})
		}
		if imp.Module == prefix || (imp.Alias != "" && imp.Alias == prefix) {
			for _, f := range elm.Surface(target.Module).Functions {
				out = append(out, Candidate{
					Label:  f.Name,
					Kind:   KindValue,
					Path:   entry.Path,
					Module: target.Name,
					Name:   f.Name,
				})
			}
		}
	}
	return out
}

// remainingSegments computes the dotted segments of moduleName not already
// typed: a right-aligned diff against the prefix, stopping at the first
// segment equal to the prefix's last segment. An empty prefix leaves the
// whole name remaining.
func remainingSegments(moduleName, prefix string) string {
	lastTyped := prefix
	if dot := strings.LastIndex(prefix, "."); dot >= 0 {
		lastTyped = prefix[dot+1:]
	}
	segments := strings.Split(moduleName, ".")
	cut := 0
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == lastTyped {
			cut = i + 1
			break
		}
	}
	return strings.Join(segments[cut:], ".")
}
