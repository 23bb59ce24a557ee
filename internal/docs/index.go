// Package docs resolves declarations to documentation entries from the
// owning project's dependency bundles.
package docs

import (
	"context"
	"strings"

	"ecb/internal/manifest"
)

// Entry is one resolved documentation entry.
type Entry struct {
	// Module is the exposing module's name.
	Module string
	// Name is the declaration name.
	Name string
	// Signature is the declared type expression.
	Signature string
	// Comment is the doc comment, markdown as bundled.
	Comment string
}

// ProjectSource resolves the project owning a contextual path.
type ProjectSource interface {
	ProjectFor(ctx context.Context, path string) *manifest.Project
}

// Index looks up documentation through a project's dependencies.
type Index struct {
	projects ProjectSource
}

// NewIndex returns an Index resolving projects through projects.
func NewIndex(projects ProjectSource) *Index {
	return &Index{projects: projects}
}

// Lookup scans the owning project's dependencies in order for one exposing
// moduleName, then matches declName inside that module's documentation. The
// first match across dependencies wins; same-named modules in later
// dependencies are never consulted once one matches. Nil when the owning
// project, the module, or the declaration is absent.
func (x *Index) Lookup(ctx context.Context, contextualPath, moduleName, declName string) *Entry {
	project := x.projects.ProjectFor(ctx, contextualPath)
	if project == nil {
		return nil
	}
	for _, dep := range project.Dependencies {
		md := dep.ModuleFor(moduleName)
		if md == nil {
			continue
		}
		if e := entryFor(md, declName); e != nil {
			return e
		}
	}
	return nil
}

// entryFor searches one module's documentation: values, then aliases, then
// unions and their constructors.
func entryFor(md *manifest.ModuleDocs, declName string) *Entry {
	for _, v := range md.Values {
		if v.Name == declName {
			return &Entry{Module: md.Name, Name: v.Name, Signature: v.Type, Comment: v.Comment}
		}
	}
	for _, a := range md.Aliases {
		if a.Name == declName {
			return &Entry{Module: md.Name, Name: a.Name, Signature: a.Type, Comment: a.Comment}
		}
	}
	for _, u := range md.Unions {
		head := typeHead(u)
		if u.Name == declName {
			return &Entry{Module: md.Name, Name: u.Name, Signature: head, Comment: u.Comment}
		}
		for _, c := range u.Cases {
			if c.Name == declName {
				return &Entry{
					Module:    md.Name,
					Name:      c.Name,
					Signature: constructorSignature(c, head),
					Comment:   u.Comment,
				}
			}
		}
	}
	return nil
}

// typeHead renders a union's type expression, its name applied to its type
// arguments: "Result error value".
func typeHead(u manifest.Union) string {
	if len(u.Args) == 0 {
		return u.Name
	}
	return u.Name + " " + strings.Join(u.Args, " ")
}

// constructorSignature renders a constructor's function type: argument types
// chained into the union's head, "error -> Result error value".
func constructorSignature(c manifest.UnionCase, head string) string {
	if len(c.Args) == 0 {
		return head
	}
	parts := append(append([]string{}, c.Args...), head)
	return strings.Join(parts, " -> ")
}
