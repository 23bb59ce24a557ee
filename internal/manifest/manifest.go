// Package manifest discovers Elm project manifests under workspace roots and
// loads each into a project definition: kind, tooling version, source
// directories, and direct dependencies with their bundled documentation.
package manifest

import (
	"encoding/json"
)

const (
	// ManifestElmJSON is the current manifest filename.
	ManifestElmJSON = "elm.json"
	// ManifestLegacy is the 0.18-era manifest filename.
	ManifestLegacy = "elm-package.json"
	// DocsFileName is the documentation bundle inside a package directory.
	DocsFileName = "documentation.json"
)

// DefaultExcludeDirs are directory names never descended into during
// manifest discovery.
var DefaultExcludeDirs = []string{"elm-stuff", "node_modules", ".git"}

// Kind distinguishes applications from published packages.
type Kind string

const (
	KindApplication Kind = "application"
	KindLibrary     Kind = "library"
)

// Project is one loaded manifest. Identity is the manifest path. Immutable
// once loaded; the loader rebuilds the whole list on reset.
type Project struct {
	// ManifestPath is the absolute path of the manifest file.
	ManifestPath string
	Kind         Kind
	// ElmVersion is the declared tooling version, reduced to the lower bound
	// when the manifest declares a range.
	ElmVersion string
	// SourceDirs are the project's source directories, absolute, in
	// declaration order.
	SourceDirs []string
	// Dependencies are the direct dependencies whose documentation loaded,
	// in sorted package-name order.
	Dependencies []*Dependency
	// Raw is the manifest payload as read from disk.
	Raw json.RawMessage
}

// Dependency is one direct dependency of a project, read-only after load.
type Dependency struct {
	// Name is the package name, e.g. "elm/html".
	Name string
	// Version is the resolved version (lower bound of a declared range).
	Version string
	// Dir is the absolute package directory inside the package cache.
	Dir string
	// ExposedModules lists the package's exposed module names. The
	// documentation bundle carries exactly the exposed modules, so this is
	// derived from Docs.
	ExposedModules []string
	// Docs is the parsed documentation bundle, one entry per exposed module.
	Docs []ModuleDocs
}

// Exposes reports whether the dependency exposes moduleName.
func (d *Dependency) Exposes(moduleName string) bool {
	for _, m := range d.ExposedModules {
		if m == moduleName {
			return true
		}
	}
	return false
}

// ModuleFor returns the documentation for moduleName, or nil.
func (d *Dependency) ModuleFor(moduleName string) *ModuleDocs {
	for i := range d.Docs {
		if d.Docs[i].Name == moduleName {
			return &d.Docs[i]
		}
	}
	return nil
}

// ModuleDocs is one module's entry in a documentation bundle.
type ModuleDocs struct {
	Name    string  `json:"name"`
	Comment string  `json:"comment"`
	Unions  []Union `json:"unions"`
	Aliases []Alias `json:"aliases"`
	Values  []Value `json:"values"`
	Binops  []Binop `json:"binops"`
}

// Union is a documented custom type.
type Union struct {
	Name    string      `json:"name"`
	Comment string      `json:"comment"`
	Args    []string    `json:"args"`
	Cases   []UnionCase `json:"cases"`
}

// UnionCase is one constructor of a union. The bundle encodes it as a
// two-element array: the name and a list of argument types.
type UnionCase struct {
	Name string
	Args []string
}

func (c *UnionCase) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw[0], &c.Name); err != nil {
			return err
		}
	}
	if len(raw) > 1 {
		if err := json.Unmarshal(raw[1], &c.Args); err != nil {
			return err
		}
	}
	return nil
}

func (c UnionCase) MarshalJSON() ([]byte, error) {
	args := c.Args
	if args == nil {
		args = []string{}
	}
	return json.Marshal([]interface{}{c.Name, args})
}

// Alias is a documented type alias.
type Alias struct {
	Name    string   `json:"name"`
	Comment string   `json:"comment"`
	Args    []string `json:"args"`
	Type    string   `json:"type"`
}

// Value is a documented function or constant.
type Value struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`
}

// Binop is a documented infix operator.
type Binop struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`
}
