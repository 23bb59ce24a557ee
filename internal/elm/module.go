// Package elm parses Elm source text into module descriptors and computes
// the surface a module exposes to its importers.
package elm

import (
	"path/filepath"
	"strings"
)

// DeclKind classifies a top-level declaration.
type DeclKind string

const (
	// KindFunction is a value or function declaration (ports included)
	KindFunction DeclKind = "function"
	// KindType is a custom (union) type declaration
	KindType DeclKind = "type"
	// KindAlias is a type alias declaration
	KindAlias DeclKind = "alias"
)

// Declaration is a single top-level declaration of a module.
type Declaration struct {
	Kind DeclKind
	Name string
	// Signature is the type annotation without the leading "name :", empty
	// when the declaration carries no annotation.
	Signature string
	// Comment is the {-| ... -} doc comment preceding the declaration.
	Comment string
	// Constructors lists a custom type's constructor names, in source order.
	Constructors []string
}

// ExposedName is one entry of an exposing list.
type ExposedName struct {
	Name string
	// All is true for Type(..)
	All bool
	// Constructors holds explicitly exposed constructors, e.g. Msg(Inc, Dec)
	Constructors []string
}

// ExposedList is a module's or import's exposing clause.
type ExposedList struct {
	// All is true for exposing (..)
	All   bool
	Names []ExposedName
}

// Exposes reports whether name appears in the list (or everything is exposed).
func (e ExposedList) Exposes(name string) bool {
	if e.All {
		return true
	}
	for _, n := range e.Names {
		if n.Name == name {
			return true
		}
	}
	return false
}

// Import is a single import statement.
type Import struct {
	// Module is the imported module's dotted name, e.g. "Html.Events"
	Module string
	// Alias is the "as" name, empty when not aliased
	Alias string
	// Exposing is the import's own exposing clause (may be empty)
	Exposing ExposedList
}

// Module is the parsed structure of one source file.
type Module struct {
	// Name is the declared module name, e.g. "Page.Home"
	Name     string
	Exposing ExposedList
	Imports  []Import
	Decls    []Declaration
}

// Decl returns the declaration with the given name, or nil.
func (m *Module) Decl(name string) *Declaration {
	for i := range m.Decls {
		if m.Decls[i].Name == name {
			return &m.Decls[i]
		}
	}
	return nil
}

// SourceRelPath maps a dotted module name to its relative source file path:
// "Json.Decode" -> "Json/Decode.elm" (OS separators).
func SourceRelPath(moduleName string) string {
	return filepath.FromSlash(strings.ReplaceAll(moduleName, ".", "/") + ".elm")
}
