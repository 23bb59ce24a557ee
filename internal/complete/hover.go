package complete

import (
	"context"
	"strings"

	"ecb/internal/lexical"
)

// Hover renders signature and documentation for the word at offset as
// markdown: a fenced Elm signature block, then the doc comment. Empty string
// when nothing is known about the word. The cached entry is used as-is;
// editors invalidate on change, so the cache is current.
func (e *Engine) Hover(ctx context.Context, path string, offset int) string {
	entry := e.store.ModuleFromPath(ctx, path)
	if entry == nil {
		return ""
	}
	word := lexical.WordAt(entry.Text, offset)
	if word == "" {
		return ""
	}

	prefix, name := "", word
	if dot := strings.LastIndex(word, "."); dot >= 0 {
		prefix, name = word[:dot], word[dot+1:]
	}
	if name == "" {
		return ""
	}

	if prefix == "" {
		if d := entry.Module.Decl(name); d != nil {
			return renderHover(name, d.Signature, d.Comment)
		}
		return ""
	}

	// Map the typed prefix through the import list: an exact module name or
	// alias selects that import's module.
	moduleName := ""
	for _, imp := range entry.Module.Imports {
		if imp.Module == prefix || imp.Alias == prefix {
			moduleName = imp.Module
			break
		}
	}
	if moduleName == "" {
		return ""
	}

	if doc := e.docs.Lookup(ctx, path, moduleName, name); doc != nil {
		return renderHover(name, doc.Signature, doc.Comment)
	}
	// Workspace-local modules carry no documentation bundle; fall back to
	// the parsed declaration.
	if target := e.store.ModuleFromName(ctx, path, moduleName); target != nil {
		if d := target.Module.Decl(name); d != nil {
			return renderHover(name, d.Signature, d.Comment)
		}
	}
	return ""
}

func renderHover(name, signature, comment string) string {
	var b strings.Builder
	b.WriteString("```elm\n")
	if signature != "" {
		b.WriteString(name + " : " + signature + "\n")
	} else {
		b.WriteString(name + "\n")
	}
	b.WriteString("```")
	if comment != "" {
		b.WriteString("\n\n" + comment)
	}
	return b.String()
}
