package elm

import (
	"regexp"
	"strings"

	ecberrors "ecb/internal/errors"
)

var (
	moduleRegex     = regexp.MustCompile(`^(?:port\s+|effect\s+)?module\s+([A-Z]\w*(?:\.[A-Z]\w*)*)(.*)$`)
	importRegex     = regexp.MustCompile(`^import\s+([A-Z]\w*(?:\.[A-Z]\w*)*)(?:\s+as\s+([A-Z]\w*))?(.*)$`)
	typeRegex       = regexp.MustCompile(`^type\s+(alias\s+)?([A-Z]\w*)`)
	portRegex       = regexp.MustCompile(`^port\s+([a-z_]\w*)\s*:\s*(.*)$`)
	annotationRegex = regexp.MustCompile(`^([a-z_]\w*)\s*:\s*(.*)$`)
	definitionRegex = regexp.MustCompile(`^([a-z_]\w*)\b`)
)

// Parse extracts the module descriptor from Elm source text. It is a
// line-oriented scan over column-zero constructs: the module header, imports,
// and top-level declarations. Function bodies are never interpreted.
//
// Text whose first column-zero construct is not a module header fails with
// ParseFailure.
func Parse(text string) (*Module, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	mod := &Module{}
	sawHeader := false
	pendingDoc := ""
	var pendingAnn *Declaration

	i := 0
	for i < len(lines) {
		line := lines[i]

		// Indented lines belong to the preceding construct; blank lines
		// separate nothing at this level.
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			i++
			continue
		}
		if strings.HasPrefix(line, "--") {
			i++
			continue
		}
		if strings.HasPrefix(line, "{-") {
			doc, next := readBlockComment(lines, i)
			if strings.HasPrefix(line, "{-|") {
				pendingDoc = doc
			}
			i = next
			continue
		}

		end := blockEnd(lines, i)
		logical := strings.Join(lines[i:end], " ")

		switch {
		case !sawHeader:
			m := moduleRegex.FindStringSubmatch(logical)
			if m == nil {
				return nil, ecberrors.New(ecberrors.ParseFailure, "missing module header", nil)
			}
			mod.Name = m[1]
			mod.Exposing = parseExposing(m[2])
			sawHeader = true
			pendingDoc = ""

		case strings.HasPrefix(line, "import "):
			if m := importRegex.FindStringSubmatch(logical); m != nil {
				mod.Imports = append(mod.Imports, Import{
					Module:   m[1],
					Alias:    m[2],
					Exposing: parseExposing(m[3]),
				})
			}
			pendingDoc = ""

		case strings.HasPrefix(line, "port "):
			if m := portRegex.FindStringSubmatch(logical); m != nil {
				flushAnnotation(mod, &pendingAnn)
				mod.Decls = append(mod.Decls, Declaration{
					Kind:      KindFunction,
					Name:      m[1],
					Signature: collapse(m[2]),
					Comment:   pendingDoc,
				})
			}
			pendingDoc = ""

		case strings.HasPrefix(line, "type "):
			if m := typeRegex.FindStringSubmatch(logical); m != nil {
				flushAnnotation(mod, &pendingAnn)
				decl := Declaration{
					Kind:    KindType,
					Name:    m[2],
					Comment: pendingDoc,
				}
				if m[1] != "" {
					decl.Kind = KindAlias
				} else {
					decl.Constructors = parseConstructors(logical)
				}
				mod.Decls = append(mod.Decls, decl)
			}
			pendingDoc = ""

		default:
			if m := annotationRegex.FindStringSubmatch(logical); m != nil {
				flushAnnotation(mod, &pendingAnn)
				pendingAnn = &Declaration{
					Kind:      KindFunction,
					Name:      m[1],
					Signature: collapse(m[2]),
					Comment:   pendingDoc,
				}
				pendingDoc = ""
				break
			}
			m := definitionRegex.FindStringSubmatch(line)
			if m == nil || !strings.Contains(logical, "=") {
				pendingDoc = ""
				break
			}
			if pendingAnn != nil && pendingAnn.Name == m[1] {
				mod.Decls = append(mod.Decls, *pendingAnn)
				pendingAnn = nil
			} else {
				flushAnnotation(mod, &pendingAnn)
				mod.Decls = append(mod.Decls, Declaration{
					Kind:    KindFunction,
					Name:    m[1],
					Comment: pendingDoc,
				})
			}
			pendingDoc = ""
		}

		i = end
	}

	if !sawHeader {
		return nil, ecberrors.New(ecberrors.ParseFailure, "missing module header", nil)
	}
	flushAnnotation(mod, &pendingAnn)
	return mod, nil
}

// flushAnnotation records an annotation whose definition never followed.
func flushAnnotation(mod *Module, ann **Declaration) {
	if *ann != nil {
		mod.Decls = append(mod.Decls, **ann)
		*ann = nil
	}
}

// blockEnd returns the index of the first column-zero non-blank line after i.
func blockEnd(lines []string, i int) int {
	j := i + 1
	for j < len(lines) {
		l := lines[j]
		if l != "" && l[0] != ' ' && l[0] != '\t' {
			break
		}
		j++
	}
	return j
}

// readBlockComment consumes a {- ... -} comment starting at lines[start] and
// returns the inner text and the index of the line after the closing marker.
// Elm block comments nest.
func readBlockComment(lines []string, start int) (string, int) {
	var b strings.Builder
	depth := 0
	for i := start; i < len(lines); i++ {
		line := lines[i]
		j := 0
		for j < len(line) {
			if j+1 < len(line) && line[j] == '{' && line[j+1] == '-' {
				if depth > 0 {
					b.WriteString("{-")
				}
				depth++
				j += 2
				if depth == 1 && j < len(line) && line[j] == '|' {
					j++
				}
				continue
			}
			if j+1 < len(line) && line[j] == '-' && line[j+1] == '}' {
				depth--
				j += 2
				if depth == 0 {
					return strings.TrimSpace(b.String()), i + 1
				}
				b.WriteString("-}")
				continue
			}
			if depth > 0 {
				b.WriteByte(line[j])
			}
			j++
		}
		if depth > 0 {
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String()), len(lines)
}

// parseExposing pulls the exposing clause out of the text following a module
// or import name. The clause may be absent.
func parseExposing(rest string) ExposedList {
	idx := strings.Index(rest, "exposing")
	if idx < 0 {
		return ExposedList{}
	}
	rest = rest[idx+len("exposing"):]
	open := strings.Index(rest, "(")
	if open < 0 {
		return ExposedList{}
	}
	depth := 0
	inner := ""
	for j := open; j < len(rest); j++ {
		switch rest[j] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			inner = rest[open+1 : j]
			break
		}
	}
	inner = strings.TrimSpace(inner)
	if inner == ".." {
		return ExposedList{All: true}
	}
	list := ExposedList{}
	for _, item := range splitTopLevel(inner, ',') {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		list.Names = append(list.Names, parseExposedName(item))
	}
	return list
}

// parseExposedName parses one exposing entry: a value, an operator like (+),
// a bare type, Type(..), or Type(A, B).
func parseExposedName(item string) ExposedName {
	if strings.HasPrefix(item, "(") {
		return ExposedName{Name: strings.TrimSuffix(strings.TrimPrefix(item, "("), ")")}
	}
	open := strings.Index(item, "(")
	if open < 0 {
		return ExposedName{Name: item}
	}
	name := strings.TrimSpace(item[:open])
	inner := item[open+1:]
	if end := strings.LastIndex(inner, ")"); end >= 0 {
		inner = inner[:end]
	}
	inner = strings.TrimSpace(inner)
	if inner == ".." {
		return ExposedName{Name: name, All: true}
	}
	var ctors []string
	for _, c := range strings.Split(inner, ",") {
		if c = strings.TrimSpace(c); c != "" {
			ctors = append(ctors, c)
		}
	}
	return ExposedName{Name: name, Constructors: ctors}
}

// parseConstructors extracts constructor names from a joined union type
// declaration: everything after the first "=", split on top-level "|".
func parseConstructors(logical string) []string {
	eq := strings.Index(logical, "=")
	if eq < 0 {
		return nil
	}
	var ctors []string
	for _, variant := range splitTopLevel(logical[eq+1:], '|') {
		fields := strings.Fields(variant)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		if name[0] >= 'A' && name[0] <= 'Z' {
			ctors = append(ctors, name)
		}
	}
	return ctors
}

// splitTopLevel splits s on sep occurrences outside (), {} and [].
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

// collapse normalizes interior whitespace in a joined signature.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
