// Package lexical classifies the token at a cursor offset: is the cursor
// inside a module-qualified reference or a bare identifier, and what
// prefix/current-word split applies.
package lexical

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classification is the kind of reference under the cursor.
type Classification string

const (
	// ModuleQualified means the token carries a dotted prefix or starts
	// uppercase, so the user is typing a module name or a qualified member.
	ModuleQualified Classification = "module"
	// BareFunction means the token is a bare lowercase identifier.
	BareFunction Classification = "function"
)

// Context is the classification of one cursor position.
type Context struct {
	Classification Classification
	// Prefix is everything before the last dot, "" when the token has none.
	Prefix string
	// CurrentWord is everything after the last dot, or the whole token.
	CurrentWord string
}

// operatorChars is the extra punctuation allowed in the permissive token:
// the characters Elm operator names are built from.
const operatorChars = "+-*/=.<>:&|^?%!~"

// Classify extracts the maximal identifier run (letters, digits, underscore,
// dot) immediately preceding offset and splits it on its last dot. The
// context is module-qualified when the prefix is non-empty or the current
// word starts with an uppercase letter; an empty current word never counts
// as uppercase.
func Classify(text string, offset int) Context {
	offset = clamp(text, offset)

	start := offset
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isIdentRune(r) {
			break
		}
		start -= size
	}
	token := text[start:offset]

	prefix, word := "", token
	if dot := strings.LastIndex(token, "."); dot >= 0 {
		prefix, word = token[:dot], token[dot+1:]
	}

	c := Context{Prefix: prefix, CurrentWord: word}
	if prefix != "" || startsUpper(word) {
		c.Classification = ModuleQualified
	} else {
		c.Classification = BareFunction
	}
	return c
}

// TokenAt returns the maximal identifier-or-operator run immediately before
// offset. This is the permissive gate: an empty result means nothing
// precedes the cursor and no candidates should be offered.
func TokenAt(text string, offset int) string {
	offset = clamp(text, offset)

	start := offset
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isIdentRune(r) && !strings.ContainsRune(operatorChars, r) {
			break
		}
		start -= size
	}
	return text[start:offset]
}

// WordAt returns the identifier run covering offset, extended in both
// directions. Hover positions sit on a word rather than after it.
func WordAt(text string, offset int) string {
	offset = clamp(text, offset)

	start := offset
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isIdentRune(r) {
			break
		}
		start -= size
	}
	end := offset
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !isIdentRune(r) {
			break
		}
		end += size
	}
	return text[start:end]
}

func clamp(text string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(text) {
		return len(text)
	}
	return offset
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func startsUpper(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
