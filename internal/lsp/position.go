package lsp

import "strings"

// OffsetForPosition converts a zero-based LSP position, whose character is
// counted in UTF-16 code units, into a byte offset within text. Positions
// past the end of a line or of the document clamp to the nearest boundary.
func OffsetForPosition(text string, line, character int) int {
	start := 0
	for l := 0; l < line; l++ {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			return len(text)
		}
		start += nl + 1
	}

	lineText := text[start:]
	if nl := strings.IndexByte(lineText, '\n'); nl >= 0 {
		lineText = lineText[:nl]
	}

	return start + utf16ToByteOffset(lineText, character)
}

// utf16ToByteOffset converts a count of UTF-16 code units into a byte offset
// within line. Runes outside the basic multilingual plane occupy two units.
func utf16ToByteOffset(line string, units int) int {
	if units <= 0 {
		return 0
	}

	count := 0
	for i, r := range line {
		if count >= units {
			return i
		}
		if r >= 0x10000 {
			count += 2
		} else {
			count++
		}
	}
	return len(line)
}
