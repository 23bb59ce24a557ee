package lsp

import "testing"

func TestOffsetForPosition(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		line      int
		character int
		want      int
	}{
		{"empty text", "", 0, 0, 0},
		{"start of document", "hello", 0, 0, 0},
		{"within first line", "hello", 0, 3, 3},
		{"end of first line", "hello", 0, 5, 5},
		{"second line", "ab\ncd", 1, 1, 4},
		{"character clamps to line end", "ab\ncd", 0, 99, 2},
		{"line past document clamps", "ab\ncd", 7, 0, 5},
		{"crlf line endings", "ab\r\ncd", 1, 1, 5},
		{"two byte rune is one unit", "héllo", 0, 2, 3},
		{"emoji counts two units", "a\U0001F600b", 0, 3, 5},
		{"offset before emoji", "a\U0001F600b", 0, 1, 1},
		{"offset inside surrogate pair snaps past", "a\U0001F600b", 0, 2, 5},
		{"negative character", "hello", 0, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OffsetForPosition(tt.text, tt.line, tt.character)
			if got != tt.want {
				t.Errorf("OffsetForPosition(%q, %d, %d) = %d, want %d",
					tt.text, tt.line, tt.character, got, tt.want)
			}
		})
	}
}
