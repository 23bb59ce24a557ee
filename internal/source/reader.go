// Package source provides text access for module resolution. The resolver
// reads file content through the Reader interface so the LSP layer can shadow
// on-disk files with open editor buffers.
package source

import (
	"os"

	ecberrors "ecb/internal/errors"
)

// Reader returns the current text of a file.
type Reader interface {
	// ReadText returns file content, or an error when the file cannot be
	// read. Callers treat any error as absence.
	ReadText(path string) (string, error)
}

type osReader struct{}

// OS returns a Reader backed directly by the filesystem.
func OS() Reader {
	return osReader{}
}

func (osReader) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ecberrors.New(ecberrors.NotFound, "read "+path, err)
	}
	return string(data), nil
}
