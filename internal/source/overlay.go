package source

import (
	"sync"
)

// Overlay is a Reader that serves open editor buffers before falling back to
// a base Reader. Paths are used exactly as given; the LSP layer normalizes
// URIs to filesystem paths before calling Set.
type Overlay struct {
	mu   sync.RWMutex
	docs map[string]string
	base Reader
}

// NewOverlay creates an Overlay over base.
func NewOverlay(base Reader) *Overlay {
	return &Overlay{
		docs: make(map[string]string),
		base: base,
	}
}

// Set stores the buffer text for path, shadowing the base Reader.
func (o *Overlay) Set(path, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.docs[path] = text
}

// Delete removes the buffer for path; reads fall back to the base Reader.
// Safe to call for paths that were never set.
func (o *Overlay) Delete(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.docs, path)
}

// Get returns the buffer text for path and whether one is open.
func (o *Overlay) Get(path string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	text, ok := o.docs[path]
	return text, ok
}

// ReadText implements Reader.
func (o *Overlay) ReadText(path string) (string, error) {
	if text, ok := o.Get(path); ok {
		return text, nil
	}
	return o.base.ReadText(path)
}
