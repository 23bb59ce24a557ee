package lsp

import (
	"encoding/json"
	"path/filepath"

	"go.lsp.dev/protocol"

	"ecb/internal/manifest"
)

// Document lifecycle notifications keep the overlay as the source of truth
// for open files and drop stale parses from the module cache. Sync is
// full-text, so every change event carries the complete document.

func (s *Server) handleDidOpen(msg *Message) {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("invalid didOpen params",
			"error", err.Error(),
		)
		return
	}

	path := params.TextDocument.URI.Filename()
	s.overlay.Set(path, params.TextDocument.Text)
	s.engine.Invalidate(path)

	s.logger.Debug("document opened",
		"path", path,
		"bytes", len(params.TextDocument.Text),
	)
}

func (s *Server) handleDidChange(msg *Message) {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("invalid didChange params",
			"error", err.Error(),
		)
		return
	}
	if len(params.ContentChanges) == 0 {
		return
	}

	// Under full sync the last change holds the whole document.
	path := params.TextDocument.URI.Filename()
	s.overlay.Set(path, params.ContentChanges[len(params.ContentChanges)-1].Text)
	s.engine.Invalidate(path)
}

func (s *Server) handleDidSave(msg *Message) {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("invalid didSave params",
			"error", err.Error(),
		)
		return
	}

	path := params.TextDocument.URI.Filename()
	if params.Text != "" {
		s.overlay.Set(path, params.Text)
	}
	s.engine.Invalidate(path)

	// A saved manifest can change source directories or dependencies, so the
	// next lookup has to rediscover the workspace.
	switch filepath.Base(path) {
	case manifest.ManifestElmJSON, manifest.ManifestLegacy:
		s.logger.Info("manifest saved, workspace will be rescanned",
			"path", path,
		)
		s.loader.Reset()
	}
}

func (s *Server) handleDidClose(msg *Message) {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("invalid didClose params",
			"error", err.Error(),
		)
		return
	}

	path := params.TextDocument.URI.Filename()
	s.overlay.Delete(path)
	s.engine.Invalidate(path)

	s.logger.Debug("document closed",
		"path", path,
	)
}
