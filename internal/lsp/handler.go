package lsp

import (
	"encoding/json"
	"fmt"

	"go.lsp.dev/protocol"

	"ecb/internal/version"
)

// handleMessage processes an incoming message and returns a response
func (s *Server) handleMessage(msg *Message) *Message {
	// Responses from the client are not expected; the server never issues
	// requests of its own.
	if msg.IsResponse() {
		s.logger.Debug("ignoring client response",
			"id", msg.Id,
		)
		return nil
	}

	// Handle requests
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}

	// Handle notifications (no response needed)
	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}

	// Invalid message
	return NewErrorMessage(msg.Id, InvalidRequest, "invalid message: not a request or notification", nil)
}

// handleRequest handles a JSON-RPC request
func (s *Server) handleRequest(msg *Message) *Message {
	s.logger.Debug("handling request",
		"method", msg.Method,
		"id", msg.Id,
	)

	if s.shutdown && msg.Method != protocol.MethodShutdown {
		return NewErrorMessage(msg.Id, InvalidRequest, "server is shutting down", nil)
	}

	switch msg.Method {
	case protocol.MethodInitialize:
		return s.handleInitialize(msg)
	case protocol.MethodShutdown:
		s.shutdown = true
		return NewResultMessage(msg.Id, NullResult)
	case protocol.MethodTextDocumentCompletion:
		return s.handleCompletion(msg)
	case protocol.MethodCompletionItemResolve:
		return s.handleCompletionResolve(msg)
	case protocol.MethodTextDocumentHover:
		return s.handleHover(msg)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("method not found: %s", msg.Method), nil)
	}
}

// handleNotification handles a JSON-RPC notification
func (s *Server) handleNotification(msg *Message) {
	s.logger.Debug("handling notification",
		"method", msg.Method,
	)

	switch msg.Method {
	case protocol.MethodInitialized:
		s.logger.Info("client initialized")
	case protocol.MethodTextDocumentDidOpen:
		s.handleDidOpen(msg)
	case protocol.MethodTextDocumentDidChange:
		s.handleDidChange(msg)
	case protocol.MethodTextDocumentDidSave:
		s.handleDidSave(msg)
	case protocol.MethodTextDocumentDidClose:
		s.handleDidClose(msg)
	case protocol.MethodExit:
		// Start's read loop terminates after this message is dispatched.
	default:
		s.logger.Debug("unknown notification",
			"method", msg.Method,
		)
	}
}

// handleInitialize announces the server's capabilities: full-text document
// sync, dot-triggered completion with a resolve round trip, and hover.
func (s *Server) handleInitialize(msg *Message) *Message {
	var params protocol.InitializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return NewErrorMessage(msg.Id, InvalidParams, fmt.Sprintf("invalid initialize params: %v", err), nil)
		}
	}

	if params.ClientInfo != nil {
		s.logger.Info("client connected",
			"client", params.ClientInfo.Name,
			"clientVersion", params.ClientInfo.Version,
		)
	}

	result := protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save:      &protocol.SaveOptions{IncludeText: true},
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider:   true,
				TriggerCharacters: []string{"."},
			},
			HoverProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    serverName,
			Version: version.Version,
		},
	}

	return NewResultMessage(msg.Id, result)
}
