package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.lsp.dev/protocol"

	"ecb/internal/complete"
	"ecb/internal/manifest"
	"ecb/internal/slogutil"
	"ecb/internal/source"
	"ecb/internal/version"
)

const serverName = "ecb"

// Server speaks the language server protocol over a pair of byte streams,
// stdio in production. One goroutine reads and dispatches messages in order;
// the write side is locked so future background senders stay safe.
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	reader  *bufio.Reader
	writeMu sync.Mutex
	logger  *slog.Logger

	engine  *complete.Engine
	overlay *source.Overlay
	loader  *manifest.Loader

	shutdown bool
}

// NewServer creates a language server bound to stdio. The overlay must be
// the same reader the engine's module store was built on, otherwise edits
// held in memory would be invisible to completion.
func NewServer(engine *complete.Engine, overlay *source.Overlay, loader *manifest.Loader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	return &Server{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		logger:  logger.With("session", uuid.NewString()),
		engine:  engine,
		overlay: overlay,
		loader:  loader,
	}
}

// SetStdin sets the input stream (for testing)
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.reader = nil // Reset reader so it will be recreated with new stream
}

// SetStdout sets the output stream (for testing)
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}

// Start runs the message loop until the client disconnects or sends exit.
func (s *Server) Start() error {
	s.logger.Info("language server starting",
		"version", version.Version,
	)

	for {
		body, err := s.readFrame()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("language server shutting down (EOF)")
				return nil
			}
			s.logger.Error("error reading frame",
				"error", err.Error(),
			)
			return err
		}

		var msg Message
		if err := json.Unmarshal(body, &msg); err != nil {
			s.logger.Error("error parsing message",
				"error", err.Error(),
			)
			_ = s.writeError(nil, ParseError, fmt.Sprintf("failed to parse message: %v", err))
			continue
		}

		// Process the message
		response := s.handleMessage(&msg)

		// Write response if one was generated (notifications don't generate responses)
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("error writing response",
					"error", err.Error(),
				)
			}
		}

		if msg.Method == protocol.MethodExit {
			s.logger.Info("language server exiting")
			return nil
		}
	}
}
