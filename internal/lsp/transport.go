package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxMessageSize is the maximum size for a single LSP message body (1MB).
// This accommodates full-text sync of large Elm modules.
const MaxMessageSize = 1024 * 1024

// readFrame reads one Content-Length framed message body from the input
// stream. It returns io.EOF only when the stream ends cleanly between frames.
func (s *Server) readFrame() ([]byte, error) {
	// Lazily initialize the reader on first use
	if s.reader == nil {
		s.reader = bufio.NewReader(s.stdin)
	}

	length := 0
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && line == "" && length == 0 {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("error reading frame header: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed frame header %q", line)
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			length, err = strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if length <= 0 {
		return nil, fmt.Errorf("frame has no Content-Length header")
	}
	if length > MaxMessageSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds the %d byte limit", length, MaxMessageSize)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("error reading frame body: %w", err)
	}

	s.logger.Debug("received message", "raw", string(body))
	return body, nil
}

// writeMessage writes a framed JSON-RPC message to the output stream
func (s *Server) writeMessage(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error marshaling message: %w", err)
	}

	s.logger.Debug("sending message", "raw", string(data))

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := fmt.Fprintf(s.stdout, "Content-Length: %d\r\n\r\n%s", len(data), data); err != nil {
		return fmt.Errorf("error writing to stdout: %w", err)
	}

	return nil
}

// writeError writes an error response
func (s *Server) writeError(id interface{}, code int, message string) error {
	return s.writeMessage(NewErrorMessage(id, code, message, nil))
}
