// Copyright 2026 Asma Gulbaz

// Stdio transport for JSON-RPC 2.0 communication

package transport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

// StdioTransport implements JSON-RPC 2.0 transport over stdin/stdout with
// newline-delimited messages.
//
// Reads and writes are guarded by separate mutexes: ReadMessage blocks on
// stdin in the steady state, and a shared lock would stall every write
// behind it.
type StdioTransport struct {
	reader  *bufio.Reader
	writer  io.Writer
	logger  *slog.Logger
	readMu  sync.Mutex
	writeMu sync.Mutex
	closed  atomic.Bool
}

// NewStdioTransport creates a new stdio transport. A nil logger falls back
// to slog.Default.
func NewStdioTransport(stdin io.Reader, stdout io.Writer, logger *slog.Logger) *StdioTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &StdioTransport{
		reader: bufio.NewReader(stdin),
		writer: stdout,
		logger: logger,
	}
}

// Message represents a JSON-RPC 2.0 message.
//
// This is a union type that can represent either a Request or a Response:
//
// Request format:
//   - JSONRPC: "2.0" (required)
//   - Method: The method name (required)
//   - Params: Method parameters (optional)
//   - ID: Request identifier (optional; omit for notifications)
//
// Response format:
//   - JSONRPC: "2.0" (required)
//   - Result: Success result (mutually exclusive with Error)
//   - Error: Error object (mutually exclusive with Result)
//   - ID: Matches the request ID
//
// Field names are lowercase per JSON-RPC 2.0 specification.
type Message struct {
	// Error contains error details for failed requests.
	// Present only in error responses; mutually exclusive with Result.
	Error *ErrorObj `json:"error,omitempty"`

	// JSONRPC is always "2.0" per the JSON-RPC specification.
	JSONRPC string `json:"jsonrpc"`

	// Method is the name of the method to invoke. Present only in requests.
	Method string `json:"method,omitempty"`

	// ID is the request identifier. Omitted for notifications.
	ID json.RawMessage `json:"id,omitempty"`

	// Params contains the method parameters; may be object or array.
	Params json.RawMessage `json:"params,omitempty"`

	// Result contains the success response data.
	Result json.RawMessage `json:"result,omitempty"`
}

// ErrorObj represents a JSON-RPC 2.0 error object.
type ErrorObj struct {
	// Message is a human-readable description of the error.
	Message string `json:"message"`

	// Data contains additional error information; may be any JSON value.
	Data json.RawMessage `json:"data,omitempty"`

	// Code is a number indicating the error type.
	Code int `json:"code"`
}

// ReadMessage reads a JSON-RPC 2.0 message.
func (t *StdioTransport) ReadMessage() (*Message, error) {
	t.readMu.Lock()
	defer t.readMu.Unlock()

	if t.closed.Load() {
		return nil, fmt.Errorf("transport is closed")
	}

	line, err := t.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("stdin closed")
		}
		return nil, fmt.Errorf("failed to read line: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("empty line received")
	}

	var msg Message
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &msg, nil
}

// WriteMessage writes a JSON-RPC 2.0 message.
func (t *StdioTransport) WriteMessage(msg *Message) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if t.closed.Load() {
		return fmt.Errorf("transport is closed")
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	if _, err := t.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if _, err := t.writer.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

// Close closes the transport. Idempotent.
func (t *StdioTransport) Close() error {
	t.closed.Store(true)
	return nil
}

// IsClosed reports whether the transport is closed.
func (t *StdioTransport) IsClosed() bool {
	return t.closed.Load()
}

// Serve reads messages in a loop, dispatching each to handler and writing
// the response, until stdin closes.
func (t *StdioTransport) Serve(handler func(*Message) (*Message, error)) error {
	for {
		msg, err := t.ReadMessage()
		if err != nil {
			if err.Error() == "stdin closed" {
				t.logger.Info("stdin closed, exiting")
				return nil
			}
			if t.closed.Load() {
				return nil
			}
			t.logger.Error("reading message", "err", err)
			continue
		}

		response, err := handler(msg)
		if err != nil {
			t.logger.Error("handling message", "method", msg.Method, "err", err)
			response = &Message{
				JSONRPC: "2.0",
				ID:      msg.ID,
				Error: &ErrorObj{
					Code:    ErrCodeInternalError,
					Message: err.Error(),
				},
			}
		}

		if response != nil {
			if err := t.WriteMessage(response); err != nil {
				t.logger.Error("writing message", "err", err)
			}
		}
	}
}
