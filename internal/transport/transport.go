// Copyright 2026 Asma Gulbaz

// Package transport provides the JSON-RPC 2.0 message transport used by the
// ax inspection server over stdio.
package transport

// JSON-RPC 2.0 standard error codes.
// See: https://www.jsonrpc.org/specification#error_object
const (
	// ErrCodeParseError indicates invalid JSON was received by the server.
	ErrCodeParseError = -32700

	// ErrCodeInvalidRequest indicates the JSON sent is not a valid Request object.
	ErrCodeInvalidRequest = -32600

	// ErrCodeMethodNotFound indicates the method does not exist or is not available.
	ErrCodeMethodNotFound = -32601

	// ErrCodeInvalidParams indicates invalid method parameter(s).
	ErrCodeInvalidParams = -32602

	// ErrCodeInternalError indicates an internal JSON-RPC error.
	ErrCodeInternalError = -32603
)

// Transport defines the interface the inspection server drives.
//
// Implementations must be safe for concurrent use from multiple goroutines.
//
// Error handling:
//   - io.EOF indicates the transport was closed by the peer
//   - Errors containing "closed" indicate the transport was closed locally
//   - Other errors indicate transport-layer failures
type Transport interface {
	// ReadMessage reads a JSON-RPC 2.0 message from the transport.
	// Blocks until a message is available, an error occurs, or the
	// transport is closed.
	ReadMessage() (*Message, error)

	// WriteMessage writes a JSON-RPC 2.0 message to the transport.
	WriteMessage(msg *Message) error

	// Close closes the transport and releases any resources. Idempotent.
	Close() error

	// IsClosed reports whether the transport has been closed. Thread-safe.
	IsClosed() bool
}

var _ Transport = (*StdioTransport)(nil)
