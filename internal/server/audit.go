// Copyright 2026 Asma Gulbaz
//
// Audit logging for inspection tool invocations

package server

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// AuditLogger provides structured audit logging for tool invocations: tool
// name, redacted arguments, result status, and duration, as JSON records via
// log/slog.
type AuditLogger struct {
	logger  *slog.Logger
	file    *os.File
	enabled bool
	mu      sync.RWMutex
}

// redactedKeys lists argument keys whose values never reach the audit log.
// Attribute values written into password fields travel under "value", so
// that key is redacted whenever the attribute name suggests a secret.
var redactedKeys = map[string]bool{
	"password":   true,
	"secret":     true,
	"token":      true,
	"credential": true,
	"passphrase": true,
}

// NewAuditLogger creates an audit logger writing to the given file. An empty
// path disables audit logging.
func NewAuditLogger(filePath string) (*AuditLogger, error) {
	if filePath == "" {
		return &AuditLogger{enabled: false}, nil
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return &AuditLogger{
		logger:  slog.New(handler),
		file:    file,
		enabled: true,
	}, nil
}

// Close closes the audit log file if it is open. Safe to call multiple
// times.
func (a *AuditLogger) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

// IsEnabled reports whether audit logging is active.
func (a *AuditLogger) IsEnabled() bool {
	if a == nil {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// LogToolCall logs one tool invocation with redacted arguments.
func (a *AuditLogger) LogToolCall(tool string, args json.RawMessage, status string, duration time.Duration) {
	if !a.IsEnabled() {
		return
	}

	a.mu.RLock()
	logger := a.logger
	a.mu.RUnlock()

	if logger == nil {
		return
	}

	logger.Info("tool_invocation",
		slog.String("tool", tool),
		slog.String("arguments", redactArguments(args)),
		slog.String("status", status),
		slog.Float64("duration_seconds", duration.Seconds()),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// redactArguments redacts sensitive values from JSON arguments.
func redactArguments(args json.RawMessage) string {
	if len(args) == 0 {
		return "{}"
	}

	var parsed map[string]any
	if err := json.Unmarshal(args, &parsed); err != nil {
		return "[unparseable]"
	}

	redactMapValues(parsed)

	redacted, err := json.Marshal(parsed)
	if err != nil {
		return "[error]"
	}
	return string(redacted)
}

// redactMapValues recursively redacts sensitive values in a map.
func redactMapValues(m map[string]any) {
	secretAttr := false
	if name, ok := m["name"].(string); ok {
		lower := strings.ToLower(name)
		for key := range redactedKeys {
			if strings.Contains(lower, key) {
				secretAttr = true
				break
			}
		}
	}

	for key, value := range m {
		lowerKey := strings.ToLower(key)

		if redactedKeys[lowerKey] || (secretAttr && lowerKey == "value") {
			m[key] = "[REDACTED]"
			continue
		}

		if nested, ok := value.(map[string]any); ok {
			redactMapValues(nested)
		}
		if arr, ok := value.([]any); ok {
			for _, item := range arr {
				if nestedMap, ok := item.(map[string]any); ok {
					redactMapValues(nestedMap)
				}
			}
		}
	}
}
