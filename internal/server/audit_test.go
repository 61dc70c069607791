// Copyright 2026 Asma Gulbaz

package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewAuditLogger_Disabled(t *testing.T) {
	a, err := NewAuditLogger("")
	if err != nil {
		t.Fatalf("NewAuditLogger(\"\") error = %v", err)
	}
	if a.IsEnabled() {
		t.Error("audit logger with no path should be disabled")
	}
	// No-ops on a disabled logger.
	a.LogToolCall("find_elements", nil, "ok", time.Millisecond)
	if err := a.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestAuditLogger_WritesRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	a, err := NewAuditLogger(path)
	if err != nil {
		t.Fatalf("NewAuditLogger() error = %v", err)
	}
	defer a.Close()

	a.LogToolCall("get_attribute", json.RawMessage(`{"element":2,"name":"title"}`), "ok", 5*time.Millisecond)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading audit log: %v", err)
	}
	line := strings.TrimSpace(string(data))

	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("audit record is not JSON: %v", err)
	}
	if record["tool"] != "get_attribute" {
		t.Errorf("tool = %v", record["tool"])
	}
	if record["status"] != "ok" {
		t.Errorf("status = %v", record["status"])
	}
	if !strings.Contains(record["arguments"].(string), `"title"`) {
		t.Errorf("arguments = %v", record["arguments"])
	}
}

func TestRedactArguments(t *testing.T) {
	out := redactArguments(json.RawMessage(`{"password":"hunter2","name":"title"}`))
	if strings.Contains(out, "hunter2") {
		t.Errorf("password leaked: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Errorf("no redaction marker: %s", out)
	}
}

// Writes targeting a secret-sounding attribute redact the written value too.
func TestRedactArguments_SecretAttributeValue(t *testing.T) {
	out := redactArguments(json.RawMessage(`{"name":"password_field","value":"hunter2"}`))
	if strings.Contains(out, "hunter2") {
		t.Errorf("secret attribute value leaked: %s", out)
	}
	if !strings.Contains(out, "password_field") {
		t.Errorf("attribute name should stay visible: %s", out)
	}
}

func TestRedactArguments_PlainValueKept(t *testing.T) {
	out := redactArguments(json.RawMessage(`{"name":"title","value":"hello"}`))
	if !strings.Contains(out, "hello") {
		t.Errorf("non-secret value redacted: %s", out)
	}
}

func TestRedactArguments_Malformed(t *testing.T) {
	if out := redactArguments(json.RawMessage(`not json`)); out != "[unparseable]" {
		t.Errorf("redactArguments(garbage) = %q", out)
	}
	if out := redactArguments(nil); out != "{}" {
		t.Errorf("redactArguments(nil) = %q", out)
	}
}
