// Copyright 2026 Asma Gulbaz

// Helper functions for tool handlers

package server

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/AsmaGulbaz/AXElements/ax"
	"github.com/AsmaGulbaz/AXElements/axdriver"
)

// timeNow is time.Now, swappable in tests.
var timeNow = time.Now

// maxDisplayTextLen is the maximum length for text shown in result
// summaries. Longer text is truncated with "..." suffix.
const maxDisplayTextLen = 50

// truncateText truncates text to maxDisplayTextLen characters with "..."
// suffix if needed.
func truncateText(s string) string {
	if len(s) > maxDisplayTextLen {
		return s[:maxDisplayTextLen] + "..."
	}
	return s
}

// errorResult creates a ToolResult with IsError=true and the given message.
func errorResult(msg string) *ToolResult {
	return &ToolResult{
		IsError: true,
		Content: []Content{{Type: "text", Text: msg}},
	}
}

// errorResultf is the sprintf version of errorResult.
func errorResultf(format string, args ...any) *ToolResult {
	return errorResult(fmt.Sprintf(format, args...))
}

// textResult creates a ToolResult with a single text content.
func textResult(text string) *ToolResult {
	return &ToolResult{
		Content: []Content{{Type: "text", Text: text}},
	}
}

// textResultf creates a ToolResult with a formatted text content.
func textResultf(format string, args ...any) *ToolResult {
	return textResult(fmt.Sprintf(format, args...))
}

// element wraps the handle from a tool call parameter, defaulting to the
// server root when h is zero.
func (s *InspectServer) element(h axdriver.Handle) (*ax.Element, error) {
	if h == axdriver.NoHandle {
		return s.root, nil
	}
	return ax.NewElement(s.drv, h)
}

// parseFilters converts JSON filter arguments into an ax.Filter. String
// values wrapped in slashes ("/^OK/") compile to regular expressions; nested
// objects become nested filters; numbers and booleans pass through as
// literals.
func parseFilters(raw map[string]any) (ax.Filter, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	f := make(ax.Filter, len(raw))
	for name, v := range raw {
		switch value := v.(type) {
		case string:
			if len(value) >= 2 && strings.HasPrefix(value, "/") && strings.HasSuffix(value, "/") {
				rx, err := regexp.Compile(value[1 : len(value)-1])
				if err != nil {
					return nil, fmt.Errorf("filter %q: %w", name, err)
				}
				f[name] = rx
			} else {
				f[name] = value
			}
		case map[string]any:
			nested, err := parseFilters(value)
			if err != nil {
				return nil, err
			}
			f[name] = nested
		default:
			f[name] = v
		}
	}
	return f, nil
}

// parseTimeout reads optional duration strings, falling back to the given
// defaults.
func parseTimeout(timeout, interval string, defaults ax.WaitOptions) (ax.WaitOptions, error) {
	opts := defaults
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return opts, fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}
		opts.Timeout = d
	}
	if interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return opts, fmt.Errorf("invalid interval %q: %w", interval, err)
		}
		opts.Interval = d
	}
	return opts, nil
}

// describeElement renders one element as a result line: handle, role, and
// title when present.
func describeElement(e *ax.Element) string {
	role := e.Role()
	if role == "" {
		role = "(unknown)"
	}
	title := ""
	if v, err := e.Attribute("title"); err == nil {
		if s, ok := v.(string); ok {
			title = s
		}
	}
	if title == "" {
		return fmt.Sprintf("%d - %s", e.Handle(), role)
	}
	return fmt.Sprintf("%d - %s %q", e.Handle(), role, truncateText(title))
}

// formatValue renders an attribute value for text output.
func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "(absent)"
	case *ax.Element:
		return describeElement(value)
	case []any:
		parts := make([]string, len(value))
		for i, item := range value {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case string:
		return fmt.Sprintf("%q", value)
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(data)
	}
}
