// Copyright 2026 Asma Gulbaz

package server

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/AsmaGulbaz/AXElements/ax"
	"github.com/AsmaGulbaz/AXElements/axdriver"
)

// handleJSON renders a handle as its JSON argument form.
func handleJSON(h axdriver.Handle) string {
	return strconv.FormatUint(uint64(h), 10)
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short"); got != "short" {
		t.Errorf("truncateText(short) = %q", got)
	}

	long := strings.Repeat("x", maxDisplayTextLen+10)
	got := truncateText(long)
	if len(got) != maxDisplayTextLen+3 {
		t.Errorf("len = %d, want %d", len(got), maxDisplayTextLen+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text %q missing ellipsis", got)
	}
}

func TestParseFilters(t *testing.T) {
	f, err := parseFilters(map[string]any{
		"title":   "/^OK$/",
		"value":   "literal",
		"enabled": true,
		"count":   float64(3),
		"parent":  map[string]any{"role": "window"},
	})
	if err != nil {
		t.Fatalf("parseFilters() error = %v", err)
	}

	if _, ok := f["title"].(*regexp.Regexp); !ok {
		t.Errorf("title = %T, want *regexp.Regexp", f["title"])
	}
	if f["value"] != "literal" {
		t.Errorf("value = %v", f["value"])
	}
	if f["enabled"] != true {
		t.Errorf("enabled = %v", f["enabled"])
	}
	if f["count"] != float64(3) {
		t.Errorf("count = %v", f["count"])
	}
	nested, ok := f["parent"].(ax.Filter)
	if !ok || nested["role"] != "window" {
		t.Errorf("parent = %#v, want nested filter", f["parent"])
	}
}

func TestParseFilters_Empty(t *testing.T) {
	if f, err := parseFilters(nil); err != nil || f != nil {
		t.Errorf("parseFilters(nil) = (%v, %v), want (nil, nil)", f, err)
	}
}

func TestParseFilters_BadRegexp(t *testing.T) {
	if _, err := parseFilters(map[string]any{"title": "/[/"}); err == nil {
		t.Error("parseFilters should reject an invalid regular expression")
	}
}

// A lone slash is a literal, not an empty regular expression.
func TestParseFilters_SingleSlash(t *testing.T) {
	f, err := parseFilters(map[string]any{"title": "/"})
	if err != nil {
		t.Fatalf("parseFilters() error = %v", err)
	}
	if f["title"] != "/" {
		t.Errorf("title = %v, want the literal slash", f["title"])
	}
}

func TestParseTimeout(t *testing.T) {
	defaults := ax.WaitOptions{Timeout: time.Second, Interval: 100 * time.Millisecond}

	opts, err := parseTimeout("", "", defaults)
	if err != nil || opts != defaults {
		t.Errorf("parseTimeout(empty) = (%v, %v), want defaults", opts, err)
	}

	opts, err = parseTimeout("2s", "50ms", defaults)
	if err != nil {
		t.Fatalf("parseTimeout() error = %v", err)
	}
	if opts.Timeout != 2*time.Second || opts.Interval != 50*time.Millisecond {
		t.Errorf("opts = %+v", opts)
	}

	if _, err := parseTimeout("soon", "", defaults); err == nil {
		t.Error("parseTimeout should reject a malformed timeout")
	}
	if _, err := parseTimeout("", "often", defaults); err == nil {
		t.Error("parseTimeout should reject a malformed interval")
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		v    any
		want string
	}{
		{nil, "(absent)"},
		{"text", `"text"`},
		{true, "true"},
		{int64(7), "7"},
		{[]any{"a", int64(1)}, `["a", 1]`},
	}
	for _, tc := range cases {
		if got := formatValue(tc.v); got != tc.want {
			t.Errorf("formatValue(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
