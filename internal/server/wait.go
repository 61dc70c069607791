// Copyright 2026 Asma Gulbaz

// Wait and notification tool handlers

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AsmaGulbaz/AXElements/ax"
	"github.com/AsmaGulbaz/AXElements/axdriver"
)

func (s *InspectServer) waitDefaults() ax.WaitOptions {
	return ax.WaitOptions{
		Timeout:  s.cfg.WaitTimeout,
		Interval: s.cfg.PollInterval,
	}
}

// handleWaitElement handles the wait_element tool. Timing out is reported as
// a normal result, not a tool error.
func (s *InspectServer) handleWaitElement(call *ToolCall) (*ToolResult, error) {
	var params struct {
		Parent   axdriver.Handle `json:"parent"`
		TypeSpec string          `json:"type_spec"`
		Filters  map[string]any  `json:"filters"`
		Timeout  string          `json:"timeout"`
		Interval string          `json:"interval"`
	}
	if err := json.Unmarshal(call.Arguments, &params); err != nil {
		return errorResultf("Invalid parameters: %v", err), nil
	}

	parent, err := s.element(params.Parent)
	if err != nil {
		return errorResultf("Failed to resolve parent: %v", err), nil
	}
	filters, err := parseFilters(params.Filters)
	if err != nil {
		return errorResultf("Invalid filters: %v", err), nil
	}
	opts, err := parseTimeout(params.Timeout, params.Interval, s.waitDefaults())
	if err != nil {
		return errorResult(err.Error()), nil
	}

	typ, multi := ax.TypeQualifier(params.TypeSpec)
	q := ax.Qualifier{Type: typ, Filters: filters}
	if multi {
		els := ax.WaitForAll(s.ctx, parent, q, opts)
		if len(els) == 0 {
			return textResultf("No matching element appeared within %s", opts.Timeout), nil
		}
		lines := make([]string, len(els))
		for i, e := range els {
			lines[i] = fmt.Sprintf("%d. %s", i+1, describeElement(e))
		}
		return textResult(strings.Join(lines, "\n")), nil
	}

	el := ax.WaitFor(s.ctx, parent, q, opts)
	if el == nil {
		return textResultf("No matching element appeared within %s", opts.Timeout), nil
	}
	return textResult(describeElement(el)), nil
}

// handleWaitVanish handles the wait_vanish tool.
func (s *InspectServer) handleWaitVanish(call *ToolCall) (*ToolResult, error) {
	var params struct {
		Element axdriver.Handle `json:"element"`
		Timeout string          `json:"timeout"`
	}
	if err := json.Unmarshal(call.Arguments, &params); err != nil {
		return errorResultf("Invalid parameters: %v", err), nil
	}
	if params.Element == axdriver.NoHandle {
		return errorResult("element parameter is required"), nil
	}

	el, err := s.element(params.Element)
	if err != nil {
		// Already stale: nothing left to wait for.
		var stale *ax.InvalidHandleError
		if asInvalidHandle(err, &stale) {
			return textResult("Element is already invalid"), nil
		}
		return errorResultf("Failed to resolve element: %v", err), nil
	}
	opts, err := parseTimeout(params.Timeout, "", s.waitDefaults())
	if err != nil {
		return errorResult(err.Error()), nil
	}

	start := time.Now()
	if ax.WaitForInvalidation(s.ctx, el, opts) {
		return textResultf("Element became invalid after %s", time.Since(start).Round(time.Millisecond)), nil
	}
	return textResultf("Element still valid after %s", opts.Timeout), nil
}

// handleWaitNotification handles the wait_notification tool: it subscribes,
// accepts the first delivery, and waits out the timeout.
func (s *InspectServer) handleWaitNotification(call *ToolCall) (*ToolResult, error) {
	var params struct {
		Element      axdriver.Handle `json:"element"`
		Notification string          `json:"notification"`
		Timeout      string          `json:"timeout"`
	}
	if err := json.Unmarshal(call.Arguments, &params); err != nil {
		return errorResultf("Invalid parameters: %v", err), nil
	}
	if params.Element == axdriver.NoHandle || params.Notification == "" {
		return errorResult("element and notification parameters are required"), nil
	}

	el, err := s.element(params.Element)
	if err != nil {
		return errorResultf("Failed to resolve element: %v", err), nil
	}
	opts, err := parseTimeout(params.Timeout, "", s.waitDefaults())
	if err != nil {
		return errorResult(err.Error()), nil
	}

	var got string
	sub, err := s.bridge.Subscribe(el, params.Notification, func(_ *ax.Element, notification string) bool {
		got = notification
		return true
	})
	if err != nil {
		return errorResultf("Failed to subscribe: %v", err), nil
	}
	defer sub.Cancel()

	select {
	case <-sub.Done():
		return textResultf("Received %s", got), nil
	case <-time.After(opts.Timeout):
		return textResultf("No %s notification within %s", params.Notification, opts.Timeout), nil
	case <-s.ctx.Done():
		return textResult("Cancelled"), nil
	}
}

// asInvalidHandle matches both the typed core error and a bare driver error.
func asInvalidHandle(err error, target **ax.InvalidHandleError) bool {
	return errors.As(err, target) || errors.Is(err, axdriver.ErrInvalidHandle)
}
