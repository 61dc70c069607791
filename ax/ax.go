// Copyright 2026 Asma Gulbaz

// Package ax is the core of AXElements: typed access to a live, externally
// owned accessibility tree. It wraps opaque driver handles into Element
// proxies, resolves loosely-specified symbolic names to concrete attribute
// and action identifiers, searches the tree breadth-first with attribute
// filters, and provides timeout-bounded polling waits and a notification
// bridge.
//
// The tree is mutable under the caller's feet: the package never caches
// structure beyond one traversal step and always re-fetches children, so
// results reflect the platform state at most one poll interval ago.
package ax

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// logger receives diagnostic records for absorbed read failures and bridge
// activity. Defaults to discard; replace with SetLogger.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// SetLogger installs the structured logger used for package diagnostics.
// Safe to call concurrently with any operation.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

func log() *slog.Logger { return logger.Load() }
