// Copyright 2026 Asma Gulbaz

// Package resolver maps loosely-specified symbolic names onto the exact
// identifiers a live object reports. Symbolic names follow the snake_case
// convention with an optional trailing '?' predicate marker; identifiers
// carry the platform's fixed "AX" namespace prefix and CamelCase spelling.
//
// Resolution is memoized per identifier-set shape: elements of the same kind
// report the same identifier list, so repeated elements skip the scan. The
// cache is process-wide shared state and is safe for concurrent use.
package resolver

import (
	"strings"
	"sync"
)

// namespacePrefix is stripped from candidate identifiers before comparison.
const namespacePrefix = "AX"

type cacheKey struct {
	symbol string
	shape  string
}

// cache holds resolved (symbol, shape) pairs. A resolved identifier for a
// given shape never changes, so entries are written once and never evicted.
var cache sync.Map // cacheKey -> string ("" = not found)

// Resolve maps a symbolic name to the matching identifier from candidates.
// The symbolic name is normalized (predicate marker stripped, word
// separators removed, case folded) and compared against each candidate with
// its namespace prefix ignored; the first exact match wins. Resolve never
// falls back to partial matches: a miss reports ok=false.
func Resolve(symbol string, candidates []string) (identifier string, ok bool) {
	key := cacheKey{symbol: symbol, shape: shapeKey(candidates)}
	if v, hit := cache.Load(key); hit {
		id := v.(string)
		return id, id != ""
	}

	id := resolve(symbol, candidates)
	cache.Store(key, id)
	return id, id != ""
}

func resolve(symbol string, candidates []string) string {
	want := Normalize(symbol)
	if want == "" {
		return ""
	}
	for _, c := range candidates {
		suffix := strings.TrimPrefix(c, namespacePrefix)
		if strings.EqualFold(suffix, want) {
			return c
		}
	}
	return ""
}

// Normalize strips one trailing predicate marker and all internal word
// separators, then lower-cases the result. "main_window?" and "MainWindow"
// normalize identically.
func Normalize(symbol string) string {
	s := strings.TrimSuffix(symbol, "?")
	s = strings.ReplaceAll(s, "_", "")
	return strings.ToLower(s)
}

// shapeKey derives the cache key component for one identifier list. Lists
// with identical contents in identical order share a shape.
func shapeKey(candidates []string) string {
	return strings.Join(candidates, "\x00")
}
