// Copyright 2026 Asma Gulbaz

// Breadth-first, filter-driven search over the live tree

package ax

import (
	"errors"
	"reflect"
	"regexp"

	"github.com/AsmaGulbaz/AXElements/axdriver"
	"github.com/AsmaGulbaz/AXElements/internal/resolver"
)

// Filter maps symbolic attribute names to expected values. An expected value
// is a literal (compared for equality, numerics normalized), a
// *regexp.Regexp (matched against string attributes), or a nested Filter
// (matched recursively against an element-valued attribute).
type Filter map[string]any

// Qualifier is one search predicate: an optional symbolic element type plus
// a Filter. An empty Type matches every element.
type Qualifier struct {
	Type    string
	Filters Filter
}

type searchNode struct {
	el        *Element
	ancestors []axdriver.Handle
}

// Find returns the first element under root matching q, in breadth-first
// order: the match at the smallest depth, ties broken by left-to-right
// sibling order. Root itself is never matched. A nil result with nil error
// means no match.
//
// Children are fetched fresh on every expansion; the walk reflects the live
// tree, not a snapshot.
func Find(root *Element, q Qualifier) (*Element, error) {
	var found *Element
	err := walk(root, func(el *Element) (bool, error) {
		ok, err := matches(el, q)
		if err != nil || !ok {
			return false, err
		}
		found = el
		return true, nil
	})
	return found, err
}

// FindAll returns every element under root matching q, preserving
// breadth-first visitation order. An empty slice means the walk completed
// with no matches; it is never nil-vs-empty significant.
func FindAll(root *Element, q Qualifier) ([]*Element, error) {
	found := []*Element{}
	err := walk(root, func(el *Element) (bool, error) {
		ok, err := matches(el, q)
		if err != nil || !ok {
			return false, err
		}
		found = append(found, el)
		return false, nil
	})
	return found, err
}

// walk runs a breadth-first traversal from root's children, calling visit on
// each element. visit returning true stops the walk. Accessibility trees are
// assumed acyclic; as a defense against a violated assumption, a child whose
// handle appears on its own ancestor chain is not expanded.
func walk(root *Element, visit func(*Element) (bool, error)) error {
	children, err := root.Children()
	if err != nil {
		return err
	}
	queue := make([]searchNode, 0, len(children))
	rootChain := []axdriver.Handle{root.handle}
	for _, c := range children {
		queue = append(queue, searchNode{el: c, ancestors: rootChain})
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		stop, err := visit(node.el)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}

		kids, err := node.el.Children()
		if err != nil {
			var stale *InvalidHandleError
			if errors.As(err, &stale) {
				continue // vanished mid-walk
			}
			return err
		}
		if len(kids) == 0 {
			continue
		}
		chain := append(node.ancestors[:len(node.ancestors):len(node.ancestors)], node.el.handle)
		for _, kid := range kids {
			if onChain(chain, kid.handle) {
				log().Warn("cycle detected in accessibility tree", "handle", kid.handle)
				continue
			}
			queue = append(queue, searchNode{el: kid, ancestors: chain})
		}
	}
	return nil
}

func onChain(chain []axdriver.Handle, h axdriver.Handle) bool {
	for _, a := range chain {
		if a == h {
			return true
		}
	}
	return false
}

// matches reports whether el satisfies q. A vanished element never matches;
// its staleness is absorbed so the surrounding walk stays well-defined.
func matches(el *Element, q Qualifier) (bool, error) {
	if q.Type != "" && el.Role() != resolver.Normalize(q.Type) {
		return false, nil
	}
	return matchFilters(el, q.Filters)
}

func matchFilters(el *Element, filters Filter) (bool, error) {
	for name, expected := range filters {
		value, err := el.Attribute(name)
		if err != nil {
			var notFound *AttributeNotFoundError
			var stale *InvalidHandleError
			if errors.As(err, &notFound) || errors.As(err, &stale) {
				return false, nil
			}
			return false, err
		}
		ok, err := matchValue(el, value, expected)
		if err != nil || !ok {
			return ok, err
		}
	}
	return true, nil
}

func matchValue(el *Element, value any, expected any) (bool, error) {
	switch want := expected.(type) {
	case *regexp.Regexp:
		s, ok := value.(string)
		return ok && want.MatchString(s), nil
	case Filter:
		nested, ok := value.(*Element)
		if !ok {
			return false, nil
		}
		return matchFilters(nested, want)
	case *Element:
		got, ok := value.(*Element)
		return ok && want.SameAs(got), nil
	default:
		return equalValue(value, expected), nil
	}
}

// equalValue compares an attribute value against a literal, normalizing
// integer widths so callers can write plain ints for int64-valued
// attributes.
func equalValue(got, want any) bool {
	if g, ok := normalizeNumber(got); ok {
		w, ok := normalizeNumber(want)
		return ok && g == w
	}
	return reflect.DeepEqual(got, want)
}

func normalizeNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
