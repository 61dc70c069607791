// Copyright 2026 Asma Gulbaz

// Cardinality-aware search entry points

package ax

import (
	"errors"

	"github.com/AsmaGulbaz/AXElements/internal/inflect"
)

// SearchResult carries the outcome of a cardinality-aware search. In single
// mode Element is the match (nil means absent); in multi mode Elements is
// the ordered match list (empty means nothing found — distinct from
// absent).
type SearchResult struct {
	Element  *Element
	Elements []*Element
	Multi    bool
}

// Absent reports a single-mode result with no match.
func (r SearchResult) Absent() bool { return !r.Multi && r.Element == nil }

// Search searches the subtree rooted at this element. Cardinality follows
// the grammatical form of typeSpec: a singular form selects single-result
// mode (first breadth-first match), a plural form multi-result mode (all
// matches). The plural form is singularized before matching roles, so
// "buttons" finds elements whose role is button.
func (e *Element) Search(typeSpec string, filters Filter) (SearchResult, error) {
	typ, multi := TypeQualifier(typeSpec)
	q := Qualifier{Type: typ, Filters: filters}
	if multi {
		found, err := FindAll(e, q)
		if err != nil {
			return SearchResult{Multi: true}, err
		}
		return SearchResult{Elements: found, Multi: true}, nil
	}
	found, err := Find(e, q)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Element: found}, nil
}

// TypeQualifier normalizes a symbolic type spec into a qualifier type and
// reports whether the spec's grammatical form requests all matches. Plural
// specs are singularized before matching roles; the generic
// "element"/"elements" spec maps to the unconstrained type. Every consumer
// that builds a Qualifier from caller-supplied text routes through this, so
// "buttons" means the same thing to search and to waits.
func TypeQualifier(typeSpec string) (string, bool) {
	if inflect.Classify(typeSpec) == inflect.Plural {
		return searchType(inflect.Singularize(typeSpec)), true
	}
	return searchType(typeSpec), false
}

// searchType maps the generic "element" type spec to the unconstrained
// qualifier; every other spec names a concrete role.
func searchType(typeSpec string) string {
	if typeSpec == "element" {
		return ""
	}
	return typeSpec
}

// Access is the attribute-first symbolic accessor. The name is always tried
// as an attribute of this element; only when attribute resolution fails AND
// the element exposes a children relation does Access fall back to a search,
// with cardinality decided from the linguistic form of the name itself.
// Predicate names (trailing '?') are attribute-only and never searched.
//
// The result is an attribute value, an *Element, or a []*Element depending
// on which path served the access.
func (e *Element) Access(name string, filters Filter) (any, error) {
	value, err := e.Attribute(name)
	if err == nil {
		return value, nil
	}
	var notFound *AttributeNotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}
	if inflect.Classify(name) == inflect.Predicate || !e.hasChildren() {
		return nil, err
	}
	result, serr := e.Search(name, filters)
	if serr != nil {
		return nil, serr
	}
	if result.Multi {
		return result.Elements, nil
	}
	if result.Element == nil {
		return nil, err // keep the attribute miss: nothing matched either way
	}
	return result.Element, nil
}
