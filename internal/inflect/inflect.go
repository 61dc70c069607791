// Copyright 2026 Asma Gulbaz

// Package inflect classifies symbolic accessor names by grammatical form and
// converts between singular and plural forms of the element-type vocabulary.
//
// The rules are deliberately small: enough for UI element type keywords
// (button/buttons, checkbox/checkboxes, ...) plus the predicate marker
// convention. They are not a general English inflector and must not grow
// into one; search cardinality depends on this exact behavior.
package inflect

import "strings"

// Kind is the request cardinality implied by a symbolic name's form.
type Kind int

const (
	// Single means the name is in singular form: expect exactly one result.
	Single Kind = iota
	// Plural means the name is in plural form: expect a sequence.
	Plural
	// Predicate means the name carries the trailing '?' marker: a
	// boolean-valued attribute lookup, never a search.
	Predicate
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Plural:
		return "plural"
	case Predicate:
		return "predicate"
	}
	return "unknown"
}

// Classify reports the Kind of a symbolic name. The predicate marker is
// checked first; otherwise the name is plural when Singularize would change
// it, singular otherwise.
func Classify(name string) Kind {
	if strings.HasSuffix(name, "?") {
		return Predicate
	}
	if Singularize(name) != name {
		return Plural
	}
	return Single
}

// irregulars maps plural forms whose singular is not recovered by suffix
// stripping. Lowercase keys only.
var irregulars = map[string]string{
	"children": "child",
}

// Singularize returns the singular form of a plural name, or the name
// unchanged when it is not recognizably plural. Names ending in "ss"
// (progress, class) and "us" (status, radius) are not treated as plural.
func Singularize(name string) string {
	lower := strings.ToLower(name)
	if s, ok := irregulars[lower]; ok {
		return matchCase(name, s)
	}
	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 3:
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(lower, "sses"), strings.HasSuffix(lower, "shes"),
		strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "xes"):
		return name[:len(name)-2]
	case strings.HasSuffix(lower, "ss"), strings.HasSuffix(lower, "us"), strings.HasSuffix(lower, "is"):
		return name
	case strings.HasSuffix(lower, "s") && len(lower) > 1:
		return name[:len(name)-1]
	}
	return name
}

// Pluralize returns the plural form of a singular name. Inverse of
// Singularize for the vocabulary this package is used with.
func Pluralize(name string) string {
	if name == "" {
		return name
	}
	lower := strings.ToLower(name)
	for plural, singular := range irregulars {
		if lower == singular {
			return matchCase(name, plural)
		}
	}
	switch {
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		return name[:len(name)-1] + "ies"
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "sh"), strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "x"):
		return name + "es"
	}
	return name + "s"
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// matchCase copies the leading-capital casing of src onto repl.
func matchCase(src, repl string) string {
	if src == "" || repl == "" {
		return repl
	}
	if src[0] >= 'A' && src[0] <= 'Z' {
		return strings.ToUpper(repl[:1]) + repl[1:]
	}
	return repl
}
