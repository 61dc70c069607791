// Copyright 2026 Asma Gulbaz

package inflect

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"button", Single},
		{"buttons", Plural},
		{"checkbox", Single},
		{"checkboxes", Plural},
		{"enabled?", Predicate},
		{"focused?", Predicate},
		{"child", Single},
		{"children", Plural},
		{"progress", Single}, // ss is not a plural marker
		{"status", Single},   // us is not a plural marker
		{"radio_buttons", Plural},
		{"window", Single},
		{"windows", Plural},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.name); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSingularize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"buttons", "button"},
		{"checkboxes", "checkbox"},
		{"sheets", "sheet"},
		{"entries", "entry"},
		{"matches", "match"},
		{"children", "child"},
		{"progress", "progress"},
		{"status", "status"},
		{"button", "button"}, // already singular
		{"s", "s"},           // too short to strip
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Singularize(tt.in); got != tt.want {
				t.Errorf("Singularize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"button", "buttons"},
		{"checkbox", "checkboxes"},
		{"entry", "entries"},
		{"match", "matches"},
		{"child", "children"},
		{"window", "windows"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Pluralize(tt.in); got != tt.want {
				t.Errorf("Pluralize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Pluralize and Singularize are inverses over the element-type vocabulary.
func TestRoundTrip(t *testing.T) {
	for _, word := range []string{
		"button", "window", "sheet", "checkbox", "slider", "menu_item",
		"text_field", "row", "column", "child",
	} {
		if got := Singularize(Pluralize(word)); got != word {
			t.Errorf("Singularize(Pluralize(%q)) = %q", word, got)
		}
	}
}
