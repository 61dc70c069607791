// Copyright 2026 Asma Gulbaz

// YAML tree snapshots

package axtest

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AsmaGulbaz/AXElements/axdriver"
)

// snapshotNode is the YAML shape of one element. Attribute keys use the
// symbolic snake_case convention and are converted to raw identifiers, so a
// snapshot reads the way callers write filters:
//
//	role: window
//	attributes:
//	  title: Preferences
//	writable: [title]
//	actions: [press]
//	children:
//	  - role: button
//	    attributes: {title: OK}
type snapshotNode struct {
	Role       string         `yaml:"role"`
	Attributes map[string]any `yaml:"attributes"`
	Writable   []string       `yaml:"writable"`
	Actions    []string       `yaml:"actions"`
	Children   []snapshotNode `yaml:"children"`
}

// Load builds a Tree from YAML snapshot data.
func Load(data []byte) (*Tree, error) {
	var root snapshotNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("axtest: parsing snapshot: %w", err)
	}
	if root.Role == "" {
		return nil, fmt.Errorf("axtest: snapshot root has no role")
	}
	t := NewTree(root.Role)
	if err := populate(t.Root(), root); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadFile builds a Tree from a YAML snapshot on disk.
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("axtest: reading snapshot: %w", err)
	}
	return Load(data)
}

func populate(n *Node, spec snapshotNode) error {
	// yaml.v3 map order is not preserved through map[string]any, so sort the
	// keys for a stable identifier order across loads.
	for _, key := range sortedKeys(spec.Attributes) {
		v, err := snapshotValue(spec.Attributes[key])
		if err != nil {
			return fmt.Errorf("axtest: attribute %q: %w", key, err)
		}
		n.Set(Identifier(key), v)
	}
	for _, key := range spec.Writable {
		n.SetWritable(Identifier(key), true)
	}
	for _, a := range spec.Actions {
		n.AddAction(Identifier(a), nil)
	}
	for _, childSpec := range spec.Children {
		if childSpec.Role == "" {
			return fmt.Errorf("axtest: child of %s has no role", spec.Role)
		}
		if err := populate(n.Add(childSpec.Role), childSpec); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func snapshotValue(v any) (axdriver.Value, error) {
	switch n := v.(type) {
	case nil, bool, string, float64:
		return n, nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot value type %T", v)
	}
}

// Identifier converts a symbolic snake_case name to its raw identifier:
// "main_window" becomes "AXMainWindow". Names already carrying the namespace
// prefix pass through unchanged.
func Identifier(symbol string) string {
	if strings.HasPrefix(symbol, "AX") {
		return symbol
	}
	var b strings.Builder
	b.WriteString("AX")
	for _, part := range strings.Split(symbol, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
