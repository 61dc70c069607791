// Copyright 2026 Asma Gulbaz

// Element tool handlers

package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AsmaGulbaz/AXElements/ax"
	"github.com/AsmaGulbaz/AXElements/axdriver"
)

// handleFindElements handles the find_elements tool.
func (s *InspectServer) handleFindElements(call *ToolCall) (*ToolResult, error) {
	var params struct {
		Parent   axdriver.Handle `json:"parent"`
		TypeSpec string          `json:"type_spec"`
		Filters  map[string]any  `json:"filters"`
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

	typeSpec := params.TypeSpec
	if typeSpec == "" {
		typeSpec = "elements" // no type constraint, all matches
	}
	result, err := parent.Search(typeSpec, filters)
	if err != nil {
		return errorResultf("Search failed: %v", err), nil
	}

	if result.Multi {
		if len(result.Elements) == 0 {
			return textResult("No elements found matching filters"), nil
		}
		lines := make([]string, len(result.Elements))
		for i, e := range result.Elements {
			lines[i] = fmt.Sprintf("%d. %s", i+1, describeElement(e))
		}
		return textResult(strings.Join(lines, "\n")), nil
	}

	if result.Element == nil {
		return textResult("No element found matching filters"), nil
	}
	return textResult(describeElement(result.Element)), nil
}

// handleGetAttribute handles the get_attribute tool.
func (s *InspectServer) handleGetAttribute(call *ToolCall) (*ToolResult, error) {
	var params struct {
		Element axdriver.Handle `json:"element"`
		Name    string          `json:"name"`
	}
	if err := json.Unmarshal(call.Arguments, &params); err != nil {
		return errorResultf("Invalid parameters: %v", err), nil
	}
	if params.Element == axdriver.NoHandle || params.Name == "" {
		return errorResult("element and name parameters are required"), nil
	}

	el, err := s.element(params.Element)
	if err != nil {
		return errorResultf("Failed to resolve element: %v", err), nil
	}
	value, err := el.Attribute(params.Name)
	if err != nil {
		return errorResultf("Failed to read attribute: %v", err), nil
	}
	return textResultf("%s = %s", params.Name, formatValue(value)), nil
}

// handleSetAttribute handles the set_attribute tool.
func (s *InspectServer) handleSetAttribute(call *ToolCall) (*ToolResult, error) {
	var params struct {
		Element axdriver.Handle `json:"element"`
		Name    string          `json:"name"`
		Value   any             `json:"value"`
	}
	if err := json.Unmarshal(call.Arguments, &params); err != nil {
		return errorResultf("Invalid parameters: %v", err), nil
	}
	if params.Element == axdriver.NoHandle || params.Name == "" {
		return errorResult("element and name parameters are required"), nil
	}

	el, err := s.element(params.Element)
	if err != nil {
		return errorResultf("Failed to resolve element: %v", err), nil
	}
	written, err := el.SetAttribute(params.Name, params.Value)
	if err != nil {
		return errorResultf("Failed to write attribute: %v", err), nil
	}
	return textResultf("%s set to %s", params.Name, formatValue(written)), nil
}

// handlePerformAction handles the perform_action tool.
func (s *InspectServer) handlePerformAction(call *ToolCall) (*ToolResult, error) {
	var params struct {
		Element axdriver.Handle `json:"element"`
		Name    string          `json:"name"`
	}
	if err := json.Unmarshal(call.Arguments, &params); err != nil {
		return errorResultf("Invalid parameters: %v", err), nil
	}
	if params.Element == axdriver.NoHandle || params.Name == "" {
		return errorResult("element and name parameters are required"), nil
	}

	el, err := s.element(params.Element)
	if err != nil {
		return errorResultf("Failed to resolve element: %v", err), nil
	}
	ok, err := el.Perform(params.Name)
	if err != nil {
		return errorResultf("Failed to perform action: %v", err), nil
	}
	if !ok {
		return errorResultf("Action %s reported failure", params.Name), nil
	}
	return textResultf("Performed %s", params.Name), nil
}

// handleElementTree handles the element_tree tool.
func (s *InspectServer) handleElementTree(call *ToolCall) (*ToolResult, error) {
	var params struct {
		Element axdriver.Handle `json:"element"`
	}
	if err := json.Unmarshal(call.Arguments, &params); err != nil {
		return errorResultf("Invalid parameters: %v", err), nil
	}

	el, err := s.element(params.Element)
	if err != nil {
		return errorResultf("Failed to resolve element: %v", err), nil
	}

	var b strings.Builder
	if err := renderTree(&b, el, 0); err != nil {
		return errorResultf("Failed to render tree: %v", err), nil
	}
	return textResult(strings.TrimRight(b.String(), "\n")), nil
}

// renderTree writes the hierarchy under el with two-space indentation.
func renderTree(b *strings.Builder, el *ax.Element, depth int) error {
	fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", depth), describeElement(el))
	children, err := el.Children()
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := renderTree(b, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
