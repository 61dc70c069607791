// Copyright 2026 Asma Gulbaz

// Error taxonomy for element operations

package ax

import (
	"fmt"

	"github.com/AsmaGulbaz/AXElements/axdriver"
)

// AttributeNotFoundError reports a symbolic name that failed to resolve
// against an element's attribute identifier set.
type AttributeNotFoundError struct {
	Name string
	Role string
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("ax: attribute %q not found on %s element", e.Name, roleOrUnknown(e.Role))
}

// ActionNotFoundError reports a symbolic name that failed to resolve against
// an element's action identifier set.
type ActionNotFoundError struct {
	Name string
	Role string
}

func (e *ActionNotFoundError) Error() string {
	return fmt.Sprintf("ax: action %q not found on %s element", e.Name, roleOrUnknown(e.Role))
}

// ParameterizedAttributeNotFoundError reports a symbolic name that failed to
// resolve against an element's parameterized attribute identifier set.
type ParameterizedAttributeNotFoundError struct {
	Name string
	Role string
}

func (e *ParameterizedAttributeNotFoundError) Error() string {
	return fmt.Sprintf("ax: parameterized attribute %q not found on %s element", e.Name, roleOrUnknown(e.Role))
}

// AttributeReadOnlyError reports a write attempted on an attribute the
// element does not allow writes to. It is raised before any platform call.
type AttributeReadOnlyError struct {
	Name string
	Role string
}

func (e *AttributeReadOnlyError) Error() string {
	return fmt.Sprintf("ax: attribute %q on %s element is not writable", e.Name, roleOrUnknown(e.Role))
}

// InvalidHandleError reports an operation on a handle the platform no longer
// recognizes. The caller's reference is stale and must be re-acquired.
type InvalidHandleError struct {
	Handle axdriver.Handle
	Op     string
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("ax: %s on invalid handle %d", e.Op, e.Handle)
}

func roleOrUnknown(role string) string {
	if role == "" {
		return "unknown"
	}
	return role
}
