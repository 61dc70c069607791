// Copyright 2026 Asma Gulbaz

// Element proxy over one accessibility object handle

package ax

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/AsmaGulbaz/AXElements/axdriver"
	"github.com/AsmaGulbaz/AXElements/internal/resolver"
)

// roleAttribute is the designated role-like attribute the symbolic type
// vocabulary is derived from.
const roleAttribute = "AXRole"

// Element wraps one opaque handle into a typed proxy. It owns nothing: the
// underlying object belongs to the platform, and the proxy only identifies
// it. The attribute identifier list is captured at construction and may go
// stale if the object's attribute set changes; callers observing that should
// construct a fresh Element.
//
// An Element is safe for concurrent use.
type Element struct {
	drv     axdriver.Driver
	handle  axdriver.Handle
	attrIDs []string

	actionOnce sync.Once
	actionIDs  []string

	paramOnce sync.Once
	paramIDs  []string

	roleOnce sync.Once
	role     string
}

// NewElement wraps a handle, capturing its attribute identifier set. Fails
// with InvalidHandleError when the platform no longer recognizes the handle.
func NewElement(drv axdriver.Driver, h axdriver.Handle) (*Element, error) {
	ids, err := drv.Attributes(h)
	if err != nil {
		if errors.Is(err, axdriver.ErrInvalidHandle) {
			return nil, &InvalidHandleError{Handle: h, Op: "list attributes"}
		}
		return nil, fmt.Errorf("ax: listing attributes: %w", err)
	}
	return &Element{drv: drv, handle: h, attrIDs: ids}, nil
}

// Handle returns the wrapped handle.
func (e *Element) Handle() axdriver.Handle { return e.handle }

// SameAs reports whether both proxies identify the same platform object.
func (e *Element) SameAs(other *Element) bool {
	return other != nil && e.handle == other.handle
}

// Valid reports whether the platform still recognizes the handle.
func (e *Element) Valid() bool { return e.drv.Valid(e.handle) }

// AttributeNames returns the attribute identifier set captured at
// construction, in platform order.
func (e *Element) AttributeNames() []string { return e.attrIDs }

// ActionNames returns the action identifier set, fetched on first use.
func (e *Element) ActionNames() []string {
	e.actionOnce.Do(func() {
		ids, err := e.drv.Actions(e.handle)
		if err != nil {
			log().Debug("listing actions failed", "handle", e.handle, "err", err)
			return
		}
		e.actionIDs = ids
	})
	return e.actionIDs
}

func (e *Element) parameterizedNames() []string {
	e.paramOnce.Do(func() {
		ids, err := e.drv.ParameterizedAttributes(e.handle)
		if err != nil {
			log().Debug("listing parameterized attributes failed", "handle", e.handle, "err", err)
			return
		}
		e.paramIDs = ids
	})
	return e.paramIDs
}

// Role returns the element's role identifier with the namespace prefix
// stripped and lower-cased ("button", "window"). Empty when the role cannot
// be read. The value is cached after the first read.
func (e *Element) Role() string {
	e.roleOnce.Do(func() {
		raw, err := e.drv.Read(e.handle, roleAttribute)
		if err != nil {
			log().Debug("reading role failed", "handle", e.handle, "err", err)
			return
		}
		if s, ok := raw.(string); ok {
			e.role = strings.ToLower(strings.TrimPrefix(s, "AX"))
		}
	})
	return e.role
}

// Attribute resolves a symbolic name against the element's attribute set and
// reads it. Absent attributes and transient platform read failures yield
// (nil, nil); an unresolvable name fails with AttributeNotFoundError, and a
// stale handle with InvalidHandleError. Nested object references are
// recursively wrapped into new Elements.
func (e *Element) Attribute(name string) (any, error) {
	id, ok := resolver.Resolve(name, e.attrIDs)
	if !ok {
		return nil, &AttributeNotFoundError{Name: name, Role: e.Role()}
	}
	return e.readRaw(id)
}

func (e *Element) readRaw(id string) (any, error) {
	raw, err := e.drv.Read(e.handle, id)
	if err != nil {
		if errors.Is(err, axdriver.ErrInvalidHandle) {
			return nil, &InvalidHandleError{Handle: e.handle, Op: "read " + id}
		}
		// Transient platform failures on reads are absorbed so search and
		// polling loops stay well-defined. Recorded for diagnostics.
		log().Debug("read absorbed", "handle", e.handle, "attribute", id, "err", err)
		return nil, nil
	}
	return e.wrap(raw)
}

// Writable resolves a symbolic name and reports whether the attribute
// accepts writes.
func (e *Element) Writable(name string) (bool, error) {
	id, ok := resolver.Resolve(name, e.attrIDs)
	if !ok {
		return false, &AttributeNotFoundError{Name: name, Role: e.Role()}
	}
	w, err := e.drv.Writable(e.handle, id)
	if err != nil {
		if errors.Is(err, axdriver.ErrInvalidHandle) {
			return false, &InvalidHandleError{Handle: e.handle, Op: "writability of " + id}
		}
		return false, fmt.Errorf("ax: checking writability of %s: %w", id, err)
	}
	return w, nil
}

// SetAttribute writes a value to a writable attribute and returns the value
// written. The platform object is not re-read after the write: side effects
// are arbitrary, so callers wanting the post-write state must query again.
// Writes to non-writable attributes fail with AttributeReadOnlyError before
// any platform call.
func (e *Element) SetAttribute(name string, value axdriver.Value) (axdriver.Value, error) {
	id, ok := resolver.Resolve(name, e.attrIDs)
	if !ok {
		return nil, &AttributeNotFoundError{Name: name, Role: e.Role()}
	}
	w, err := e.drv.Writable(e.handle, id)
	if err != nil {
		if errors.Is(err, axdriver.ErrInvalidHandle) {
			return nil, &InvalidHandleError{Handle: e.handle, Op: "writability of " + id}
		}
		return nil, fmt.Errorf("ax: checking writability of %s: %w", id, err)
	}
	if !w {
		return nil, &AttributeReadOnlyError{Name: name, Role: e.Role()}
	}
	if err := e.drv.Write(e.handle, id, unwrapValue(value)); err != nil {
		if errors.Is(err, axdriver.ErrInvalidHandle) {
			return nil, &InvalidHandleError{Handle: e.handle, Op: "write " + id}
		}
		return nil, fmt.Errorf("ax: writing %s: %w", id, err)
	}
	return value, nil
}

// Perform resolves a symbolic name against the element's ACTION identifier
// set and invokes it. The underlying object may disappear as a side effect
// (performing "press" on a close button, say); later operations on this
// Element then fail with InvalidHandleError.
func (e *Element) Perform(name string) (bool, error) {
	id, ok := resolver.Resolve(name, e.ActionNames())
	if !ok {
		return false, &ActionNotFoundError{Name: name, Role: e.Role()}
	}
	if err := e.drv.Invoke(e.handle, id); err != nil {
		if errors.Is(err, axdriver.ErrInvalidHandle) {
			return false, &InvalidHandleError{Handle: e.handle, Op: "perform " + id}
		}
		log().Debug("action failed", "handle", e.handle, "action", id, "err", err)
		return false, nil
	}
	return true, nil
}

// ParameterizedAttribute resolves against the parameterized attribute set
// and reads with the given parameter.
func (e *Element) ParameterizedAttribute(name string, param axdriver.Value) (any, error) {
	id, ok := resolver.Resolve(name, e.parameterizedNames())
	if !ok {
		return nil, &ParameterizedAttributeNotFoundError{Name: name, Role: e.Role()}
	}
	raw, err := e.drv.ReadParameterized(e.handle, id, param)
	if err != nil {
		if errors.Is(err, axdriver.ErrInvalidHandle) {
			return nil, &InvalidHandleError{Handle: e.handle, Op: "read " + id}
		}
		log().Debug("parameterized read absorbed", "handle", e.handle, "attribute", id, "err", err)
		return nil, nil
	}
	return e.wrap(raw)
}

// Children returns freshly-constructed proxies for the element's current
// children, in platform order. Elements without a children relation, and
// transient read failures, yield an empty slice.
func (e *Element) Children() ([]*Element, error) {
	id, ok := resolver.Resolve("children", e.attrIDs)
	if !ok {
		return nil, nil
	}
	raw, err := e.readRaw(id)
	if err != nil {
		return nil, err
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, nil
	}
	children := make([]*Element, 0, len(list))
	for _, v := range list {
		if child, ok := v.(*Element); ok {
			children = append(children, child)
		}
	}
	return children, nil
}

// Parent returns the element's parent, or nil at the top of the tree.
func (e *Element) Parent() (*Element, error) {
	id, ok := resolver.Resolve("parent", e.attrIDs)
	if !ok {
		return nil, nil
	}
	raw, err := e.readRaw(id)
	if err != nil {
		return nil, err
	}
	parent, _ := raw.(*Element)
	return parent, nil
}

// hasChildren reports whether the element exposes a children relation at
// all, without reading it.
func (e *Element) hasChildren() bool {
	_, ok := resolver.Resolve("children", e.attrIDs)
	return ok
}

func (e *Element) String() string {
	role := e.Role()
	if role == "" {
		role = "element"
	}
	return fmt.Sprintf("%s(%d)", role, e.handle)
}
