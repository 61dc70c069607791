// Copyright 2026 Asma Gulbaz

// Package axdriver defines the boundary to the platform accessibility
// service. The core never talks to the platform directly; it goes through a
// Driver, which owns handle validity, raw attribute access, action
// invocation, and notification delivery.
//
// Implementations must be safe for concurrent use: searches, polling waits,
// and notification delivery may touch the driver from different goroutines.
package axdriver

import "errors"

// Handle is an opaque reference to one externally-owned UI object.
//
// Equality is reference identity as reported by the platform, never
// structural equality. Handles are comparable and may be used as map keys,
// but they confer no ownership: the referenced object lives and dies on the
// platform's schedule, and a held Handle may stop resolving at any time.
type Handle uint64

// NoHandle is the zero Handle; it never refers to a live object.
const NoHandle Handle = 0

// ErrInvalidHandle is reported by a Driver when an operation names a handle
// the platform no longer recognizes. The core distinguishes this condition
// from ordinary read failures, so implementations must wrap or return it
// verbatim (errors.Is-matchable).
var ErrInvalidHandle = errors.New("axdriver: invalid handle")

// NotificationFunc receives an asynchronously delivered notification for the
// observed handle. It is invoked on the driver's own delivery context;
// callers must not assume any serialization with their own goroutines.
type NotificationFunc func(h Handle, notification string)

// ObserverToken identifies one active notification registration.
type ObserverToken uint64

// Driver is the set of primitives the core consumes from the platform
// accessibility service.
//
// Read reports an absent attribute as (nil, nil): absence is distinct from a
// false or zero value. Identifier lists are returned in the platform's
// order; the core treats that order as stable for the lifetime of the list.
type Driver interface {
	// Attributes lists the raw attribute identifiers the object supports.
	Attributes(h Handle) ([]string, error)

	// Read returns the raw value of one attribute, nil if the attribute is
	// currently absent, or an error for platform failures.
	Read(h Handle, identifier string) (Value, error)

	// Writable reports whether the attribute accepts writes.
	Writable(h Handle, identifier string) (bool, error)

	// Write sets the attribute to the given raw value.
	Write(h Handle, identifier string, value Value) error

	// Actions lists the action identifiers the object supports.
	Actions(h Handle) ([]string, error)

	// Invoke performs the named action. The object may disappear as a side
	// effect; subsequent operations on h then fail with ErrInvalidHandle.
	Invoke(h Handle, identifier string) error

	// ParameterizedAttributes lists the parameterized attribute identifiers.
	ParameterizedAttributes(h Handle) ([]string, error)

	// ReadParameterized reads a parameterized attribute with one argument.
	ReadParameterized(h Handle, identifier string, param Value) (Value, error)

	// Valid reports whether the platform still recognizes the handle.
	Valid(h Handle) bool

	// Observe registers for the named notification on the handle. The
	// callback runs on the driver's delivery context.
	Observe(h Handle, notification string, fn NotificationFunc) (ObserverToken, error)

	// Unobserve releases a registration. Releasing a token twice is a no-op.
	Unobserve(token ObserverToken) error
}
