// Copyright 2026 Asma Gulbaz

// Timeout-bounded polling waits over the search engine

package ax

import (
	"context"
	"time"
)

// Wait defaults, applied when WaitOptions leaves a field zero.
const (
	DefaultWaitTimeout  = 5 * time.Second
	DefaultPollInterval = 200 * time.Millisecond
)

// Scope selects how much of the tree each poll attempt covers.
type Scope int

const (
	// ScopeSubtree searches the full subtree under the root on every poll.
	ScopeSubtree Scope = iota
	// ScopeChildrenOnly matches only the root's direct children.
	ScopeChildrenOnly
)

// WaitOptions bounds one wait call. Zero fields take the package defaults.
type WaitOptions struct {
	Timeout  time.Duration
	Interval time.Duration
	Scope    Scope
}

func (o WaitOptions) withDefaults() WaitOptions {
	if o.Timeout == 0 {
		o.Timeout = DefaultWaitTimeout
	}
	if o.Interval == 0 {
		o.Interval = DefaultPollInterval
	}
	return o
}

// WaitFor polls for an element matching q under root until one appears or
// the timeout elapses. Timeout is a normal outcome, not an error: the result
// is nil and nothing is raised. Cancelling ctx ends the wait early, also
// yielding nil. Driver failures during a poll are logged and treated as
// "not yet present".
func WaitFor(ctx context.Context, root *Element, q Qualifier, opts WaitOptions) *Element {
	opts = opts.withDefaults()
	var found *Element
	poll(ctx, opts, func() bool {
		found = findOnce(root, q, opts.Scope)
		return found != nil
	})
	return found
}

// WaitForAll is the multi-result form of WaitFor: it polls until at least
// one match exists and returns all matches from that poll, or an empty slice
// on timeout.
func WaitForAll(ctx context.Context, root *Element, q Qualifier, opts WaitOptions) []*Element {
	opts = opts.withDefaults()
	found := []*Element{}
	poll(ctx, opts, func() bool {
		els, err := FindAll(root, q)
		if err != nil {
			log().Debug("poll search failed", "err", err)
			return false
		}
		found = els
		return len(els) > 0
	})
	return found
}

// WaitForInvalidation polls the element's handle validity until the platform
// stops recognizing it. True means invalidation was observed; false means
// the element was still live at the deadline (or ctx was cancelled).
func WaitForInvalidation(ctx context.Context, el *Element, opts WaitOptions) bool {
	opts = opts.withDefaults()
	return poll(ctx, opts, func() bool {
		return !el.Valid()
	})
}

// WaitForInvalidationOf waits for an element matching q to disappear. The
// element is first acquired via WaitFor under the same deadline; a target
// that never appears is vacuously invalidated and reports true immediately.
func WaitForInvalidationOf(ctx context.Context, root *Element, q Qualifier, opts WaitOptions) bool {
	opts = opts.withDefaults()
	deadline := time.Now().Add(opts.Timeout)

	el := WaitFor(ctx, root, q, opts)
	if el == nil {
		return true
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return !el.Valid()
	}
	opts.Timeout = remaining
	return WaitForInvalidation(ctx, el, opts)
}

// findOnce runs one poll attempt. Search errors are absorbed: the tree may
// be mid-mutation, and the next attempt sees the settled state.
func findOnce(root *Element, q Qualifier, scope Scope) *Element {
	if scope == ScopeChildrenOnly {
		children, err := root.Children()
		if err != nil {
			log().Debug("poll children fetch failed", "err", err)
			return nil
		}
		for _, c := range children {
			ok, err := matches(c, q)
			if err != nil {
				log().Debug("poll match failed", "err", err)
				return nil
			}
			if ok {
				return c
			}
		}
		return nil
	}
	el, err := Find(root, q)
	if err != nil {
		log().Debug("poll search failed", "err", err)
		return nil
	}
	return el
}

// poll runs condition on a fixed cadence until it reports true, the deadline
// passes, or ctx is cancelled. The final attempt happens at or after the
// deadline, so a wait blocks for at least the configured timeout and less
// than timeout plus one interval.
func poll(ctx context.Context, opts WaitOptions, condition func() bool) bool {
	deadline := time.Now().Add(opts.Timeout)
	timer := time.NewTimer(opts.Interval)
	defer timer.Stop()

	for {
		if condition() {
			return true
		}
		if !time.Now().Before(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
		timer.Reset(opts.Interval)
	}
}
