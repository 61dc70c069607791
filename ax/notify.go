// Copyright 2026 Asma Gulbaz

// Notification bridge between driver callbacks and caller predicates

package ax

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/AsmaGulbaz/AXElements/axdriver"
	"github.com/AsmaGulbaz/AXElements/internal/resolver"
)

// knownNotifications is the identifier vocabulary notification names resolve
// against. Unrecognized names fall back to their literal spelling, so this
// list is a convenience, not a gate.
var knownNotifications = []string{
	"AXMainWindowChanged",
	"AXFocusedWindowChanged",
	"AXFocusedUIElementChanged",
	"AXApplicationActivated",
	"AXApplicationDeactivated",
	"AXApplicationHidden",
	"AXApplicationShown",
	"AXWindowCreated",
	"AXWindowMoved",
	"AXWindowResized",
	"AXWindowMiniaturized",
	"AXWindowDeminiaturized",
	"AXDrawerCreated",
	"AXSheetCreated",
	"AXHelpTagCreated",
	"AXValueChanged",
	"AXUIElementDestroyed",
	"AXMenuOpened",
	"AXMenuClosed",
	"AXMenuItemSelected",
	"AXRowCountChanged",
	"AXSelectedChildrenChanged",
	"AXSelectedTextChanged",
	"AXTitleChanged",
	"AXCreated",
}

// AcceptFunc decides whether a delivered notification finalizes its
// subscription. Returning true consumes the subscription; false keeps
// waiting. It runs on the bridge's drain goroutine, never on the driver's
// delivery context.
type AcceptFunc func(el *Element, notification string) bool

type event struct {
	sub          *Subscription
	notification string
}

// Bridge adapts the driver's asynchronous notification delivery into a
// message-passing boundary: callbacks enqueue onto an internal channel that
// a single goroutine drains, so caller predicates never run with driver
// machinery on the stack and never race each other.
type Bridge struct {
	drv    axdriver.Driver
	events chan event
	done   chan struct{}

	mu   sync.Mutex
	subs map[uuid.UUID]*Subscription
}

// eventBuffer bounds how many undelivered notifications the bridge holds.
// Delivery beyond the buffer is dropped with a log record rather than
// blocking the driver's delivery context.
const eventBuffer = 64

// NewBridge creates a bridge over the driver and starts its drain loop.
// Close releases all live subscriptions and stops the loop.
func NewBridge(drv axdriver.Driver) *Bridge {
	b := &Bridge{
		drv:    drv,
		events: make(chan event, eventBuffer),
		done:   make(chan struct{}),
		subs:   make(map[uuid.UUID]*Subscription),
	}
	go b.drain()
	return b
}

// Subscription is one active notification registration. It is released by
// its predicate accepting a delivery, by Cancel, or by Bridge.Close.
type Subscription struct {
	ID uuid.UUID

	bridge *Bridge
	el     *Element
	name   string
	accept AcceptFunc
	done   chan struct{}

	// Guarded by bridge.mu. The driver may deliver the first notification
	// before Observe returns its token, so finalization must not assume the
	// token has been published yet.
	token      axdriver.ObserverToken
	registered bool
	finalized  bool
}

// Subscribe registers accept for the named notification on the element. The
// name follows the same normalize-and-match convention as attribute
// resolution, applied against the known notification identifiers; a name
// that resolves to nothing is passed to the driver literally.
func (b *Bridge) Subscribe(el *Element, name string, accept AcceptFunc) (*Subscription, error) {
	identifier, ok := resolver.Resolve(name, knownNotifications)
	if !ok {
		identifier = name
	}

	sub := &Subscription{
		ID:     uuid.New(),
		bridge: b,
		el:     el,
		name:   identifier,
		accept: accept,
		done:   make(chan struct{}),
	}

	token, err := b.drv.Observe(el.Handle(), identifier, func(h axdriver.Handle, notification string) {
		select {
		case b.events <- event{sub: sub, notification: notification}:
		case <-b.done:
		default:
			log().Warn("notification dropped, bridge buffer full",
				"notification", notification, "handle", h)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("ax: observing %s: %w", identifier, err)
	}

	b.mu.Lock()
	sub.token = token
	sub.registered = true
	finalized := sub.finalized
	if !finalized {
		b.subs[sub.ID] = sub
	}
	b.mu.Unlock()
	if finalized {
		// A delivery before Observe returned already consumed the
		// subscription; release the registration now that the token exists.
		sub.unobserve(token)
	}
	return sub, nil
}

// drain delivers queued notifications to predicates, one at a time.
func (b *Bridge) drain() {
	for {
		select {
		case <-b.done:
			return
		case ev := <-b.events:
			if !ev.sub.active() {
				continue
			}
			if ev.sub.accept == nil || ev.sub.accept(ev.sub.el, ev.notification) {
				ev.sub.finalize()
			}
		}
	}
}

// Close cancels every live subscription and stops the drain loop.
func (b *Bridge) Close() {
	b.mu.Lock()
	subs := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()
	for _, s := range subs {
		s.finalize()
	}
	close(b.done)
}

func (s *Subscription) active() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// finalize releases the driver registration exactly once, from whichever
// context gets there first. When the subscription finalizes before Observe
// has returned, Subscribe releases the token instead.
func (s *Subscription) finalize() {
	b := s.bridge
	b.mu.Lock()
	if s.finalized {
		b.mu.Unlock()
		return
	}
	s.finalized = true
	registered := s.registered
	token := s.token
	delete(b.subs, s.ID)
	b.mu.Unlock()
	if registered {
		s.unobserve(token)
	}
	close(s.done)
}

func (s *Subscription) unobserve(token axdriver.ObserverToken) {
	if err := s.bridge.drv.Unobserve(token); err != nil {
		log().Debug("unobserve failed", "subscription", s.ID, "err", err)
	}
}

// Cancel releases the subscription without waiting for an accepted
// delivery. Safe to call from any goroutine, any number of times.
func (s *Subscription) Cancel() { s.finalize() }

// Done is closed once the subscription is finalized, whether by an accepted
// delivery or by cancellation.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Wait blocks until the subscription finalizes or ctx is cancelled. True
// means finalized.
func (s *Subscription) Wait(ctx context.Context) bool {
	select {
	case <-s.done:
		return true
	case <-ctx.Done():
		return false
	}
}
