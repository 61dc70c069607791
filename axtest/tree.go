// Copyright 2026 Asma Gulbaz

// Package axtest provides an in-memory accessibility tree implementing
// axdriver.Driver. It backs the package tests and the offline snapshot mode
// of the ax command: a Tree behaves like a live platform service, including
// handle invalidation, mid-walk mutation, and notification delivery.
package axtest

import (
	"fmt"
	"sync"

	"github.com/AsmaGulbaz/AXElements/axdriver"
)

// Node is one object in the fake tree. Nodes are created through Tree/Node
// methods so every node carries a registered handle.
type Node struct {
	tree   *Tree
	handle axdriver.Handle
	parent *Node

	role       string
	attrs      map[string]axdriver.Value
	attrOrder  []string
	writable   map[string]bool
	actions    []string
	onAction   map[string]func()
	params     map[string]func(axdriver.Value) axdriver.Value
	paramOrder []string
	children   []*Node
}

type observer struct {
	handle       axdriver.Handle
	notification string
	fn           axdriver.NotificationFunc
}

// Tree is an in-memory axdriver.Driver. All methods are safe for concurrent
// use; tests may mutate the tree while a search or wait is in flight, which
// is exactly the situation the core has to tolerate.
type Tree struct {
	mu        sync.Mutex
	nextH     axdriver.Handle
	nextT     axdriver.ObserverToken
	nodes     map[axdriver.Handle]*Node
	observers map[axdriver.ObserverToken]observer
	root      *Node
}

var _ axdriver.Driver = (*Tree)(nil)

// NewTree creates a tree whose root has the given role.
func NewTree(rootRole string) *Tree {
	t := &Tree{
		nodes:     make(map[axdriver.Handle]*Node),
		observers: make(map[axdriver.ObserverToken]observer),
	}
	t.root = t.newNode(nil, rootRole)
	return t
}

func (t *Tree) newNode(parent *Node, role string) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextH++
	n := &Node{
		tree:     t,
		handle:   t.nextH,
		parent:   parent,
		role:     role,
		attrs:    make(map[string]axdriver.Value),
		writable: make(map[string]bool),
		onAction: make(map[string]func()),
		params:   make(map[string]func(axdriver.Value) axdriver.Value),
	}
	t.nodes[n.handle] = n
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Node looks a node up by handle; nil when the handle is not live.
func (t *Tree) Node(h axdriver.Handle) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nodes[h]
}

// Handle returns the node's handle.
func (n *Node) Handle() axdriver.Handle { return n.handle }

// Add creates a child node with the given role and returns it.
func (n *Node) Add(role string) *Node {
	return n.tree.newNode(n, role)
}

// Children returns the node's current children.
func (n *Node) Children() []*Node {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	return append([]*Node(nil), n.children...)
}

// Set assigns an attribute by raw identifier ("AXTitle"). First assignment
// fixes the identifier's position in the reported attribute order.
func (n *Node) Set(identifier string, value axdriver.Value) *Node {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	if _, seen := n.attrs[identifier]; !seen {
		n.attrOrder = append(n.attrOrder, identifier)
	}
	n.attrs[identifier] = value
	return n
}

// SetWritable marks an attribute writable.
func (n *Node) SetWritable(identifier string, w bool) *Node {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	n.writable[identifier] = w
	return n
}

// AddAction registers an action identifier with an optional side effect run
// on invocation.
func (n *Node) AddAction(identifier string, fn func()) *Node {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	n.actions = append(n.actions, identifier)
	if fn != nil {
		n.onAction[identifier] = fn
	}
	return n
}

// SetParameterized registers a parameterized attribute served by fn.
func (n *Node) SetParameterized(identifier string, fn func(axdriver.Value) axdriver.Value) *Node {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	if _, seen := n.params[identifier]; !seen {
		n.paramOrder = append(n.paramOrder, identifier)
	}
	n.params[identifier] = fn
	return n
}

// Remove invalidates the node and its whole subtree, detaching it from its
// parent. Held handles into the subtree stop resolving, as when a window
// closes on the real platform.
func (n *Node) Remove() {
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	if n.parent != nil {
		siblings := n.parent.children
		for i, s := range siblings {
			if s == n {
				n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
		n.parent = nil
	}
	n.invalidate()
}

func (n *Node) invalidate() {
	delete(n.tree.nodes, n.handle)
	for _, c := range n.children {
		c.invalidate()
	}
}

// Post delivers a notification for the node to every matching observer,
// synchronously on the caller's goroutine — which is, from the core's point
// of view, the driver's own delivery context.
func (t *Tree) Post(n *Node, notification string) {
	t.mu.Lock()
	var fns []axdriver.NotificationFunc
	for _, o := range t.observers {
		if o.handle == n.handle && o.notification == notification {
			fns = append(fns, o.fn)
		}
	}
	t.mu.Unlock()
	for _, fn := range fns {
		fn(n.handle, notification)
	}
}

// implicit attribute identifiers every node reports, ahead of declared ones.
var implicitAttrs = []string{"AXRole", "AXParent", "AXChildren"}

func (t *Tree) live(h axdriver.Handle) (*Node, error) {
	n := t.nodes[h]
	if n == nil {
		return nil, fmt.Errorf("axtest: handle %d: %w", h, axdriver.ErrInvalidHandle)
	}
	return n, nil
}

// Attributes implements axdriver.Driver.
func (t *Tree) Attributes(h axdriver.Handle) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.live(h)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(implicitAttrs)+len(n.attrOrder))
	ids = append(ids, implicitAttrs...)
	ids = append(ids, n.attrOrder...)
	return ids, nil
}

// Read implements axdriver.Driver.
func (t *Tree) Read(h axdriver.Handle, identifier string) (axdriver.Value, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.live(h)
	if err != nil {
		return nil, err
	}
	switch identifier {
	case "AXRole":
		return n.role, nil
	case "AXParent":
		if n.parent == nil {
			return nil, nil
		}
		return n.parent.handle, nil
	case "AXChildren":
		// An explicit Set wins, letting tests report inconsistent or
		// cyclic child lists.
		if v, ok := n.attrs[identifier]; ok {
			return v, nil
		}
		kids := make([]axdriver.Value, len(n.children))
		for i, c := range n.children {
			kids[i] = c.handle
		}
		return kids, nil
	}
	v, ok := n.attrs[identifier]
	if !ok {
		return nil, nil
	}
	return v, nil
}

// Writable implements axdriver.Driver.
func (t *Tree) Writable(h axdriver.Handle, identifier string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.live(h)
	if err != nil {
		return false, err
	}
	return n.writable[identifier], nil
}

// Write implements axdriver.Driver.
func (t *Tree) Write(h axdriver.Handle, identifier string, value axdriver.Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.live(h)
	if err != nil {
		return err
	}
	if !n.writable[identifier] {
		return fmt.Errorf("axtest: attribute %s is not writable", identifier)
	}
	if _, seen := n.attrs[identifier]; !seen {
		n.attrOrder = append(n.attrOrder, identifier)
	}
	n.attrs[identifier] = value
	return nil
}

// Actions implements axdriver.Driver.
func (t *Tree) Actions(h axdriver.Handle) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.live(h)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), n.actions...), nil
}

// Invoke implements axdriver.Driver. The registered side effect runs after
// the action is validated, outside the tree lock, so it may mutate or remove
// nodes.
func (t *Tree) Invoke(h axdriver.Handle, identifier string) error {
	t.mu.Lock()
	n, err := t.live(h)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	var fn func()
	supported := false
	for _, a := range n.actions {
		if a == identifier {
			supported = true
			fn = n.onAction[identifier]
			break
		}
	}
	t.mu.Unlock()
	if !supported {
		return fmt.Errorf("axtest: action %s not supported", identifier)
	}
	if fn != nil {
		fn()
	}
	return nil
}

// ParameterizedAttributes implements axdriver.Driver.
func (t *Tree) ParameterizedAttributes(h axdriver.Handle) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.live(h)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), n.paramOrder...), nil
}

// ReadParameterized implements axdriver.Driver.
func (t *Tree) ReadParameterized(h axdriver.Handle, identifier string, param axdriver.Value) (axdriver.Value, error) {
	t.mu.Lock()
	n, err := t.live(h)
	if err != nil {
		t.mu.Unlock()
		return nil, err
	}
	fn := n.params[identifier]
	t.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(param), nil
}

// Valid implements axdriver.Driver.
func (t *Tree) Valid(h axdriver.Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nodes[h] != nil
}

// Observe implements axdriver.Driver.
func (t *Tree) Observe(h axdriver.Handle, notification string, fn axdriver.NotificationFunc) (axdriver.ObserverToken, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.live(h); err != nil {
		return 0, err
	}
	t.nextT++
	t.observers[t.nextT] = observer{handle: h, notification: notification, fn: fn}
	return t.nextT, nil
}

// Unobserve implements axdriver.Driver.
func (t *Tree) Unobserve(token axdriver.ObserverToken) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.observers, token)
	return nil
}
