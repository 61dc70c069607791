// Copyright 2026 Asma Gulbaz

package ax_test

import (
	"context"
	"testing"
	"time"

	"github.com/AsmaGulbaz/AXElements/ax"
)

// timeoutC returns a channel that fires when a test has clearly hung.
func timeoutC(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(5 * time.Second)
}

func shortOpts() ax.WaitOptions {
	return ax.WaitOptions{Timeout: 200 * time.Millisecond, Interval: 20 * time.Millisecond}
}

func TestWaitFor_AlreadyPresent(t *testing.T) {
	_, root := newWindowTree(t)

	start := time.Now()
	el := ax.WaitFor(context.Background(), root, ax.Qualifier{Type: "button"}, shortOpts())
	if el == nil {
		t.Fatal("WaitFor = nil for an element that already exists")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("WaitFor took %v for a present element", elapsed)
	}
}

func TestWaitFor_AppearsLater(t *testing.T) {
	tree, root := newWindowTree(t)

	go func() {
		time.Sleep(50 * time.Millisecond)
		tree.Root().Add("AXSheet").Set("AXTitle", "Save")
	}()

	el := ax.WaitFor(context.Background(), root, ax.Qualifier{Type: "sheet"},
		ax.WaitOptions{Timeout: time.Second, Interval: 10 * time.Millisecond})
	if el == nil {
		t.Fatal("WaitFor = nil, want the sheet that appeared mid-wait")
	}
	if title, _ := el.Attribute("title"); title != "Save" {
		t.Errorf("title = %v, want Save", title)
	}
}

// A timed-out wait returns nil after blocking for at least the timeout and
// less than timeout plus one poll interval.
func TestWaitFor_TimeoutBound(t *testing.T) {
	_, root := newWindowTree(t)

	const (
		timeout  = 150 * time.Millisecond
		interval = 50 * time.Millisecond
	)
	start := time.Now()
	el := ax.WaitFor(context.Background(), root, ax.Qualifier{Type: "sheet"},
		ax.WaitOptions{Timeout: timeout, Interval: interval})
	elapsed := time.Since(start)

	if el != nil {
		t.Fatalf("WaitFor = %v, want nil on timeout", el)
	}
	if elapsed < timeout {
		t.Errorf("wait returned after %v, want at least %v", elapsed, timeout)
	}
	// Generous slack over the one-interval bound for scheduler noise.
	if elapsed > timeout+interval+100*time.Millisecond {
		t.Errorf("wait returned after %v, want under %v plus one interval", elapsed, timeout)
	}
}

func TestWaitFor_ContextCancel(t *testing.T) {
	_, root := newWindowTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	el := ax.WaitFor(ctx, root, ax.Qualifier{Type: "sheet"},
		ax.WaitOptions{Timeout: 5 * time.Second, Interval: 10 * time.Millisecond})
	if el != nil {
		t.Fatalf("WaitFor = %v, want nil on cancellation", el)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancelled wait returned after %v", elapsed)
	}
}

func TestWaitFor_ChildrenOnly(t *testing.T) {
	_, root := newDialogTree(t)

	// Buttons exist, but only below the first level.
	el := ax.WaitFor(context.Background(), root, ax.Qualifier{Type: "button"},
		ax.WaitOptions{Timeout: 100 * time.Millisecond, Interval: 20 * time.Millisecond, Scope: ax.ScopeChildrenOnly})
	if el != nil {
		t.Errorf("children-only wait matched a nested button: %v", el)
	}

	el = ax.WaitFor(context.Background(), root, ax.Qualifier{Type: "group"},
		ax.WaitOptions{Scope: ax.ScopeChildrenOnly})
	if el == nil {
		t.Error("children-only wait missed a direct child group")
	}
}

func TestWaitForAll(t *testing.T) {
	_, root := newDialogTree(t)

	els := ax.WaitForAll(context.Background(), root, ax.Qualifier{Type: "button"}, shortOpts())
	if len(els) != 3 {
		t.Errorf("len = %d, want 3", len(els))
	}

	none := ax.WaitForAll(context.Background(), root, ax.Qualifier{Type: "slider"}, shortOpts())
	if len(none) != 0 {
		t.Errorf("len = %d, want 0 on timeout", len(none))
	}
}

func TestWaitForInvalidation(t *testing.T) {
	tree, root := newWindowTree(t)
	button := findButton(t, root)

	go func() {
		time.Sleep(50 * time.Millisecond)
		tree.Node(button.Handle()).Remove()
	}()

	ok := ax.WaitForInvalidation(context.Background(), button,
		ax.WaitOptions{Timeout: time.Second, Interval: 10 * time.Millisecond})
	if !ok {
		t.Fatal("WaitForInvalidation = false, want true after removal")
	}
}

func TestWaitForInvalidation_StillLive(t *testing.T) {
	_, root := newWindowTree(t)
	button := findButton(t, root)

	ok := ax.WaitForInvalidation(context.Background(), button, shortOpts())
	if ok {
		t.Error("WaitForInvalidation = true for a live element")
	}
}

func TestWaitForInvalidationOf_Vanishes(t *testing.T) {
	tree, root := newWindowTree(t)
	button := findButton(t, root)

	go func() {
		time.Sleep(50 * time.Millisecond)
		tree.Node(button.Handle()).Remove()
	}()

	ok := ax.WaitForInvalidationOf(context.Background(), root, ax.Qualifier{Type: "button"},
		ax.WaitOptions{Timeout: time.Second, Interval: 10 * time.Millisecond})
	if !ok {
		t.Fatal("WaitForInvalidationOf = false, want true")
	}
}

// An element that never appears is vacuously gone.
func TestWaitForInvalidationOf_NeverAppears(t *testing.T) {
	_, root := newWindowTree(t)

	ok := ax.WaitForInvalidationOf(context.Background(), root, ax.Qualifier{Type: "sheet"}, shortOpts())
	if !ok {
		t.Error("WaitForInvalidationOf = false for an element that never existed")
	}
}

func TestWaitForInvalidationOf_StaysLive(t *testing.T) {
	_, root := newWindowTree(t)

	ok := ax.WaitForInvalidationOf(context.Background(), root, ax.Qualifier{Type: "button"}, shortOpts())
	if ok {
		t.Error("WaitForInvalidationOf = true for a button that stayed live")
	}
}
