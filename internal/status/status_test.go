package status

import (
	"sync"
	"testing"
	"time"
)

// recorder collects notifier callbacks for assertions.
type recorder struct {
	mu      sync.Mutex
	shown   []Message
	cleared int
}

func (r *recorder) show(msg Message) {
	r.mu.Lock()
	r.shown = append(r.shown, msg)
	r.mu.Unlock()
}

func (r *recorder) clear() {
	r.mu.Lock()
	r.cleared++
	r.mu.Unlock()
}

func (r *recorder) snapshot() ([]Message, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.shown...), r.cleared
}

func TestNotifierShowsAndDismisses(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec.show, rec.clear)
	n.SetDismissAfter(10 * time.Millisecond)

	n.Success("saved")

	shown, cleared := rec.snapshot()
	if len(shown) != 1 || shown[0].Text != "saved" || shown[0].Kind != KindSuccess {
		t.Fatalf("shown = %+v", shown)
	}
	if cleared != 0 {
		t.Fatalf("cleared too early: %d", cleared)
	}

	deadline := time.Now().Add(time.Second)
	for {
		if _, cleared := rec.snapshot(); cleared == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("message was never dismissed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestNotifierSupersedes(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec.show, rec.clear)
	n.SetDismissAfter(20 * time.Millisecond)

	n.Error("first")
	n.Success("second")

	shown, _ := rec.snapshot()
	if len(shown) != 2 {
		t.Fatalf("shown %d messages, want 2", len(shown))
	}
	if shown[0].Kind != KindError || shown[1].Kind != KindSuccess {
		t.Errorf("kinds = %v, %v", shown[0].Kind, shown[1].Kind)
	}

	// Only the second message's timer may clear; the superseded first timer
	// was cancelled. Wait well past both deadlines.
	time.Sleep(100 * time.Millisecond)
	if _, cleared := rec.snapshot(); cleared != 1 {
		t.Errorf("cleared %d times, want exactly 1", cleared)
	}
}

func TestNotifierNilCallbacks(t *testing.T) {
	n := NewNotifier(nil, nil)
	n.SetDismissAfter(5 * time.Millisecond)
	n.Success("no panic")
	n.Error("still no panic")
	time.Sleep(20 * time.Millisecond)
}

func TestKindString(t *testing.T) {
	if KindSuccess.String() != "success" || KindError.String() != "error" {
		t.Errorf("got %q and %q", KindSuccess, KindError)
	}
}
