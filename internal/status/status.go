// Package status provides transient, auto-dismissing user notifications.
package status

import (
	"sync"
	"time"
)

// DismissAfter is how long a message stays visible.
const DismissAfter = time.Second

// Kind distinguishes success from error messages.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Message is one transient notification.
type Message struct {
	Kind Kind
	Text string
}

// Notifier dispatches transient messages to a display callback and clears
// them after DismissAfter. Posting a new message cancels the previous
// message's pending dismissal, so a stale timer never clears a newer
// message.
type Notifier struct {
	mu      sync.Mutex
	show    func(Message)
	clear   func()
	timer   *time.Timer
	gen     uint64
	dismiss time.Duration
}

// NewNotifier creates a notifier with the given display callbacks. Either
// callback may be nil. Callbacks run on the goroutine that posts the
// message; clear runs on the timer goroutine.
func NewNotifier(show func(Message), clear func()) *Notifier {
	return &Notifier{
		show:    show,
		clear:   clear,
		dismiss: DismissAfter,
	}
}

// SetDismissAfter overrides the dismissal interval. Intended for tests.
func (n *Notifier) SetDismissAfter(d time.Duration) {
	n.mu.Lock()
	n.dismiss = d
	n.mu.Unlock()
}

// Success posts a success message.
func (n *Notifier) Success(text string) {
	n.post(Message{Kind: KindSuccess, Text: text})
}

// Error posts an error message.
func (n *Notifier) Error(text string) {
	n.post(Message{Kind: KindError, Text: text})
}

func (n *Notifier) post(msg Message) {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	// A stopped timer may already have fired; the generation check below
	// keeps that dismissal from clearing this message.
	n.timer = time.AfterFunc(n.dismiss, func() {
		n.dismissIfCurrent(gen)
	})
	show := n.show
	n.mu.Unlock()

	if show != nil {
		show(msg)
	}
}

func (n *Notifier) dismissIfCurrent(gen uint64) {
	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return
	}
	n.timer = nil
	clear := n.clear
	n.mu.Unlock()

	if clear != nil {
		clear()
	}
}
