package view

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Kind styles a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// notificationTTL is how long a message stays visible before auto-dismissal.
const notificationTTL = 3 * time.Second

// Notification is one transient user-facing message.
type Notification struct {
	Text    string
	Kind    Kind
	shownAt time.Time
}

// Notifier shows transient, auto-dismissing messages. Only the most recent
// message is visible at a time.
type Notifier struct {
	mu      sync.Mutex
	out     io.Writer
	ttl     time.Duration
	now     func() time.Time
	current *Notification
}

// NewNotifier returns a Notifier writing to out.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out, ttl: notificationTTL, now: time.Now}
}

// Show displays a message, replacing any previous one.
func (n *Notifier) Show(text string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = &Notification{Text: text, Kind: kind, shownAt: n.now()}
	prefix := "OK"
	if kind == KindError {
		prefix = "ERROR"
	}
	fmt.Fprintf(n.out, "[%s] %s\n", prefix, text)
}

// Current returns the visible notification, or nil once it has expired.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil || n.now().Sub(n.current.shownAt) > n.ttl {
		return nil
	}
	return n.current
}
