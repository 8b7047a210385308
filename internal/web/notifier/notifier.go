// Package notifier fans out refresh signals to dashboard SSE streams.
package notifier

import (
	"sync"
	"time"
)

// Notifier broadcasts refresh signals to subscribed streams. Each signal
// carries the time the change was observed. A slow listener holds at
// most one pending signal and catches up on its next read.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan time.Time]struct{}
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{listeners: make(map[chan time.Time]struct{})}
}

// Subscribe registers a listener. The caller must Unsubscribe when done
// to release the channel.
func (n *Notifier) Subscribe() chan time.Time {
	ch := make(chan time.Time, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan time.Time) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast signals every listener without blocking. A listener with a
// signal already pending keeps the older one.
func (n *Notifier) Broadcast(at time.Time) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- at:
		default:
		}
	}
}

// Listeners reports the number of active subscriptions.
func (n *Notifier) Listeners() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
