package wardrobe

import (
	"sync"

	"github.com/erazemk/garderoba/internal/model"
)

// Notification kinds.
const (
	EventChanged    = "changed"
	EventUnknownTag = "unknown_tag"
)

// Notification is fanned out to subscribers after mutations. A changed
// notification carries no payload; consumers re-read the wardrobe.
// Unknown-tag notifications identify the tag and the scanning location.
type Notification struct {
	Type        string            `json:"type"`
	TagID       string            `json:"tag_id,omitempty"`
	ScannerRole model.ScannerRole `json:"scanner_role,omitempty"`
}

// Notifier fans notifications out to subscribers. Delivery is
// best-effort: a subscriber that is not draining its channel misses
// notifications rather than blocking the mutation path.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan Notification]struct{}
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: map[chan Notification]struct{}{}}
}

// Subscribe registers a new subscriber channel.
func (n *Notifier) Subscribe() chan Notification {
	ch := make(chan Notification, 16)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (n *Notifier) Unsubscribe(ch chan Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.subs[ch]; ok {
		delete(n.subs, ch)
		close(ch)
	}
}

// Publish delivers a notification to every subscriber without blocking.
func (n *Notifier) Publish(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- note:
		default:
		}
	}
}
