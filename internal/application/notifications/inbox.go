package notifications

import (
	"context"
	"sync"
)

// Inbox keeps notifications newest first, filtered by kind subscription.
type Inbox struct {
	mu            sync.RWMutex
	items         []Notification
	subscriptions map[Kind]bool
}

// NewInbox creates an inbox subscribed to every kind.
func NewInbox() *Inbox {
	return &Inbox{
		subscriptions: map[Kind]bool{
			KindCoordinator: true,
			KindContributor: true,
		},
	}
}

// Notify prepends n.
func (i *Inbox) Notify(_ context.Context, n Notification) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append([]Notification{n}, i.items...)
	return nil
}

// Seed appends startup notifications behind anything already present,
// keeping their given order.
func (i *Inbox) Seed(list []Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append(i.items, list...)
}

// List returns the notifications of subscribed kinds, newest first. A
// non-empty recipient also keeps records addressed to nobody in particular.
func (i *Inbox) List(recipientID string) []Notification {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]Notification, 0, len(i.items))
	for _, n := range i.items {
		if !i.subscriptions[n.Kind] {
			continue
		}
		if recipientID != "" && n.RecipientID != "" && n.RecipientID != recipientID {
			continue
		}
		out = append(out, n)
	}
	return out
}

// UnreadCount counts unread notifications visible to the recipient.
func (i *Inbox) UnreadCount(recipientID string) int {
	count := 0
	for _, n := range i.List(recipientID) {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead flags the notification as read. It reports whether id exists.
func (i *Inbox) MarkRead(id string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	for idx := range i.items {
		if i.items[idx].ID == id {
			i.items[idx].Read = true
			return true
		}
	}
	return false
}

// ToggleSubscription flips the subscription for kind and returns the new value.
func (i *Inbox) ToggleSubscription(kind Kind) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.subscriptions[kind] = !i.subscriptions[kind]
	return i.subscriptions[kind]
}

// Subscribed reports whether kind is shown.
func (i *Inbox) Subscribed(kind Kind) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.subscriptions[kind]
}

var _ Notifier = (*Inbox)(nil)
