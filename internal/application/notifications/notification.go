// Package notifications records the notifications raised by comment activity
// and keeps them in a per-process inbox.
package notifications

import (
	"context"
	"time"
)

// Kind is the subscription channel a notification belongs to.
type Kind string

const (
	KindCoordinator Kind = "coordinator"
	KindContributor Kind = "contributor"
)

// Notification is a single record. Delivery and display belong to the caller.
type Notification struct {
	ID          string    `json:"id" yaml:"id"`
	Kind        Kind      `json:"type" yaml:"type"`
	Title       string    `json:"title" yaml:"title"`
	Message     string    `json:"message" yaml:"message"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	RecipientID string    `json:"recipientId,omitempty" yaml:"recipientId"`
	Read        bool      `json:"read" yaml:"read"`
}

// Notifier accepts notification records.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}
