// Package notify broadcasts best-effort "projects changed" signals to
// listening clients so they can refresh their views.
package notify

import (
	"context"
	"time"
)

// EventProjectsChanged is the only event type emitted today.
const EventProjectsChanged = "projects.changed"

// Event is what listeners receive. It carries no project data.
type Event struct {
	Type  string    `json:"type"`
	Scope string    `json:"scope"`
	At    time.Time `json:"at"`
}

// Notifier is fire-and-forget: implementations must not block on delivery
// and have no way to report failure to the caller.
type Notifier interface {
	NotifyChanged(ctx context.Context, scope string)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) NotifyChanged(context.Context, string) {}

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

func (m Multi) NotifyChanged(ctx context.Context, scope string) {
	for _, n := range m {
		if n != nil {
			n.NotifyChanged(ctx, scope)
		}
	}
}

var (
	_ Notifier = Nop{}
	_ Notifier = Multi(nil)
)
