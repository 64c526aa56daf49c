package notify

import (
	"context"
	"sync"
	"time"
)

// HubMetrics receives subscriber and delivery counts from a Hub.
type HubMetrics interface {
	SetSubscribers(n int)
	EventDelivered()
	EventDropped()
}

// Hub is an in-process fan-out to currently connected listeners.
//
// Each subscription owns a one-slot buffer. When a listener has not yet
// drained its previous event the new one is dropped; since events carry no
// payload the pending one already tells the client to refresh.
type Hub struct {
	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	closed  bool
	metrics HubMetrics
	now     func() time.Time
}

type HubOption func(*Hub)

func WithHubMetrics(m HubMetrics) HubOption {
	return func(h *Hub) {
		h.metrics = m
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subs: make(map[*Subscription]struct{}),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscription is one listener registered with a Hub.
type Subscription struct {
	hub   *Hub
	scope string
	ch    chan Event
}

// Events yields notifications until the subscription or the hub is closed.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close detaches the listener. It is safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// Subscribe registers a listener for scope. An empty scope receives every event.
func (h *Hub) Subscribe(scope string) *Subscription {
	sub := &Subscription{
		hub:   h,
		scope: scope,
		ch:    make(chan Event, 1),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	h.reportSubscribers()
	return sub
}

// Subscribers returns the number of attached listeners.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) NotifyChanged(_ context.Context, scope string) {
	ev := Event{Type: EventProjectsChanged, Scope: scope, At: h.now().UTC()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if sub.scope != "" && sub.scope != scope {
			continue
		}
		select {
		case sub.ch <- ev:
			if h.metrics != nil {
				h.metrics.EventDelivered()
			}
		default:
			if h.metrics != nil {
				h.metrics.EventDropped()
			}
		}
	}
}

// Close detaches every listener and closes their channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.reportSubscribers()
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
	h.reportSubscribers()
}

// callers hold h.mu
func (h *Hub) reportSubscribers() {
	if h.metrics != nil {
		h.metrics.SetSubscribers(len(h.subs))
	}
}

var _ Notifier = (*Hub)(nil)
