// File: /realtime/hub.go
package realtime

import (
	"sync"

	"livewall-api/models"
)

// Buffer per subscriber. When it fills up the subscriber starts losing
// events; it can always resynchronize through a query.
const subscriberBuffer = 32

// Hub is the in-process broadcast channel: one event in, fan-out to every
// subscriber connected right now. No backlog is kept, so an observer that
// connects after a publish never sees it.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
}

// Subscriber is one connected observer's view of the hub.
type Subscriber struct {
	hub    *Hub
	events chan models.Event
	once   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a new observer. The caller must Close it when the
// connection goes away.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		hub:    h,
		events: make(chan models.Event, subscriberBuffer),
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Publish delivers the event to every current subscriber without ever
// blocking: a subscriber whose buffer is full drops this event instead of
// delaying the mutation that produced it.
func (h *Hub) Publish(event models.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers {
		select {
		case sub.events <- event:
		default:
			// Slow consumer, drop.
		}
	}
}

// SubscriberCount reports how many observers are currently connected.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Events is the subscriber's receive side. It is closed by Close.
func (s *Subscriber) Events() <-chan models.Event {
	return s.events
}

// Close detaches the subscriber from the hub and closes its channel.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subscribers, s)
		s.hub.mu.Unlock()
		close(s.events)
	})
}
