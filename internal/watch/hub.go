// Package watch implements the live-snapshot hub behind subscription
// endpoints. Every topic carries full snapshots, not deltas: a subscriber
// that falls behind loses intermediate snapshots but always sees the
// newest one.
package watch

import "sync"

// Hub fans snapshots out to topic subscribers. Safe for concurrent use.
type Hub[T any] struct {
	mu     sync.Mutex
	nextID int
	topics map[string]map[int]chan T
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		topics: make(map[string]map[int]chan T),
	}
}

// Subscribe registers a subscriber on the topic. The returned cancel
// function must be called when the consumer goes away; it closes the
// channel and releases the subscription.
func (h *Hub[T]) Subscribe(topic string) (<-chan T, func()) {
	ch := make(chan T, 1)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[int]chan T)
		h.topics[topic] = subs
	}
	subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs, ok := h.topics[topic]
		if !ok {
			return
		}
		if sub, ok := subs[id]; ok {
			delete(subs, id)
			close(sub)
		}
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}

	return ch, cancel
}

// Publish delivers the snapshot to every subscriber on the topic without
// blocking. A subscriber whose buffer is full has its stale snapshot
// replaced by the new one.
func (h *Hub[T]) Publish(topic string, snap T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.topics[topic] {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// Subscribers reports the current subscriber count for a topic.
func (h *Hub[T]) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}
