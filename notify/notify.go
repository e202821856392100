// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"sync"

	"github.com/danielhkuo/pulsepoll/models"
)

// subscriberBuffer is each subscription's channel capacity. A publish that
// finds the buffer full drops the event for that subscriber; the client
// re-fetches poll state when it cares about catch-up.
const subscriberBuffer = 16

// Hub fans accepted-vote updates out to subscribers keyed by poll ID.
// Delivery is best effort and at most once: no persistence, no replay.
// Updates for one poll reach each subscriber in publish order.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*Subscription]struct{})}
}

// Subscription is one listener on one poll's updates. Close it when done;
// the updates channel is closed by Close and never by the hub.
type Subscription struct {
	hub    *Hub
	pollID string
	ch     chan models.TallyUpdate
	closed bool
}

// Subscribe registers a listener for a poll's tally updates. The poll does
// not need to exist; a subscription to an unknown ID simply never fires.
func (h *Hub) Subscribe(pollID string) *Subscription {
	sub := &Subscription{
		hub:    h,
		pollID: pollID,
		ch:     make(chan models.TallyUpdate, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[pollID]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[pollID] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

// Updates returns the channel tally updates arrive on. It is closed when
// the subscription is closed.
func (s *Subscription) Updates() <-chan models.TallyUpdate {
	return s.ch
}

// Close unregisters the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	if subs, ok := s.hub.topics[s.pollID]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(s.hub.topics, s.pollID)
		}
	}
	close(s.ch)
}

// Publish delivers an update to every current subscriber of the poll.
// It never blocks: a subscriber whose buffer is full misses this event.
func (h *Hub) Publish(pollID string, update models.TallyUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.topics[pollID] {
		select {
		case sub.ch <- update:
		default:
			// Slow subscriber; drop rather than stall the vote path.
		}
	}
}

// Subscribers reports the number of active subscriptions for a poll.
func (h *Hub) Subscribers(pollID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[pollID])
}
