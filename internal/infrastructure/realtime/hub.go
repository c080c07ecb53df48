package realtime

import "sync"

// Hub is an in-process change-notification fan-out. Writers publish the
// topic of a day bucket after every successful mutation; watchers receive a
// signal and re-read the bucket themselves, so every observer sees whole
// snapshots rather than incremental patches.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan struct{}
}

// Handle identifies one active subscription and releases it on Cancel.
type Handle struct {
	hub   *Hub
	topic string
	id    int
	ch    chan struct{}
}

// Topic builds the hub topic for one (userID, dateKey) day bucket.
func Topic(userID, dateKey string) string {
	return userID + "/" + dateKey
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{subs: make(map[string]map[int]chan struct{})}
}

// Subscribe registers a watcher on topic and returns its handle. The
// returned channel carries at most one pending signal; a publish that finds
// the signal still pending is coalesced with it.
func (h *Hub) Subscribe(topic string) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	ch := make(chan struct{}, 1)
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]chan struct{})
	}
	h.subs[topic][h.nextID] = ch
	return &Handle{hub: h, topic: topic, id: h.nextID, ch: ch}
}

// Publish signals every watcher of topic. Non-blocking for the publisher.
func (h *Hub) Publish(topic string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
			// signal already pending, coalesce
		}
	}
}

// C returns the signal channel of the subscription. It is closed by Cancel.
func (s *Handle) C() <-chan struct{} {
	return s.ch
}

// Cancel releases the subscription and closes its channel. Safe to call once.
func (s *Handle) Cancel() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if watchers, ok := s.hub.subs[s.topic]; ok {
		if _, live := watchers[s.id]; live {
			delete(watchers, s.id)
			close(s.ch)
			if len(watchers) == 0 {
				delete(s.hub.subs, s.topic)
			}
		}
	}
}
