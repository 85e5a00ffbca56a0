package report

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription is one viewer's notification channel.
type Subscription struct {
	ID string

	ch   chan Event
	reg  *Registry
	once sync.Once
}

// C returns the channel notifications arrive on. It is closed when the
// subscription is removed from its registry.
func (s *Subscription) C() <-chan Event { return s.ch }

// Close removes the subscription from its registry. Safe to call more than
// once and after the registry itself has been closed.
func (s *Subscription) Close() {
	s.reg.Remove(s.ID)
}

func (s *Subscription) closeChannel() {
	s.once.Do(func() { close(s.ch) })
}

// Registry is the ordered set of live subscriptions.
type Registry struct {
	mu       sync.Mutex
	subs     []*Subscription
	buffer   int
	onChange func(n int)
}

// NewRegistry creates a Registry whose subscriptions buffer up to buffer
// events. A buffer of 1 coalesces bursts: notifications are content-free,
// so one pending event already tells the viewer to re-fetch.
// onChange, if non-nil, is called with the new size after every change,
// while the registry lock is held. It must not call back into the registry.
func NewRegistry(buffer int, onChange func(n int)) *Registry {
	if buffer < 1 {
		buffer = 1
	}
	return &Registry{buffer: buffer, onChange: onChange}
}

// Add registers a new subscription at the end of the registry.
func (r *Registry) Add() *Subscription {
	sub := &Subscription{
		ID:  uuid.New().String(),
		ch:  make(chan Event, r.buffer),
		reg: r,
	}
	r.mu.Lock()
	r.subs = append(r.subs, sub)
	r.changed(len(r.subs))
	r.mu.Unlock()
	return sub
}

// Remove unregisters and closes the subscription with the given id. It
// reports whether the id was registered; removing twice is not an error.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	idx := -1
	for i, s := range r.subs {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return false
	}
	sub := r.subs[idx]
	r.subs = append(r.subs[:idx], r.subs[idx+1:]...)
	sub.closeChannel()
	r.changed(len(r.subs))
	r.mu.Unlock()
	return true
}

// Broadcast offers ev to every subscription without blocking. It returns
// how many subscriptions received it and how many already had an event
// pending and so coalesced it.
func (r *Registry) Broadcast(ev Event) (delivered, coalesced int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		select {
		case s.ch <- ev:
			delivered++
		default:
			coalesced++
		}
	}
	return delivered, coalesced
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// IDs returns subscription ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.subs))
	for i, s := range r.subs {
		ids[i] = s.ID
	}
	return ids
}

// CloseAll removes and closes every subscription.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	subs := r.subs
	r.subs = nil
	for _, s := range subs {
		s.closeChannel()
	}
	if len(subs) > 0 {
		r.changed(0)
	}
	r.mu.Unlock()
}

func (r *Registry) changed(n int) {
	if r.onChange != nil {
		r.onChange(n)
	}
}
