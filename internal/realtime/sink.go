// Package realtime defines the presence sink contract used for push delivery.
// Delivery is best effort: a sink may drop an event (no session, no token) and
// callers must never treat that as a failure of the triggering write.
package realtime

import (
	"context"
	"sync"
)

// Sink pushes an event at a target user. Ordering across recipients is not
// guaranteed and neither is delivery.
type Sink interface {
	Push(ctx context.Context, targetUserID uint, event string, payload any) error
}

// MultiSink fans one push out to several sinks. The last error wins; partial
// delivery is acceptable by contract.
type MultiSink []Sink

func (m MultiSink) Push(ctx context.Context, targetUserID uint, event string, payload any) error {
	var last error
	for _, s := range m {
		if err := s.Push(ctx, targetUserID, event, payload); err != nil {
			last = err
		}
	}
	return last
}

// PushedEvent is one recorded push, kept by MemorySink for assertions.
type PushedEvent struct {
	TargetUserID uint
	Event        string
	Payload      any
}

// MemorySink records pushes in memory. Used in tests and as a harmless
// default when no transport is configured.
type MemorySink struct {
	mu     sync.Mutex
	events []PushedEvent
	// Fail, when set, is returned from every Push.
	Fail error
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Push(_ context.Context, targetUserID uint, event string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	s.events = append(s.events, PushedEvent{TargetUserID: targetUserID, Event: event, Payload: payload})
	return nil
}

// Events returns a copy of everything pushed so far.
func (s *MemorySink) Events() []PushedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PushedEvent, len(s.events))
	copy(out, s.events)
	return out
}

// EventsFor returns the recorded pushes aimed at one user.
func (s *MemorySink) EventsFor(userID uint) []PushedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []PushedEvent
	for _, e := range s.events {
		if e.TargetUserID == userID {
			out = append(out, e)
		}
	}
	return out
}
