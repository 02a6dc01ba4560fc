package session

import (
	"context"
	"log"
	"sync"
)

// listener pairs a subscriber callback with its registration order.
type listener struct {
	id uint64
	fn func(Session)
}

// Store owns the single current [Session] and notifies subscribers of every
// transition.
//
// Store methods are safe for concurrent use. Notification is synchronous:
// Set does not return until every subscriber has observed the transition, in
// subscription order. Subscribers must not call back into the store from
// their callback.
type Store struct {
	storage    Storage
	tokenCheck func(token string) error

	mu        sync.Mutex
	current   Session
	listeners []listener
	nextID    uint64
}

// NewStore creates a [Store] resting in the anonymous session. tokenCheck,
// when non-nil, vets the persisted token during [Store.Restore]; a nil check
// accepts every token.
func NewStore(storage Storage, tokenCheck func(token string) error) *Store {
	return &Store{
		storage:    storage,
		tokenCheck: tokenCheck,
		current:    Anonymous(),
	}
}

// Current returns a snapshot of the current session. Mutating the returned
// value does not affect the store.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// Subscribe registers fn to receive every subsequent transition and returns
// the matching unsubscribe function. Unsubscribing twice is harmless.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Set replaces the current session and delivers the new value to every
// subscriber, in subscription order, before returning. Each subscriber
// receives its own copy.
func (s *Store) Set(next Session) {
	s.mu.Lock()
	s.current = next.clone()
	delivery := make([]listener, len(s.listeners))
	copy(delivery, s.listeners)
	s.mu.Unlock()

	for _, l := range delivery {
		l.fn(next.clone())
	}
}

// Restore rehydrates the session from persistent storage at startup.
//
// The store passes through [StatusAuthenticating] while the record is read
// so that subscribers can render a pending state. Any failure — backend
// outage, corrupt record, stale token — degrades to the anonymous session;
// Restore never reports an error.
func (s *Store) Restore(ctx context.Context) Session {
	s.Set(Session{Role: Anonymous().Role, Status: StatusAuthenticating})

	data, err := s.storage.Load(ctx)
	if err != nil || data == nil {
		if err != nil {
			log.Print("legendsauth: session restore load failed: ", err)
		}
		anon := Anonymous()
		s.Set(anon)
		return anon
	}

	restored, err := Decode(data)
	if err != nil {
		log.Print("legendsauth: discarding persisted session: ", err)
		s.discard(ctx)
		anon := Anonymous()
		s.Set(anon)
		return anon
	}

	if s.tokenCheck != nil {
		if err := s.tokenCheck(restored.Token); err != nil {
			log.Print("legendsauth: discarding persisted session: ", err)
			s.discard(ctx)
			anon := Anonymous()
			s.Set(anon)
			return anon
		}
	}

	s.Set(restored)
	return restored
}

// Persist writes the current form of sess to storage.
func (s *Store) Persist(ctx context.Context, sess Session) error {
	data, err := Encode(sess)
	if err != nil {
		return err
	}
	return s.storage.Save(ctx, data)
}

// Clear removes the persisted record. The in-memory session is untouched;
// callers transition it separately via [Store.Set].
func (s *Store) Clear(ctx context.Context) error {
	return s.storage.Delete(ctx)
}

// discard removes an unusable persisted record so the next restore does not
// retry it. Best effort.
func (s *Store) discard(ctx context.Context) {
	if err := s.storage.Delete(ctx); err != nil {
		log.Print("legendsauth: failed to delete stale session record: ", err)
	}
}
