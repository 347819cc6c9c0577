package store

import (
	"context"
	"fmt"

	"github.com/roach88/yakstack/internal/frame"
)

// OnFrame registers a listener invoked once per frame in strict delivery
// order. The returned function unsubscribes; it is safe to call more than
// once. Register listeners before calling Subscribe or historical frames
// will be missed.
func (s *Store) OnFrame(fn func(frame.Frame)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subIDs = append(s.subIDs, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Subscribe begins historical-then-live delivery.
//
// Every persisted frame is delivered to registered listeners in log order,
// followed by a synthesized xs.threshold frame marking the replay boundary.
// The store then goes live: subsequent Appends deliver their frames inline.
//
// Frames appended while Subscribe is streaming are serialized behind it by
// the store mutex, so no frame is skipped or delivered twice.
func (s *Store) Subscribe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live {
		return fmt.Errorf("subscribe: already live")
	}

	// Frames reads through the same connection; the mutex only guards
	// listener state and ordering, not the database handle.
	frames, err := s.Frames(ctx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	count := 0
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("subscribe: %w", err)
		}
		s.deliverLocked(f)
		count++
	}

	s.deliverLocked(frame.Frame{
		ID:        s.gen.NewID(),
		Topic:     frame.TopicThreshold,
		ContextID: frame.ZeroContext,
	})
	s.live = true

	s.logger.Info("subscription live", "replayed", count)
	return nil
}

// deliverLocked fans a frame out to listeners in registration order.
// Caller holds s.mu.
func (s *Store) deliverLocked(f frame.Frame) {
	for _, id := range s.subIDs {
		if fn, ok := s.subs[id]; ok {
			fn(f)
		}
	}
}
