package store

import (
	"context"
	"fmt"

	"github.com/roach88/yakstack/internal/frame"
)

// Append validates the request, inserts its content into the CAS, writes the
// frame to the log, and delivers it to live listeners before returning.
// Returns the assigned frame ID.
//
// Appending succeeds or fails as a unit with respect to the log: a CAS insert
// with a failed frame insert leaves an orphaned blob, which is harmless
// (content-addressed rows are shared and idempotent).
func (s *Store) Append(ctx context.Context, req frame.AppendRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("append: %w", err)
	}

	hash := ""
	if req.Content != "" {
		h, err := s.casInsert(ctx, []byte(req.Content))
		if err != nil {
			return "", fmt.Errorf("append: insert content: %w", err)
		}
		hash = h
	}

	metaJSON, err := frame.MarshalMeta(req.Meta)
	if err != nil {
		return "", fmt.Errorf("append: marshal meta: %w", err)
	}

	// Insert and deliver under the same critical section so listeners
	// observe frames in exactly log order.
	s.mu.Lock()
	defer s.mu.Unlock()

	f := frame.Frame{
		ID:        s.gen.NewID(),
		Topic:     req.Topic,
		ContextID: frame.ZeroContext,
		Hash:      hash,
		Meta:      req.Meta,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO frames (id, topic, context_id, hash, meta)
		VALUES (?, ?, ?, ?, ?)
	`, f.ID, f.Topic, f.ContextID, nullable(f.Hash), nullable(metaJSON))
	if err != nil {
		return "", fmt.Errorf("append: write frame: %w", err)
	}

	if s.live {
		s.deliverLocked(f)
	}

	s.logger.Debug("frame appended", "id", f.ID, "topic", f.Topic, "hash", f.Hash)
	return f.ID, nil
}

// EnsureDefaultYak appends a yak.create frame when the log contains none.
// Called once at startup so a fresh database opens onto a usable yak.
// Returns the new frame ID, or "" when a yak already exists.
func (s *Store) EnsureDefaultYak(ctx context.Context) (string, error) {
	ok, err := s.hasTopic(ctx, frame.TopicYakCreate)
	if err != nil {
		return "", err
	}
	if ok {
		return "", nil
	}

	s.logger.Info("no yak found, creating default yak")
	return s.Append(ctx, frame.AppendRequest{Topic: frame.TopicYakCreate})
}

// nullable maps "" to NULL so optional columns don't store empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
