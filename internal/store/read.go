package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/yakstack/internal/frame"
)

// Frames returns every persisted frame in log order.
func (s *Store) Frames(ctx context.Context) ([]frame.Frame, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topic, context_id, hash, meta
		FROM frames
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}
	defer rows.Close()

	var frames []frame.Frame
	for rows.Next() {
		f, err := scanFrame(rows)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}
	return frames, nil
}

// hasTopic reports whether any frame with the given topic exists.
func (s *Store) hasTopic(ctx context.Context, topic string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM frames WHERE topic = ? LIMIT 1
	`, topic).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has topic %q: %w", topic, err)
	}
	return true, nil
}

func scanFrame(rows *sql.Rows) (frame.Frame, error) {
	var (
		f    frame.Frame
		hash sql.NullString
		meta sql.NullString
	)
	if err := rows.Scan(&f.ID, &f.Topic, &f.ContextID, &hash, &meta); err != nil {
		return frame.Frame{}, fmt.Errorf("scan frame: %w", err)
	}
	f.Hash = hash.String

	m, err := frame.UnmarshalMeta(meta.String)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("scan frame %s: unmarshal meta: %w", f.ID, err)
	}
	f.Meta = m
	return f, nil
}
