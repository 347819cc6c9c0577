package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrContentNotFound is returned by Content for hashes absent from the CAS.
var ErrContentNotFound = errors.New("content not found")

// HashContent returns the hex-encoded SHA-256 digest of data.
// This is the CAS key: same content always produces the same hash.
func HashContent(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// casInsert stores content under its own digest.
// INSERT OR IGNORE makes re-inserting existing content a no-op, which is
// exactly the content-addressing contract.
func (s *Store) casInsert(ctx context.Context, data []byte) (string, error) {
	hash := HashContent(data)
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO cas (hash, content) VALUES (?, ?)
	`, hash, data)
	if err != nil {
		return "", fmt.Errorf("cas insert: %w", err)
	}
	return hash, nil
}

// Content fetches CAS content by hash.
// Returns ErrContentNotFound when the hash is unknown.
func (s *Store) Content(ctx context.Context, hash string) (string, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT content FROM cas WHERE hash = ?
	`, hash).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("cas read %q: %w", hash, ErrContentNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("cas read %q: %w", hash, err)
	}
	return string(data), nil
}
