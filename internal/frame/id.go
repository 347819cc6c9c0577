package frame

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces frame identifiers.
// Implemented by UUIDv7Generator (production) and testutil generators (tests).
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator generates time-sortable UUIDv7 frame IDs.
//
// UUIDv7 embeds a millisecond timestamp in the most significant bits, so IDs
// sort in creation order and carry their own clock. Entities derive their
// timestamps from the ID rather than from a separate wall-clock read.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// NewID returns a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// IDTime extracts the clock embedded in a UUIDv7 frame ID.
// Returns an error for non-UUID or non-v7 identifiers; callers that accept
// synthetic test IDs should treat the error as "no embedded clock".
func IDTime(id string) (time.Time, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse frame id: %w", err)
	}
	if u.Version() != 7 {
		return time.Time{}, fmt.Errorf("frame id %q is not a UUIDv7", id)
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec).UTC(), nil
}

// TimeOrZero is IDTime with errors collapsed to the zero time.
// Used when materializing entities from frames whose IDs may be synthetic.
func TimeOrZero(id string) time.Time {
	t, err := IDTime(id)
	if err != nil {
		return time.Time{}
	}
	return t
}
