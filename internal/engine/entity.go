package engine

import (
	"fmt"
	"time"

	"github.com/roach88/yakstack/internal/frame"
)

// Sentinel strings for notes whose content is not (or never will be)
// resolved. The loading title is replaced by the first content line on
// resolution success; the error pair is the degraded-but-visible state on
// resolution failure.
const (
	loadingTitle = "loading"
	errorContent = "Failed to load content"
	errorTitle   = "Error loading content"
)

// Yak is a top-level note container.
//
// Name and CreatedAt derive deterministically from the creating frame's ID.
// LastActivity advances whenever a note belonging to the yak is created or
// superseded.
type Yak struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Note is a content unit belonging to exactly one yak.
//
// Supersedes links to the note this one replaced via an edit: a forward-only,
// branch-free lineage. Superseded notes stay in the note map for lineage but
// leave the display index.
type Note struct {
	ID         string    `json:"id"`
	YakID      string    `json:"yak_id"`
	Content    string    `json:"content"`
	Title      string    `json:"title"`
	Hash       string    `json:"hash,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Supersedes string    `json:"supersedes,omitempty"`
}

// newYak materializes a yak from its creating frame.
func newYak(f frame.Frame) Yak {
	ts := frame.TimeOrZero(f.ID)
	return Yak{
		ID:           f.ID,
		Name:         yakName(ts),
		CreatedAt:    ts,
		LastActivity: ts,
	}
}

// yakName derives a display name from the frame clock. Same ID, same name.
func yakName(ts time.Time) string {
	return fmt.Sprintf("Yak %s", ts.UTC().Format("2006-01-02 15:04"))
}

// newNote materializes a note from a note.create or note.edit frame.
// Content starts empty with the loading title; resolution fills it in later
// when the frame carries a hash.
func newNote(f frame.Frame, supersedes string) Note {
	return Note{
		ID:         f.ID,
		YakID:      f.Meta.ContainerID,
		Content:    "",
		Title:      loadingTitle,
		Hash:       f.Hash,
		CreatedAt:  frame.TimeOrZero(f.ID),
		Supersedes: supersedes,
	}
}
