package engine

import (
	"context"
	"fmt"

	"github.com/roach88/yakstack/internal/frame"
)

// SetCurrentYakID reassigns the current yak. "" means none.
// The id is not required to exist yet; views degrade gracefully until its
// creation frame arrives.
func (e *Engine) SetCurrentYakID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.currentYakID = id
	e.st.bump()
}

// SetSelectedNoteID reassigns the selection. "" means none.
// Internal reassignment happens only through the edit-id-swap rule in
// applyNoteEdit.
func (e *Engine) SetSelectedNoteID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.selectedNoteID = id
	e.st.bump()
}

// CreateNote appends a note.create request for the current yak and returns
// the assigned frame id once the transport acknowledges the append.
//
// No local state is applied here: the note materializes only when its own
// frame is observed through the ingestion path.
//
// With no current yak this is a no-op: no event is appended and "" is
// returned without error.
func (e *Engine) CreateNote(ctx context.Context, content string) (string, error) {
	e.mu.RLock()
	yakID := e.st.currentYakID
	e.mu.RUnlock()

	if yakID == "" {
		return "", nil
	}

	id, err := e.stream.Append(ctx, frame.AppendRequest{
		Topic:   frame.TopicNoteCreate,
		Content: content,
		Meta:    &frame.Meta{ContainerID: yakID},
	})
	if err != nil {
		return "", fmt.Errorf("create note: %w", err)
	}
	return id, nil
}

// EditNote appends a note.edit request superseding noteID, with the same
// decoupled-materialization rule as CreateNote.
//
// An unknown noteID is a no-op: no event, no error, "" returned.
func (e *Engine) EditNote(ctx context.Context, noteID, content string) (string, error) {
	e.mu.RLock()
	n, ok := e.st.notes[noteID]
	e.mu.RUnlock()

	if !ok {
		return "", nil
	}

	id, err := e.stream.Append(ctx, frame.AppendRequest{
		Topic:   frame.TopicNoteEdit,
		Content: content,
		Meta: &frame.Meta{
			ContainerID:    n.YakID,
			OriginalNoteID: noteID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("edit note %s: %w", noteID, err)
	}
	return id, nil
}
