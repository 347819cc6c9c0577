package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViews_GatedBeforeThreshold(t *testing.T) {
	e, _ := newTestEngine(t)

	// Data exists, but the latch is down: everything reports not-ready.
	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("note-1", "yak-1", ""))
	e.SetSelectedNoteID("note-1")

	_, ready := e.CurrentYak()
	assert.False(t, ready)
	_, ready = e.CurrentNotes()
	assert.False(t, ready)
	_, ready = e.SelectedNote()
	assert.False(t, ready)

	// After the latch, the accumulated state is visible.
	e.apply(threshold("t-1"))

	y, ready := e.CurrentYak()
	require.True(t, ready)
	require.NotNil(t, y)
	assert.Equal(t, "yak-1", y.ID)

	notes, ready := e.CurrentNotes()
	require.True(t, ready)
	require.Len(t, notes, 1)
	assert.Equal(t, "note-1", notes[0].ID)

	n, ready := e.SelectedNote()
	require.True(t, ready)
	require.NotNil(t, n)
	assert.Equal(t, "note-1", n.ID)
}

func TestViews_ReadyButEmptyIsDistinct(t *testing.T) {
	e, _ := newTestEngine(t)
	e.apply(threshold("t-1"))

	y, ready := e.CurrentYak()
	assert.True(t, ready)
	assert.Nil(t, y)

	notes, ready := e.CurrentNotes()
	assert.True(t, ready)
	assert.Empty(t, notes)

	n, ready := e.SelectedNote()
	assert.True(t, ready)
	assert.Nil(t, n)
}

func TestViews_DanglingIDsReadAsNil(t *testing.T) {
	e, _ := newTestEngine(t)
	e.apply(threshold("t-1"))

	e.SetCurrentYakID("ghost-yak")
	e.SetSelectedNoteID("ghost-note")

	y, ready := e.CurrentYak()
	assert.True(t, ready)
	assert.Nil(t, y)

	n, ready := e.SelectedNote()
	assert.True(t, ready)
	assert.Nil(t, n)
}

func TestViews_NotesInIndexOrder(t *testing.T) {
	e, _ := newTestEngine(t)

	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("n1", "yak-1", ""))
	e.apply(noteCreate("n2", "yak-1", ""))
	e.apply(noteEdit("n3", "yak-1", "n1", ""))
	e.apply(threshold("t-1"))

	notes, ready := e.CurrentNotes()
	require.True(t, ready)
	require.Len(t, notes, 2)
	// Index order, not timestamp order: the edit kept slot 0.
	assert.Equal(t, "n3", notes[0].ID)
	assert.Equal(t, "n2", notes[1].ID)
}

func TestViews_SkipMissingIndexEntries(t *testing.T) {
	e, _ := newTestEngine(t)
	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("n1", "yak-1", ""))
	e.apply(threshold("t-1"))

	// Force an index hole; views must skip it rather than panic or
	// surface a zero note.
	e.mu.Lock()
	e.st.index["yak-1"] = append(e.st.index["yak-1"], "missing")
	e.st.bump()
	e.mu.Unlock()

	notes, ready := e.CurrentNotes()
	require.True(t, ready)
	require.Len(t, notes, 1)
	assert.Equal(t, "n1", notes[0].ID)
}

func TestViews_MemoizedUntilStateChanges(t *testing.T) {
	e, _ := newTestEngine(t)
	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("n1", "yak-1", ""))
	e.apply(threshold("t-1"))

	_, _ = e.CurrentNotes()
	e.mu.Lock()
	cachedAt := e.views.version
	e.mu.Unlock()

	// Reads without intervening writes reuse the cached projection.
	_, _ = e.CurrentNotes()
	_, _ = e.CurrentYak()
	e.mu.Lock()
	assert.Equal(t, cachedAt, e.views.version)
	assert.True(t, e.views.valid)
	e.mu.Unlock()

	// A write invalidates, the next read recomputes.
	e.apply(noteCreate("n2", "yak-1", ""))
	notes, _ := e.CurrentNotes()
	assert.Len(t, notes, 2)
	e.mu.Lock()
	assert.Greater(t, e.views.version, cachedAt)
	e.mu.Unlock()
}

func TestViews_ReturnedSlicesAreCopies(t *testing.T) {
	e, _ := newTestEngine(t)
	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("n1", "yak-1", ""))
	e.apply(threshold("t-1"))

	notes, _ := e.CurrentNotes()
	notes[0].Title = "tampered"

	fresh, _ := e.CurrentNotes()
	assert.Equal(t, "loading", fresh[0].Title)
}
