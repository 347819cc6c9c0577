package harness

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/yakstack/internal/engine"
	"github.com/roach88/yakstack/internal/frame"
	"github.com/roach88/yakstack/internal/testutil"
)

const settleTimeout = 5 * time.Second

// Snapshot is the deterministic final-state rendering compared against
// golden files. Field order is the golden file's key order.
type Snapshot struct {
	Threshold      bool       `json:"threshold"`
	CurrentYakID   string     `json:"current_yak_id"`
	SelectedNoteID string     `json:"selected_note_id"`
	Yaks           []YakView  `json:"yaks"`
	Notes          []NoteView `json:"notes"`
	CurrentNotes   []string   `json:"current_notes"`
}

// YakView renders one yak and its display index.
type YakView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	NoteIDs []string `json:"note_ids"`
}

// NoteView renders one note. Indexed distinguishes display notes from
// superseded lineage records.
type NoteView struct {
	ID         string `json:"id"`
	YakID      string `json:"yak_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Supersedes string `json:"supersedes,omitempty"`
	Indexed    bool   `json:"indexed"`
}

// Run executes a scenario against a fresh in-memory engine and returns the
// final view snapshot. Frame IDs are "frame-001", "frame-002", ... in
// delivery order (the threshold frame consumes one).
func Run(t *testing.T, sc *Scenario) *Snapshot {
	t.Helper()

	stream := testutil.NewMemoryStream(testutil.NewSeqIDs("frame"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i, step := range sc.History {
		_, err := stream.Append(ctx, appendRequest(step.Append))
		require.NoError(t, err, "history[%d]", i)
	}

	e := engine.New(stream)
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	defer func() {
		cancel()
		select {
		case <-done:
		case <-time.After(settleTimeout):
			t.Error("engine did not stop")
		}
	}()

	settle(t, e, stream)

	for i, step := range sc.Live {
		runStep(t, ctx, e, stream, step, i)
		settle(t, e, stream)
	}

	e.Wait() // drain content resolutions
	return snapshot(e)
}

func runStep(t *testing.T, ctx context.Context, e *engine.Engine, stream *testutil.MemoryStream, step Step, i int) {
	t.Helper()

	switch {
	case step.Append != nil:
		_, err := stream.Append(ctx, appendRequest(step.Append))
		require.NoError(t, err, "live[%d]", i)
	case step.CreateNote != nil:
		_, err := e.CreateNote(ctx, *step.CreateNote)
		require.NoError(t, err, "live[%d]", i)
	case step.EditNote != nil:
		_, err := e.EditNote(ctx, step.EditNote.ID, step.EditNote.Content)
		require.NoError(t, err, "live[%d]", i)
	case step.SelectYak != nil:
		e.SetCurrentYakID(*step.SelectYak)
	case step.SelectNote != nil:
		e.SetSelectedNoteID(*step.SelectNote)
	}
}

func appendRequest(s *AppendStep) frame.AppendRequest {
	req := frame.AppendRequest{Topic: s.Topic, Content: s.Content}
	if s.Meta != nil {
		req.Meta = &frame.Meta{
			ContainerID:    s.Meta.ContainerID,
			OriginalNoteID: s.Meta.OriginalNoteID,
		}
	}
	return req
}

// settle waits until the engine has applied every stream frame plus the
// threshold. No-op steps (e.g. create_note with no current yak) append
// nothing, so the target is derived from the stream, not the step count.
func settle(t *testing.T, e *engine.Engine, stream *testutil.MemoryStream) {
	t.Helper()
	want := uint64(len(stream.Frames()) + 1)
	require.Eventually(t, func() bool { return e.Applied() >= want },
		settleTimeout, time.Millisecond, "engine did not settle at %d applied frames", want)
}

func snapshot(e *engine.Engine) *Snapshot {
	snap := &Snapshot{
		Threshold:      e.ThresholdReached(),
		CurrentYakID:   e.CurrentYakID(),
		SelectedNoteID: e.SelectedNoteID(),
		Yaks:           []YakView{},
		Notes:          []NoteView{},
		CurrentNotes:   []string{},
	}

	for _, y := range e.Yaks() {
		ids := e.NoteIndex(y.ID)
		if ids == nil {
			ids = []string{}
		}
		snap.Yaks = append(snap.Yaks, YakView{ID: y.ID, Name: y.Name, NoteIDs: ids})
	}

	for _, n := range e.Notes() {
		snap.Notes = append(snap.Notes, NoteView{
			ID:         n.ID,
			YakID:      n.YakID,
			Title:      n.Title,
			Content:    n.Content,
			Supersedes: n.Supersedes,
			Indexed:    slices.Contains(e.NoteIndex(n.YakID), n.ID),
		})
	}

	if notes, ready := e.CurrentNotes(); ready {
		for _, n := range notes {
			snap.CurrentNotes = append(snap.CurrentNotes, n.ID)
		}
	}

	return snap
}
