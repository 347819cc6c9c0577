package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yakstack/internal/testutil"
)

func TestResolve_Success(t *testing.T) {
	e, stream := newTestEngine(t)
	hash := stream.PutContent("Hello\nWorld")

	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("note-1", "yak-1", hash))
	e.Wait()

	n, ok := e.Note("note-1")
	require.True(t, ok)
	assert.Equal(t, "Hello\nWorld", n.Content)
	assert.Equal(t, "Hello", n.Title)
}

func TestResolve_FailureDegradesNote(t *testing.T) {
	e, stream := newTestEngine(t)
	hash := stream.PutContent("unreachable")
	stream.FailContent(hash, errors.New("cas offline"))

	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("note-1", "yak-1", hash))
	e.Wait()

	n, ok := e.Note("note-1")
	require.True(t, ok)
	assert.Equal(t, "Failed to load content", n.Content)
	assert.Equal(t, "Error loading content", n.Title)

	// The failure stays contained: the rest of the store is untouched.
	assert.Equal(t, []string{"note-1"}, e.NoteIndex("yak-1"))
}

func TestResolve_NoHashNoResolution(t *testing.T) {
	e, _ := newTestEngine(t)

	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("note-1", "yak-1", ""))
	e.Wait()

	n, _ := e.Note("note-1")
	assert.Equal(t, "", n.Content)
	assert.Equal(t, "loading", n.Title)
}

// blockingStream lets a test hold a resolution open while frames keep
// flowing, then release it.
type blockingStream struct {
	*testutil.MemoryStream
	gate    chan struct{}
	fetches atomic.Int32
}

func (b *blockingStream) Content(ctx context.Context, hash string) (string, error) {
	b.fetches.Add(1)
	<-b.gate
	return b.MemoryStream.Content(ctx, hash)
}

func TestResolve_AtMostOncePerNote(t *testing.T) {
	base := testutil.NewMemoryStream(testutil.NewSeqIDs("frame"))
	stream := &blockingStream{MemoryStream: base, gate: make(chan struct{})}
	close(stream.gate) // no blocking needed here
	e := New(stream)

	hash := base.PutContent("once")
	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("note-1", "yak-1", hash))
	// A duplicate delivery of the same note id must not refetch.
	e.apply(noteCreate("note-1", "yak-1", hash))
	e.Wait()

	assert.Equal(t, int32(1), stream.fetches.Load())
}

func TestResolve_StaleWriteIntoSupersededNote(t *testing.T) {
	base := testutil.NewMemoryStream(testutil.NewSeqIDs("frame"))
	stream := &blockingStream{MemoryStream: base, gate: make(chan struct{})}
	e := New(stream)

	hash := base.PutContent("late arrival")

	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("note-1", "yak-1", hash))

	// The edit lands while note-1's resolution is still in flight.
	e.apply(noteEdit("note-2", "yak-1", "note-1", ""))
	assert.Equal(t, []string{"note-2"}, e.NoteIndex("yak-1"))

	// Release the fetch: it writes into the orphaned record, harmlessly.
	close(stream.gate)
	e.Wait()

	n1, ok := e.Note("note-1")
	require.True(t, ok)
	assert.Equal(t, "late arrival", n1.Content)

	// The successor and the index are untouched by the stale write.
	n2, _ := e.Note("note-2")
	assert.Equal(t, "loading", n2.Title)
	assert.Equal(t, []string{"note-2"}, e.NoteIndex("yak-1"))
}

func TestResolve_DoesNotBlockIngestion(t *testing.T) {
	base := testutil.NewMemoryStream(testutil.NewSeqIDs("frame"))
	stream := &blockingStream{MemoryStream: base, gate: make(chan struct{})}
	e := New(stream)

	hash := base.PutContent("slow")
	e.apply(yakCreate("yak-1"))
	e.apply(noteCreate("note-1", "yak-1", hash))

	// Subsequent frames apply while the fetch is parked.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.apply(noteCreate("note-2", "yak-1", ""))
	}()
	wg.Wait()

	assert.Equal(t, []string{"note-1", "note-2"}, e.NoteIndex("yak-1"))

	close(stream.gate)
	e.Wait()
}
