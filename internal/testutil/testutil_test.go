package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yakstack/internal/frame"
)

func TestSeqIDs(t *testing.T) {
	gen := NewSeqIDs("frame")
	assert.Equal(t, "frame-001", gen.NewID())
	assert.Equal(t, "frame-002", gen.NewID())
	assert.Equal(t, "frame-003", gen.NewID())
}

func TestFixedIDs(t *testing.T) {
	gen := NewFixedIDs("a", "b")
	assert.Equal(t, "a", gen.NewID())
	assert.Equal(t, "b", gen.NewID())
	assert.Panics(t, func() { gen.NewID() })
}

func TestMemoryStream_DeliveryOrder(t *testing.T) {
	m := NewMemoryStream(NewSeqIDs("frame"))
	ctx := context.Background()

	_, err := m.Append(ctx, frame.AppendRequest{Topic: frame.TopicYakCreate})
	require.NoError(t, err)

	var topics []string
	m.OnFrame(func(f frame.Frame) { topics = append(topics, f.Topic) })
	require.NoError(t, m.Subscribe(ctx))

	_, err = m.Append(ctx, frame.AppendRequest{Topic: frame.TopicNoteCreate, Meta: &frame.Meta{ContainerID: "frame-001"}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		frame.TopicYakCreate,
		frame.TopicThreshold,
		frame.TopicNoteCreate,
	}, topics)
}

func TestMemoryStream_ContentRoundTrip(t *testing.T) {
	m := NewMemoryStream(NewSeqIDs("frame"))
	ctx := context.Background()

	_, err := m.Append(ctx, frame.AppendRequest{Topic: frame.TopicNoteCreate, Content: "body", Meta: &frame.Meta{ContainerID: "y"}})
	require.NoError(t, err)

	frames := m.Frames()
	require.Len(t, frames, 1)
	content, err := m.Content(ctx, frames[0].Hash)
	require.NoError(t, err)
	assert.Equal(t, "body", content)

	_, err = m.Content(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestMemoryStream_AppendFrameBypassesValidation(t *testing.T) {
	m := NewMemoryStream(NewSeqIDs("frame"))

	m.AppendFrame(frame.Frame{ID: "raw-1", Topic: "NOT A VALID TOPIC"})
	frames := m.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, "raw-1", frames[0].ID)
	assert.Zero(t, m.Appends())
}
