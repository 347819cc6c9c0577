package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yakstack/internal/frame"
)

func TestSubscribe_HistoricalThenThresholdThenLive(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	yakID, err := s.Append(ctx, frame.AppendRequest{Topic: frame.TopicYakCreate})
	require.NoError(t, err)
	noteID, err := s.Append(ctx, frame.AppendRequest{
		Topic:   frame.TopicNoteCreate,
		Content: "hello",
		Meta:    &frame.Meta{ContainerID: yakID},
	})
	require.NoError(t, err)

	var topics []string
	var ids []string
	s.OnFrame(func(f frame.Frame) {
		topics = append(topics, f.Topic)
		ids = append(ids, f.ID)
	})

	require.NoError(t, s.Subscribe(ctx))

	// Historical frames in log order, then the synthesized threshold.
	require.Equal(t, []string{frame.TopicYakCreate, frame.TopicNoteCreate, frame.TopicThreshold}, topics)
	assert.Equal(t, yakID, ids[0])
	assert.Equal(t, noteID, ids[1])

	// Live frames are delivered inline by Append.
	liveID, err := s.Append(ctx, frame.AppendRequest{Topic: frame.TopicYakCreate})
	require.NoError(t, err)
	require.Len(t, topics, 4)
	assert.Equal(t, frame.TopicYakCreate, topics[3])
	assert.Equal(t, liveID, ids[3])
}

func TestSubscribe_ThresholdOnEmptyLog(t *testing.T) {
	s := setupStore(t)

	var topics []string
	s.OnFrame(func(f frame.Frame) { topics = append(topics, f.Topic) })

	require.NoError(t, s.Subscribe(context.Background()))
	assert.Equal(t, []string{frame.TopicThreshold}, topics)
}

func TestSubscribe_Twice(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.Subscribe(context.Background()))
	assert.Error(t, s.Subscribe(context.Background()))
}

func TestOnFrame_Unsubscribe(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	var count int
	unsub := s.OnFrame(func(frame.Frame) { count++ })
	require.NoError(t, s.Subscribe(ctx))
	require.Equal(t, 1, count) // threshold only

	unsub()
	_, err := s.Append(ctx, frame.AppendRequest{Topic: frame.TopicYakCreate})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	unsub() // safe to call again
}

func TestAppend_BeforeSubscribeDeliversNothing(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	var count int
	s.OnFrame(func(frame.Frame) { count++ })

	_, err := s.Append(ctx, frame.AppendRequest{Topic: frame.TopicYakCreate})
	require.NoError(t, err)
	assert.Zero(t, count, "append before subscribe must not deliver live frames")
}
