package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yakstack/internal/frame"
	"github.com/roach88/yakstack/internal/store"
)

func TestLog_EmptyDatabase(t *testing.T) {
	out, err := execute(t, tempDB(t), "log")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLog_TextAndJSON(t *testing.T) {
	db := tempDB(t)

	s, err := store.Open(db)
	require.NoError(t, err)
	yakID, err := s.Append(context.Background(), frame.AppendRequest{Topic: frame.TopicYakCreate})
	require.NoError(t, err)
	noteID, err := s.Append(context.Background(), frame.AppendRequest{
		Topic:   frame.TopicNoteCreate,
		Content: "hello",
		Meta:    &frame.Meta{ContainerID: yakID},
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	out, err := execute(t, db, "log")
	require.NoError(t, err)
	assert.Contains(t, out, yakID+"  yak.create")
	assert.Contains(t, out, noteID+"  note.create")
	assert.Contains(t, out, "yak="+yakID)

	out, err = execute(t, db, "--format", "json", "log")
	require.NoError(t, err)

	var frames []frame.Frame
	require.NoError(t, json.Unmarshal([]byte(out), &frames))
	require.Len(t, frames, 2)
	assert.Equal(t, yakID, frames[0].ID)
	assert.Equal(t, noteID, frames[1].ID)
}
