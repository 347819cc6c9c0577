package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalMeta_Nil(t *testing.T) {
	s, err := MarshalMeta(nil)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	m, err := UnmarshalMeta("")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestMarshalMeta_RoundTrip(t *testing.T) {
	in := &Meta{ContainerID: "yak-1", OriginalNoteID: "note-1"}

	s, err := MarshalMeta(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"containerId":"yak-1","originalNoteId":"note-1"}`, s)

	out, err := UnmarshalMeta(s)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMarshalMeta_OmitsEmptyFields(t *testing.T) {
	s, err := MarshalMeta(&Meta{ContainerID: "yak-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"containerId":"yak-1"}`, s)
}

func TestUnmarshalMeta_Invalid(t *testing.T) {
	_, err := UnmarshalMeta("{not json")
	assert.Error(t, err)
}

func TestUUIDv7Generator_SortableAndTimed(t *testing.T) {
	gen := UUIDv7Generator{}

	before := time.Now().Add(-time.Second)
	a := gen.NewID()
	b := gen.NewID()
	after := time.Now().Add(time.Second)

	assert.NotEqual(t, a, b)
	// UUIDv7 string ordering matches creation ordering.
	assert.Less(t, a, b)

	ts, err := IDTime(a)
	require.NoError(t, err)
	assert.True(t, ts.After(before) && ts.Before(after), "embedded clock %v outside [%v, %v]", ts, before, after)
}

func TestIDTime_RejectsNonV7(t *testing.T) {
	_, err := IDTime("not-a-uuid")
	assert.Error(t, err)

	// UUIDv4 has no embedded clock.
	_, err = IDTime("550e8400-e29b-41d4-a716-446655440000")
	assert.Error(t, err)

	assert.True(t, TimeOrZero("frame-001").IsZero())
}
