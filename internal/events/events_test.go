package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent(SubjectCartUpdated, "sess-1", map[string]int{"itemCount": 3})

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, SubjectCartUpdated, e.Subject)
	assert.False(t, e.OccurredAt.IsZero())

	raw, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"sessionId":"sess-1"`)
	assert.Contains(t, string(raw), `"data":{"itemCount":3}`)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	ctx := context.Background()
	require.NoError(t, r.Publish(ctx, SubjectCartUpdated, "a", nil))
	require.NoError(t, r.Publish(ctx, SubjectOrderPlaced, "a", nil))

	assert.Equal(t, []string{SubjectCartUpdated, SubjectOrderPlaced}, r.Subjects())
	assert.Len(t, r.Events(), 2)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), SubjectOrderPlaced, "", nil))
	assert.NoError(t, p.Close())
}
