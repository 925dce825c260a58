package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackadrianglass/chit-chat-app/internal/app/user"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestHistoryAppendAssignsTimestamp(t *testing.T) {
	h := NewHistory(MaxMessages)
	h.now = fixedClock(time.Date(2026, time.October, 17, 14, 3, 5, 0, time.Local))

	ts := h.Append(Message{User: user.New(1), Content: "hi", Timestamp: "client supplied"})

	assert.Equal(t, "Sat Oct 17 2026 14:03:05", ts)

	snap := h.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, ts, snap[0].Timestamp)
	assert.Equal(t, "hi", snap[0].Content)
}

func TestHistoryEmptySnapshot(t *testing.T) {
	h := NewHistory(MaxMessages)

	snap := h.Snapshot()
	assert.NotNil(t, snap)
	assert.Empty(t, snap)
}

func TestHistoryBound(t *testing.T) {
	h := NewHistory(MaxMessages)

	for i := 0; i < 450; i++ {
		h.Append(Message{Content: fmt.Sprintf("m%d", i)})
		assert.LessOrEqual(t, h.Len(), MaxMessages)
	}

	snap := h.Snapshot()
	require.Len(t, snap, MaxMessages)
	for i, msg := range snap {
		assert.Equal(t, fmt.Sprintf("m%d", 250+i), msg.Content)
	}
}

func TestHistoryEvictsOldestOn201st(t *testing.T) {
	h := NewHistory(MaxMessages)

	for i := 1; i <= 201; i++ {
		h.Append(Message{Content: fmt.Sprintf("m%d", i)})
	}

	snap := h.Snapshot()
	require.Len(t, snap, 200)
	assert.Equal(t, "m2", snap[0].Content)
	assert.Equal(t, "m201", snap[199].Content)
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	h := NewHistory(3)
	h.Append(Message{Content: "a"})

	snap := h.Snapshot()
	snap[0].Content = "mutated"

	assert.Equal(t, "a", h.Snapshot()[0].Content)
}

func TestHistoryDefaultCapacity(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, MaxMessages, h.capacity)
}
