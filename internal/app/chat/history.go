package chat

import "time"

const (
	// MaxMessages is the number of messages kept in the shared history.
	MaxMessages = 200

	// TimestampLayout renders the server-local time without a timezone suffix,
	// e.g. "Sat Oct 17 2026 14:03:05".
	TimestampLayout = "Mon Jan 02 2006 15:04:05"
)

// History is the capacity-bounded, append-only message log shared by the room.
// Once full, each append overwrites the oldest entry.
// It is owned by the room loop and not safe for concurrent use.
type History struct {
	entries  []Message
	capacity int
	// head is the index of the oldest entry.
	head  int
	count int
	now   func() time.Time
}

// NewHistory creates an empty history holding at most capacity messages.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = MaxMessages
	}

	return &History{
		entries:  make([]Message, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// Append stamps msg with the current server time, stores it at the tail and
// evicts the oldest entry if the log is full. It returns the assigned timestamp.
func (h *History) Append(msg Message) string {
	ts := h.now().Format(TimestampLayout)
	msg.Timestamp = ts

	tail := (h.head + h.count) % h.capacity
	h.entries[tail] = msg

	if h.count < h.capacity {
		h.count++
	} else {
		h.head = (h.head + 1) % h.capacity
	}

	return ts
}

// Snapshot returns a copy of the stored messages, oldest first.
func (h *History) Snapshot() []Message {
	out := make([]Message, 0, h.count)
	for i := 0; i < h.count; i++ {
		out = append(out, h.entries[(h.head+i)%h.capacity])
	}
	return out
}

// Len returns the number of stored messages.
func (h *History) Len() int {
	return h.count
}
