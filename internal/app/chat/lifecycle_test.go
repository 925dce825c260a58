package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackadrianglass/chit-chat-app/internal/app/user"
)

func TestJoinFreshIdentity(t *testing.T) {
	r := newTestRoom(42)
	a, other := connect(r), connect(r)

	r.join(a, nil)

	aEnvs := drain(t, a)
	require.Equal(t, []string{EventNewUser, EventChatState, EventChatMsg}, events(aEnvs))

	created := payload[user.User](t, aEnvs[0])
	assert.Equal(t, 42, created.ID)
	assert.Equal(t, "User42", created.Name)
	assert.Equal(t, user.Online, created.Status)

	state := payload[ChatStatePayload](t, aEnvs[1])
	assert.NotNil(t, state.Messages)
	assert.Empty(t, state.Messages)
	require.Len(t, state.Users, 1)
	assert.Equal(t, 42, state.Users[0].ID)

	info := payload[Message](t, aEnvs[2])
	assert.Equal(t, TypeInfo, info.Type)
	assert.Equal(t, "User42 joined chat", info.Content)

	otherEnvs := drain(t, other)
	require.Equal(t, []string{EventJoin, EventChatMsg}, events(otherEnvs))
	assert.Equal(t, 42, payload[user.User](t, otherEnvs[0]).ID)
	assert.Equal(t, "User42 joined chat", payload[Message](t, otherEnvs[1]).Content)
}

func TestJoinChatStateContainsHistory(t *testing.T) {
	r := newTestRoom(1, 2)
	a, b := connect(r), connect(r)
	alice := joinAs(t, r, a, "Alice")

	r.chat(a, Message{User: alice, Content: "first"})
	drain(t, a)
	drain(t, b)

	r.join(b, nil)
	envs := drain(t, b)
	require.Equal(t, []string{EventNewUser, EventChatState, EventChatMsg}, events(envs))

	// the snapshot is taken before the joiner's own notice is appended
	state := payload[ChatStatePayload](t, envs[1])
	require.Len(t, state.Messages, 2)
	assert.Equal(t, "User1 joined chat", state.Messages[0].Content)
	assert.Equal(t, "first", state.Messages[1].Content)
	assert.Equal(t, "Alice", state.Messages[1].User.Name)
	require.Len(t, state.Users, 2)
	assert.Equal(t, "User2 joined chat", payload[Message](t, envs[2]).Content)
}

func TestJoinUnknownSuppliedIdentityCreatesNew(t *testing.T) {
	r := newTestRoom(5)
	a := connect(r)

	r.join(a, &user.User{ID: 1234, Name: "ghost"})

	envs := drain(t, a)
	require.Equal(t, EventNewUser, envs[0].Event)
	assert.Equal(t, 5, payload[user.User](t, envs[0]).ID)
	_, known := r.state.Registry.FindByID(1234)
	assert.False(t, known)
}

func TestRejoinIsIdempotent(t *testing.T) {
	r := newTestRoom(7, 8)
	a := connect(r)
	u := joinAs(t, r, a, "")

	r.join(a, &u)
	r.join(a, &u)

	assert.Equal(t, 1, r.state.Registry.Len())

	envs := drain(t, a)
	assert.NotContains(t, events(envs), EventNewUser)
	stored, _ := r.state.Registry.FindByID(7)
	assert.Equal(t, user.Online, stored.Status)
}

func TestRejoinAfterLeaveRestoresRecord(t *testing.T) {
	r := newTestRoom(7)
	a, b := connect(r), connect(r)
	u := joinAs(t, r, a, "Alice")

	r.leave(a, u)
	drain(t, a)
	drain(t, b)

	// client-supplied display fields are ignored in favour of the registry
	stale := u
	stale.Name = "Mallory"
	r.join(a, &stale)

	envs := drain(t, a)
	require.Equal(t, []string{EventChatState, EventChatMsg}, events(envs))
	assert.Equal(t, "Alice joined chat", payload[Message](t, envs[1]).Content)

	bEnvs := drain(t, b)
	require.Equal(t, []string{EventJoin, EventChatMsg}, events(bEnvs))
	assert.Equal(t, "Alice", payload[user.User](t, bEnvs[0]).Name)
}

func TestRejoinRenamesOnNameClash(t *testing.T) {
	r := newTestRoom(1, 2)
	a, b := connect(r), connect(r)
	alice := joinAs(t, r, a, "Alice")

	r.leave(a, alice)
	joinAs(t, r, b, "Alice")

	r.join(a, &alice)

	envs := drain(t, a)
	require.Equal(t, []string{EventNameChange, EventChatState, EventChatMsg}, events(envs))
	assert.Equal(t, "Alice (2)", payload[user.User](t, envs[0]).Name)
	assert.Equal(t, "Alice (2) joined chat", payload[Message](t, envs[2]).Content)

	assertOnlineNamesUnique(t, r)
}

func TestLeave(t *testing.T) {
	r := newTestRoom(3)
	a, b := connect(r), connect(r)
	u := joinAs(t, r, a, "Bob")

	r.leave(a, u)

	stored, _ := r.state.Registry.FindByID(3)
	assert.Equal(t, user.Offline, stored.Status)
	assert.Equal(t, 1, r.state.Registry.Len(), "users are never deleted")

	aEnvs := drain(t, a)
	require.Equal(t, []string{EventChatMsg}, events(aEnvs))
	assert.Equal(t, "Bob left chat", payload[Message](t, aEnvs[0]).Content)

	bEnvs := drain(t, b)
	require.Equal(t, []string{EventLeave, EventChatMsg}, events(bEnvs))
	assert.Equal(t, user.Offline, payload[user.User](t, bEnvs[0]).Status)

	assert.Empty(t, r.state.Registry.OnlineUsers())
}

func TestLeaveUnknownUserIsDropped(t *testing.T) {
	r := newTestRoom()
	a, b := connect(r), connect(r)

	r.leave(a, user.User{ID: 555})

	assert.Empty(t, drain(t, a))
	assert.Empty(t, drain(t, b))
	assert.Zero(t, r.state.History.Len())
}

func TestChatUsesRegistryAuthor(t *testing.T) {
	r := newTestRoom(9)
	a, b := connect(r), connect(r)
	u := joinAs(t, r, a, "Carol")

	spoofed := u
	spoofed.Name = "Admin"
	spoofed.BgColour = "#ff0000"
	r.chat(a, Message{User: spoofed, Type: TypeInfo, Content: "hey", Timestamp: "yesterday"})

	aEnvs := drain(t, a)
	require.Equal(t, []string{EventMsgTimestamp}, events(aEnvs))

	bEnvs := drain(t, b)
	require.Equal(t, []string{EventChatMsg}, events(bEnvs))
	msg := payload[Message](t, bEnvs[0])
	assert.Equal(t, "Carol", msg.User.Name)
	assert.Equal(t, user.DefaultBgColour, msg.User.BgColour)
	assert.Equal(t, TypeUserMessage, msg.Type)
	assert.Equal(t, payload[string](t, aEnvs[0]), msg.Timestamp)
	assert.NotEqual(t, "yesterday", msg.Timestamp)
}

func TestChatFromUnknownUserIsDropped(t *testing.T) {
	r := newTestRoom()
	a, b := connect(r), connect(r)

	r.chat(a, Message{User: user.User{ID: 77}, Content: "hi"})

	assert.Empty(t, drain(t, a))
	assert.Empty(t, drain(t, b))
	assert.Zero(t, r.state.History.Len())
}

func TestChatRejectsOversizedContent(t *testing.T) {
	r := newTestRoom(9)
	a, b := connect(r), connect(r)
	u := joinAs(t, r, a, "")

	r.chat(a, Message{User: u, Content: strings.Repeat("x", MaxContentBytes+1)})

	aEnvs := drain(t, a)
	require.Equal(t, []string{EventCmdError}, events(aEnvs))
	assert.Equal(t, "Message is too long.", payload[string](t, aEnvs[0]))
	assert.Empty(t, drain(t, b))
}

func TestChatHistoryWindow(t *testing.T) {
	r := newTestRoom(9)
	a := connect(r)
	u := joinAs(t, r, a, "")

	for iter := 0; iter < 250; iter++ {
		r.chat(a, Message{User: u, Content: "spam"})
		drain(t, a)
	}

	assert.Equal(t, MaxMessages, r.state.History.Len())
}

func assertOnlineNamesUnique(t *testing.T, r *Room) {
	t.Helper()

	seen := make(map[string]int)
	for _, u := range r.state.Registry.OnlineUsers() {
		if prev, dup := seen[u.Name]; dup {
			t.Fatalf("users %d and %d are both online as %q", prev, u.ID, u.Name)
		}
		seen[u.Name] = u.ID
	}
}
