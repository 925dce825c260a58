/*
Package chat contains the core logic of the shared chat room: session registry, message history,
broadcast protocol, command interpreter and the WebSocket client lifecycle.

This file defines the wire model: the Message and Command types, the named events exchanged with
clients, and the decoding of inbound frames into a closed set of typed events.
*/
package chat

import (
	"encoding/json"
	"fmt"

	"github.com/jackadrianglass/chit-chat-app/internal/app/user"
)

// MessageType distinguishes user-authored chat messages from system notices.
type MessageType int

const (
	// TypeUserMessage is an ordinary chat message written by a user.
	TypeUserMessage MessageType = iota

	// TypeInfo is a system notice (join, leave, command result).
	TypeInfo
)

// Message is a single entry of the shared history.
type Message struct {
	User      user.User   `json:"user"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Timestamp string      `json:"timestamp"`
}

// Command is a slash-command request. Only User.ID is trusted.
type Command struct {
	User    user.User `json:"user"`
	Content string    `json:"content"`
}

// ChatStatePayload is the snapshot sent to a joining connection.
type ChatStatePayload struct {
	Messages []Message   `json:"messages"`
	Users    []user.User `json:"users"`
}

// Event names of the wire protocol.
const (
	EventJoin             = "join"
	EventNewUser          = "new-user"
	EventChatState        = "chat-state"
	EventLeave            = "leave"
	EventChatMsg          = "chat-msg"
	EventMsgTimestamp     = "msg-timestamp"
	EventCommand          = "command"
	EventCmdError         = "cmd-error"
	EventNameChange       = "name-change"
	EventColourChange     = "colour-change"
	EventTextColourChange = "text-colour-change"
)

// Envelope is the JSON frame carried by every WebSocket text message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Event is an inbound client event decoded at the transport boundary.
// The set of implementations is closed: JoinEvent, LeaveEvent, ChatEvent and CommandEvent,
// plus the unexported marker for events refused by the connection rate limiter.
type Event interface {
	Name() string
	inbound()
}

// JoinEvent asks to join the room. User is nil when the client has no prior identity.
type JoinEvent struct {
	User *user.User
}

// LeaveEvent announces that the identified user leaves the room.
type LeaveEvent struct {
	User user.User
}

// ChatEvent carries a chat message written by a client.
type ChatEvent struct {
	Message Message
}

// CommandEvent carries a slash-command.
type CommandEvent struct {
	Command Command
}

func (JoinEvent) Name() string    { return EventJoin }
func (LeaveEvent) Name() string   { return EventLeave }
func (ChatEvent) Name() string    { return EventChatMsg }
func (CommandEvent) Name() string { return EventCommand }

// throttledEvent replaces a chat message or command refused by the
// connection's rate limiter, so the Room can tell the sender.
type throttledEvent struct {
	dropped string
}

func (e throttledEvent) Name() string { return e.dropped }
func (throttledEvent) inbound()       {}

func (JoinEvent) inbound()    {}
func (LeaveEvent) inbound()   {}
func (ChatEvent) inbound()    {}
func (CommandEvent) inbound() {}

// DecodeEvent parses a raw frame into a typed inbound event.
// Server-only and unknown event names are rejected, as are payloads that do not fit the event.
func DecodeEvent(raw []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Event {
	case EventJoin:
		var u *user.User
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &u); err != nil {
				return nil, fmt.Errorf("invalid %s payload: %w", env.Event, err)
			}
		}
		return JoinEvent{User: u}, nil

	case EventLeave:
		var u *user.User
		if err := decodeRequired(env, &u); err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("missing %s payload", env.Event)
		}
		return LeaveEvent{User: *u}, nil

	case EventChatMsg:
		var msg *Message
		if err := decodeRequired(env, &msg); err != nil {
			return nil, err
		}
		if msg == nil {
			return nil, fmt.Errorf("missing %s payload", env.Event)
		}
		return ChatEvent{Message: *msg}, nil

	case EventCommand:
		var cmd *Command
		if err := decodeRequired(env, &cmd); err != nil {
			return nil, err
		}
		if cmd == nil {
			return nil, fmt.Errorf("missing %s payload", env.Event)
		}
		return CommandEvent{Command: *cmd}, nil

	default:
		return nil, fmt.Errorf("unsupported event %q", env.Event)
	}
}

func decodeRequired(env Envelope, dst any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("missing %s payload", env.Event)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("invalid %s payload: %w", env.Event, err)
	}
	return nil
}

// encodeEnvelope marshals an outbound event frame.
func encodeEnvelope(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event, err)
	}

	return json.Marshal(Envelope{Event: event, Data: data})
}
