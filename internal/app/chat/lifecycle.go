package chat

import (
	"github.com/jackadrianglass/chit-chat-app/internal/app/user"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/errs"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/logx"
)

// MaxContentBytes is the maximum allowed size (in bytes) of a chat message's content.
const MaxContentBytes = 5000

// join brings a connection's user online, creating an identity when the
// supplied one is absent or unknown, and announces the user to the room.
func (r *Room) join(client *Client, supplied *user.User) {
	reg := r.state.Registry

	var current user.User
	rejoined := false

	if supplied != nil {
		if u, ok := reg.MarkOnline(supplied.ID); ok {
			current = u
			rejoined = true
		}
	}

	if rejoined {
		// the name may have been claimed while this user was offline
		if free := reg.FreeName(current.Name, current.ID); free != current.Name {
			client.logger.Info().
				Int(logx.FieldUserID, current.ID).
				Str("old_name", current.Name).
				Str("new_name", free).
				Msg("Rejoining user's name is taken, renaming.")

			current.Name = free
			if err := reg.Update(current); err != nil {
				client.logger.Error().Err(err).Msg("Failed to rename rejoining user.")
				return
			}
			r.emitTo(client, EventNameChange, current)
		}
	} else {
		u, err := reg.NewIdentity()
		if err != nil {
			client.logger.Error().Err(err).Msg("Failed to create identity. Join dropped.")
			return
		}
		if err := reg.Register(u); err != nil {
			client.logger.Error().Err(err).Msg("Failed to register new identity. Join dropped.")
			return
		}
		current = u
		r.emitTo(client, EventNewUser, current)
	}

	client.userID = current.ID
	client.logger.Info().
		Int(logx.FieldUserID, current.ID).
		Str("name", current.Name).
		Bool("rejoin", rejoined).
		Msg("User joined chat.")

	r.emitTo(client, EventChatState, ChatStatePayload{
		Messages: r.state.History.Snapshot(),
		Users:    reg.OnlineUsers(),
	})
	r.emitOthers(client, EventJoin, current)

	r.onMessage(client, Message{
		User:    current,
		Type:    TypeInfo,
		Content: current.Name + " joined chat",
	}, true)
}

// leave marks the identified user offline and announces it.
// Unknown identities are logged and dropped.
func (r *Room) leave(client *Client, identity user.User) {
	current, ok := r.state.Registry.MarkOffline(identity.ID)
	if !ok {
		client.logger.Warn().
			Int(logx.FieldUserID, identity.ID).
			Str("name", identity.Name).
			Msg("Leave from unknown user. Dropped.")
		return
	}

	client.logger.Info().
		Int(logx.FieldUserID, current.ID).
		Str("name", current.Name).
		Msg("User left chat.")

	r.emitOthers(client, EventLeave, current)

	r.onMessage(client, Message{
		User:    current,
		Type:    TypeInfo,
		Content: current.Name + " left chat",
	}, true)
}

// chat accepts an ordinary message. The author is resolved from the registry,
// so clients cannot alter their display attributes or post system notices.
func (r *Room) chat(client *Client, msg Message) {
	author, ok := r.state.Registry.FindByID(msg.User.ID)
	if !ok {
		client.logger.Warn().
			Int(logx.FieldUserID, msg.User.ID).
			Msg("Chat message from unknown user. Dropped.")
		return
	}

	if len(msg.Content) > MaxContentBytes {
		r.emitTo(client, EventCmdError, errs.Text(errs.ErrMessageContentTooLong))
		return
	}

	r.onMessage(client, Message{
		User:    author,
		Type:    TypeUserMessage,
		Content: msg.Content,
	}, false)
}

// throttled tells the sender that its chat message or command was refused by the rate limiter.
func (r *Room) throttled(client *Client, ev throttledEvent) {
	logx.UserID(client.logger.Warn(), client.userID).
		Str("event", ev.dropped).
		Msg("Client exceeded inbound rate limit, event refused.")

	r.emitTo(client, EventCmdError, errs.Text(errs.ErrMessageRateLimited))
}
