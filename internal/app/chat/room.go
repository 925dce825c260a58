/*
Package chat contains the core logic of the shared chat room: session registry, message history,
broadcast protocol, command interpreter and the WebSocket client lifecycle.

This file defines the Room struct, the single event loop that owns the shared state. Every
connection change and every inbound client event is handled to completion on that loop, in
arrival order, so the registry and the history are never mutated concurrently.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/jackadrianglass/chit-chat-app/internal/pkg/logx"
)

const inboundChannelBuffer = 1024

// State is the authoritative shared state of the room.
type State struct {
	Registry *Registry
	History  *History
}

// NewState returns an empty registry and history.
func NewState() *State {
	return &State{
		Registry: NewRegistry(),
		History:  NewHistory(MaxMessages),
	}
}

type inboundEvent struct {
	client *Client
	event  Event
}

// Room is the single shared chat room.
type Room struct {
	state *State

	// connected clients receiving fan-out. Only the Run loop touches it.
	clients map[*Client]struct{}

	// a channel for connections joining the fan-out set.
	register chan *Client

	// a channel for connections whose transport went away.
	unregister chan *Client

	// a buffered channel of decoded client events, consumed in order.
	inbound chan inboundEvent

	// used to signal the Room to stop its Run loop immediately.
	stopChan chan struct{}
	stopOnce sync.Once

	// closed when the Run loop has returned.
	done chan struct{}

	// structured logger with room context.
	logger zerolog.Logger
}

// NewRoom creates a room over the given state. Call Run to start it.
func NewRoom(state *State) *Room {
	if state == nil {
		state = NewState()
	}

	return &Room{
		state:      state,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundEvent, inboundChannelBuffer),
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logx.Component("Room"),
	}
}

// Stop signals the Run loop to terminate. It is safe to call more than once.
func (r *Room) Stop() {
	r.stopOnce.Do(func() {
		r.logger.Info().Msg("Received stop signal. Stopping room.")
		close(r.stopChan)
	})
}

// Done is closed once the Run loop has exited and every client queue is closed.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// Run is the room's event loop. It returns after Stop is called.
func (r *Room) Run() {
	defer func() {
		for client := range r.clients {
			r.removeClient(client)
		}
		r.logger.Info().Msg("Room Run loop finished.")
		close(r.done)
	}()

	r.logger.Info().Msg("Room Run loop started.")

	for {
		select {
		case client := <-r.register:
			r.clients[client] = struct{}{}
			client.logger.Info().
				Int("total_connections", len(r.clients)).
				Msg("Connection registered.")

		case client := <-r.unregister:
			if _, ok := r.clients[client]; !ok {
				client.logger.Debug().Msg("Unregister for already removed connection.")
				continue
			}
			r.removeClient(client)
			// presence is only changed by an explicit leave event
			logx.UserID(client.logger.Info(), client.userID).
				Int("total_connections", len(r.clients)).
				Msg("Connection closed. User presence unchanged.")

		case in := <-r.inbound:
			r.handle(in.client, in.event)

		case <-r.stopChan:
			r.logger.Info().Msg("Room forced stop initiated.")
			return
		}
	}
}

// RegisterClient adds a connection to the fan-out set.
// It returns false if the room has stopped.
func (r *Room) RegisterClient(client *Client) bool {
	select {
	case r.register <- client:
		return true
	case <-r.stopChan:
		return false
	}
}

// UnregisterClient removes a connection from the fan-out set.
func (r *Room) UnregisterClient(client *Client) {
	select {
	case r.unregister <- client:
	case <-r.stopChan:
	}
}

// Dispatch queues a decoded client event for the Run loop.
// It returns false if the room has stopped.
func (r *Room) Dispatch(client *Client, event Event) bool {
	select {
	case <-r.stopChan:
		return false
	default:
	}

	select {
	case r.inbound <- inboundEvent{client: client, event: event}:
		return true
	case <-r.stopChan:
		return false
	}
}

func (r *Room) handle(client *Client, event Event) {
	switch ev := event.(type) {
	case JoinEvent:
		r.join(client, ev.User)
	case LeaveEvent:
		r.leave(client, ev.User)
	case ChatEvent:
		r.chat(client, ev.Message)
	case CommandEvent:
		r.command(client, ev.Command)
	case throttledEvent:
		r.throttled(client, ev)
	default:
		r.logger.Warn().Str("event", event.Name()).Msg("Unhandled event type.")
	}
}

// removeClient drops a connection from the fan-out set and closes its queue.
func (r *Room) removeClient(client *Client) {
	delete(r.clients, client)
	close(client.send)
}

// onMessage appends msg to the history, then fans it out. With sendToAll every
// connection receives the full message; otherwise the origin only receives the
// assigned timestamp and every other connection receives the full message.
func (r *Room) onMessage(origin *Client, msg Message, sendToAll bool) {
	msg.Timestamp = r.state.History.Append(msg)

	if sendToAll {
		r.emitAll(EventChatMsg, msg)
		return
	}

	r.emitTo(origin, EventMsgTimestamp, msg.Timestamp)
	r.emitOthers(origin, EventChatMsg, msg)
}

// emitTo sends an event to one connection.
func (r *Room) emitTo(client *Client, event string, payload any) {
	frame, ok := r.encode(event, payload)
	if !ok {
		return
	}
	r.deliver(client, frame)
}

// emitAll sends an event to every connection.
func (r *Room) emitAll(event string, payload any) {
	r.emitOthers(nil, event, payload)
}

// emitOthers sends an event to every connection except origin.
func (r *Room) emitOthers(origin *Client, event string, payload any) {
	frame, ok := r.encode(event, payload)
	if !ok {
		return
	}

	for client := range r.clients {
		if client != origin {
			r.deliver(client, frame)
		}
	}
}

func (r *Room) encode(event string, payload any) ([]byte, bool) {
	frame, err := encodeEnvelope(event, payload)
	if err != nil {
		r.logger.Error().Err(err).Str("event", event).Msg("Error marshaling event.")
		return nil, false
	}
	return frame, true
}

// deliver queues a frame on a registered connection. A connection whose queue
// is full is removed from the fan-out set.
func (r *Room) deliver(client *Client, frame []byte) {
	if client == nil {
		return
	}
	if _, ok := r.clients[client]; !ok {
		return
	}

	select {
	case client.send <- frame:
	default:
		client.logger.Warn().
			Int("queue_len", len(client.send)).
			Msg("Client send channel full, removing connection.")
		r.removeClient(client)
	}
}
