/*
Package chat contains the core logic of the shared chat room: session registry, message history,
broadcast protocol, command interpreter and the WebSocket client lifecycle.

This file defines the Client struct, representing an active WebSocket connection. It decodes
inbound frames into typed events for the Room and writes the Room's queued frames back out
(ReadPump and WritePump).
*/
package chat

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jackadrianglass/chit-chat-app/internal/pkg/logx"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxFrameSize = 8192

	// capacity of the per-connection outbound queue.
	sendBufferSize = 256
)

// Client struct represents an active WebSocket connection.
type Client struct {
	// ID tags the connection in logs.
	ID string

	// the chat room the connection belongs to.
	room *Room

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// a buffered channel of encoded frames waiting to be written. Closed by the Room.
	send chan []byte

	// throttles inbound frames; nil means unlimited.
	limiter *rate.Limiter

	// id of the user last joined through this connection, 0 before join. Owned by the Room loop.
	userID int

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient constructs and returns a new Client instance.
func NewClient(room *Room, wsConn *websocket.Conn, limiter *rate.Limiter) *Client {
	id := randx.ConnectionID()

	return &Client{
		ID:      id,
		room:    room,
		conn:    wsConn,
		send:    make(chan []byte, sendBufferSize),
		limiter: limiter,
		logger:  logx.Connection("Client", id),
	}
}

// ReadPump reads frames from the WebSocket connection, decodes them and hands
// the events to the Room. It returns when the connection fails or the Room stops.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxFrameSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			break
		}

		event, err := DecodeEvent(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid event")
			continue
		}

		if !c.admit(event) {
			event = throttledEvent{dropped: event.Name()}
		}

		if !c.room.Dispatch(c, event) {
			break
		}
	}
}

// admit applies the inbound rate limiter. join and leave wait for a token so a
// presence change is never lost; a chat message or command over the limit is refused.
func (c *Client) admit(event Event) bool {
	if c.limiter == nil {
		return true
	}

	switch event.(type) {
	case JoinEvent, LeaveEvent:
		if err := c.limiter.Wait(context.Background()); err != nil {
			c.logger.Debug().Err(err).Msg("Rate limiter wait failed")
		}
		return true
	}

	return c.limiter.Allow()
}

// cleanupOnDisconnect removes the connection from the Room and closes it.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.room.UnregisterClient(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// WritePump writes queued frames to the WebSocket connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

// writeQueuedFrame writes one frame pulled from the send channel.
// Returns true if the WritePump loop should continue, false if it should terminate.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePing sends a periodic WebSocket Ping message to maintain the connection heartbeat.
func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
