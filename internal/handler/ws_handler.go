/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains the HandleWebSocket function, which is responsible for upgrading the HTTP
connection to WebSocket and attaching the new connection to the chat room. Upgrade requests are
throttled per IP by the limiter middleware mounted in front of it.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/jackadrianglass/chit-chat-app/internal/app/chat"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/logx"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
// The handler blocks in the connection's read loop until the connection ends.
func HandleWebSocket(deps *AppDeps, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		msgLimiter := rate.NewLimiter(rate.Limit(deps.Config.MsgRate), deps.Config.MsgBurst)
		client := chat.NewClient(deps.Room, conn, msgLimiter)

		if !deps.Room.RegisterClient(client) {
			logx.Warn("WebSocket connection rejected: Room is shutting down.", logx.FieldConnID, client.ID)
			conn.Close()
			return
		}

		go client.WritePump()

		logx.Info("WebSocket connection established", logx.FieldConnID, client.ID)

		client.ReadPump()
	}
}
