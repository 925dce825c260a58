/*
Package handler provides the HTTP handlers and routing setup for the chat server.

This file defines the main Router, applying middleware like request logging, CORS and panic
recovery before delegating requests to the chat page, health check and WebSocket handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/jackadrianglass/chit-chat-app/internal/pkg/limiter"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/logx"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/resp"
)

// ServiceName is reported by the health check.
const ServiceName = "Chit-Chat Server"

// Router sets up the main HTTP routing table (chi.Router) for the application.
// The returned limiter throttles WebSocket upgrades per IP; the caller stops it on shutdown.
func Router(deps *AppDeps) (http.Handler, *limiter.IPRateLimiter) {
	joinLimiter := limiter.NewIPRateLimiter(rate.Limit(deps.Config.WSJoinRate), deps.Config.WSJoinBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/", HandleChatPage(deps.Config.ChatPagePath))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": ServiceName,
		}
		resp.RespondSuccess(w, r, data)
	})

	r.With(joinLimiter.Middleware).Get("/ws", HandleWebSocket(deps, wsUpgrader))

	return r, joinLimiter
}
