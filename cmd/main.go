/*
Package main is the entry point for the Chit-Chat server.

It is responsible for loading configuration, initializing the global logging system,
starting the chat room event loop, setting up the HTTP server,
and gracefully handling operating system interrupt signals (SIGINT, SIGTERM)
to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackadrianglass/chit-chat-app/internal/app/chat"
	"github.com/jackadrianglass/chit-chat-app/internal/configs"
	"github.com/jackadrianglass/chit-chat-app/internal/handler"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("chat_page", cfg.ChatPagePath).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Float64("ws_join_rate", cfg.WSJoinRate).
		Float64("msg_rate", cfg.MsgRate).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The room owns all chat state; it lives for the whole process.
	room := chat.NewRoom(chat.NewState())
	go room.Run()

	router, joinLimiter := handler.Router(&handler.AppDeps{
		Room:   room,
		Config: cfg,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Chit-Chat Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	room.Stop()
	select {
	case <-room.Done():
	case <-shutdownCtx.Done():
		logx.Warn("Chat room did not stop before the shutdown deadline")
	}

	joinLimiter.Stop()

	logx.Info("Server gracefully stopped.")
}
