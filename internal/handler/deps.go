package handler

import (
	"github.com/jackadrianglass/chit-chat-app/internal/app/chat"
	"github.com/jackadrianglass/chit-chat-app/internal/configs"
)

// AppDeps holds the collaborators shared by every HTTP handler.
type AppDeps struct {
	Room   *chat.Room
	Config *configs.AppConfig
}
