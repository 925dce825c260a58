package handler

import (
	"net/http"
	"os"

	"github.com/jackadrianglass/chit-chat-app/internal/pkg/errs"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/logx"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/resp"
)

// HandleChatPage serves the static chat page from path.
func HandleChatPage(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			logx.Warn("Chat page unavailable.", "path", path)
			resp.RespondError(w, r, errs.NewError(errs.ErrPageNotFound))
			return
		}

		http.ServeFile(w, r, path)
	}
}
