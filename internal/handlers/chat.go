package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"letterwriter-backend/internal/models"
	"letterwriter-backend/internal/services"
)

type chatService interface {
	Chat(ctx context.Context, messages []models.Message) (string, error)
}

type ChatHandler struct {
	chatService chatService
	devMode     bool
}

func NewChatHandler(chatService chatService, devMode bool) *ChatHandler {
	return &ChatHandler{chatService: chatService, devMode: devMode}
}

type chatRequestBody struct {
	Messages json.RawMessage `json:"messages"`
}

func (h *ChatHandler) ChatWithAI(w http.ResponseWriter, r *http.Request) {
	var body chatRequestBody
	if err := decodeBody(w, r, &body); err != nil {
		writeInvalidJSON(w)
		return
	}

	messages, err := services.ValidateChatMessages(body.Messages)
	if err != nil {
		handleServiceError(w, r, err, "Chat with AI failed", h.devMode)
		return
	}

	reply, err := h.chatService.Chat(r.Context(), messages)
	if err != nil {
		handleServiceError(w, r, err, "Chat with AI failed", h.devMode)
		return
	}

	writeJSON(w, http.StatusOK, successResp("Chat with AI successful", reply))
}
