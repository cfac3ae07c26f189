package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/africahouse/tradeportal/internal/service"
)

type chatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *chatHandler {
	return &chatHandler{chatService: chatService}
}

type askRequest struct {
	Message string `json:"message"`
}

// Ask forwards the user's question plus the directory-derived system
// prompt to the language-model API and returns the reply together with
// the model that produced it
func (h *chatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "No message provided")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		respondError(w, http.StatusBadRequest, "Empty message")
		return
	}

	reply, modelUsed, err := h.chatService.Ask(r.Context(), message)
	if err != nil {
		if errors.Is(err, service.ErrChatNotConfigured) {
			respondError(w, http.StatusInternalServerError, "API configuration error")
			return
		}
		slog.Error("chat request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to generate response. Please try again.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"reply":      reply,
		"model_used": modelUsed,
	})
}
