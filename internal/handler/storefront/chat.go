package storefront

import (
	"net/http"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/service"
)

// ChatHandler serves the shopping assistant conversation.
type ChatHandler struct {
	chat service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// History handles GET /api/chat
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}
	handler.WriteJSON(w, http.StatusOK, chatResponse{Messages: h.chat.History(r.Context(), sess)})
}

// Send handles POST /api/chat
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	messages, err := h.chat.Send(r.Context(), sess, req.Message)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, chatResponse{Messages: messages})
}
