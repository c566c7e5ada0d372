package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dukerupert/gymsup/internal/chat"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/session"
	"github.com/dukerupert/gymsup/internal/telemetry"
)

// maxChatHistory bounds the conversation kept in a session.
const maxChatHistory = 40

// ChatService runs the storefront assistant conversation held in a session.
type ChatService interface {
	History(ctx context.Context, sess *session.Session) []domain.ChatMessage
	Send(ctx context.Context, sess *session.Session, text string) ([]domain.ChatMessage, error)
}

type chatService struct {
	model   chat.Model
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

// NewChatService creates a new ChatService. A nil model disables the
// assistant.
func NewChatService(model chat.Model, metrics *telemetry.BusinessMetrics, logger *slog.Logger) ChatService {
	return &chatService{model: model, metrics: metrics, logger: logger}
}

// History implements ChatService.
func (s *chatService) History(ctx context.Context, sess *session.Session) []domain.ChatMessage {
	if len(sess.Chat) == 0 {
		sess.Chat = domain.NewChatHistory()
	}
	return sess.Chat
}

// Send implements ChatService. A model failure is answered with an apology
// turn rather than an error.
func (s *chatService) Send(ctx context.Context, sess *session.Session, text string) ([]domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if s.model == nil {
		return nil, ErrChatDisabled
	}

	history := append(s.History(ctx, sess), domain.ChatMessage{Role: domain.ChatRoleUser, Text: text})

	reply, err := s.model.Reply(ctx, history)
	if err != nil {
		s.logger.ErrorContext(ctx, "chat model call failed", "session_id", sess.ID, "error", err)
		s.metrics.ChatTurn("error")
		reply = domain.ChatApology
	} else {
		s.metrics.ChatTurn("ok")
	}

	history = append(history, domain.ChatMessage{Role: domain.ChatRoleModel, Text: reply})
	if len(history) > maxChatHistory {
		history = append([]domain.ChatMessage(nil), history[len(history)-maxChatHistory:]...)
	}
	sess.Chat = history
	return history, nil
}
