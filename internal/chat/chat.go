// Package chat talks to the generative model behind the storefront assistant.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dukerupert/gymsup/internal/domain"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// SystemInstruction scopes the assistant to the store and forces Vietnamese replies.
const SystemInstruction = "You are a friendly and knowledgeable AI assistant for GymSup, an e-commerce store " +
	"specializing in gym supplements. Your role is to help users find products, answer questions about " +
	"supplements like whey protein, creatine, mass gainers, and provide general fitness advice. Keep your " +
	"answers concise, helpful, and focused on the products and information relevant to a gym supplement " +
	"store. Do not answer questions outside of this scope. All your responses must be in Vietnamese."

// ErrEmptyReply is returned when the model produced no text.
var ErrEmptyReply = errors.New("chat: model returned an empty reply")

// Model produces the next assistant turn for a conversation. The last
// message of history is the user's new input.
type Model interface {
	Reply(ctx context.Context, history []domain.ChatMessage) (string, error)
}

// Config holds assistant configuration.
type Config struct {
	APIKey string
	Model  string
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}

// =============================================================================
// GOOGLE GENAI
// =============================================================================

// GenAIModel answers with Google's Gemini API.
type GenAIModel struct {
	client *genai.Client
	model  string
}

// NewGenAIModel creates a Gemini-backed model.
func NewGenAIModel(ctx context.Context, cfg Config) (*GenAIModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIModel{client: client, model: model}, nil
}

// Reply implements Model.
func (m *GenAIModel) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	result, err := m.client.Models.GenerateContent(ctx,
		m.model,
		Contents(history),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

// Contents converts the stored conversation into model input. The greeting
// is display-only, so leading model turns are dropped: a conversation sent
// to the model must open with the user.
func Contents(history []domain.ChatMessage) []*genai.Content {
	start := 0
	for start < len(history) && history[start].Role != domain.ChatRoleUser {
		start++
	}

	contents := make([]*genai.Content, 0, len(history)-start)
	for _, msg := range history[start:] {
		role := genai.Role(genai.RoleUser)
		if msg.Role == domain.ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}
	return contents
}

// =============================================================================
// MOCK
// =============================================================================

// MockModel is a Model for tests.
type MockModel struct {
	ReplyFunc func(ctx context.Context, history []domain.ChatMessage) (string, error)
}

// Reply implements Model.
func (m *MockModel) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, history)
	}
	return "", ErrEmptyReply
}
