// Package ai wraps the chat-completion API behind the small surface the
// assistant gateway needs.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/helpdesk-kit/support-service/internal/config"
	"github.com/helpdesk-kit/support-service/internal/domain"
)

// Client is the completion surface used by the chat service.
type Client interface {
	// Complete runs one conversational turn under the given system prompt.
	Complete(ctx context.Context, system string, history []domain.ChatTurn, message string) (string, error)
	// DraftTicket derives a ticket title and description from the
	// conversation via a JSON-mode completion.
	DraftTicket(ctx context.Context, history []domain.ChatTurn) (*domain.TicketDraft, error)
}

// OpenAIClient implements Client against the OpenAI chat-completions API.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient constructs the client.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		client:    openai.NewClient(cfg.APIKey),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, system string, history []domain.ChatTurn, message string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	messages = append(messages, turnsToMessages(history)...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) DraftTicket(ctx context.Context, history []domain.ChatTurn) (*domain.TicketDraft, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: `Based on the conversation history, create a concise ticket title and description. Return it in JSON format with "title" and "description" fields.`,
	})
	messages = append(messages, turnsToMessages(history)...)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   c.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	var draft struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &draft); err != nil {
		return nil, fmt.Errorf("parse ticket draft: %w", err)
	}
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Description) == "" {
		return nil, fmt.Errorf("ticket draft missing required fields")
	}
	return &domain.TicketDraft{Title: draft.Title, Description: draft.Description}, nil
}

func turnsToMessages(history []domain.ChatTurn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == domain.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}
	return messages
}
