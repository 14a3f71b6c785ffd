package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"streetnetwork.app/kinship/common/llm"
)

var ErrEmptyMessage = errors.New("message is required")

const chatbotSystemPrompt = `You are an invoice information extraction agent. Your only task is to extract and return 3 pieces of information in JSON format:
1. recipient: The name of who the invoice is for
2. description: A brief description of the service/object
3. suggested_name: A clean, formatted name for the invoice (No underscores, spaces if needed)

Return ONLY the JSON object, nothing else.`

// Extraction is the structured answer the chatbot returns.
type Extraction struct {
	Recipient     string `json:"recipient" jsonschema:"description=Who the invoice is for"`
	Description   string `json:"description" jsonschema:"description=Brief description of the service or object"`
	SuggestedName string `json:"suggested_name" jsonschema:"description=Clean invoice name without underscores"`
}

type ChatbotReply struct {
	Message    string
	Extraction Extraction
}

type ChatbotService interface {
	Extract(ctx context.Context, message string) (*ChatbotReply, error)
}

type chatbotService struct {
	client    llm.Client
	maxTokens int
}

// NewChatbotService wraps client; a nil client answers ErrNotConfigured.
func NewChatbotService(client llm.Client, maxTokens int) ChatbotService {
	return &chatbotService{client: client, maxTokens: maxTokens}
}

func (s *chatbotService) Extract(ctx context.Context, message string) (*ChatbotReply, error) {
	if s.client == nil {
		return nil, fmt.Errorf("chatbot %w", ErrNotConfigured)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	var extraction Extraction
	resp, err := s.client.Chat(ctx, llm.Request{
		SystemPrompt: chatbotSystemPrompt,
		UserPrompt:   message,
		SchemaName:   "invoice_extraction",
		Schema:       llm.GenerateSchema[Extraction](),
		MaxTokens:    s.maxTokens,
		Temperature:  llm.Temp(0.3),
	}, &extraction)
	if err != nil {
		slog.ErrorContext(ctx, "chatbot completion failed",
			"error", err,
			"model", s.client.Model())
		return nil, fmt.Errorf("chatbot completion: %w", err)
	}

	return &ChatbotReply{Message: resp.Content, Extraction: extraction}, nil
}
