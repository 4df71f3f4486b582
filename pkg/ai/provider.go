package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model sends back no visible text.
var ErrEmptyResponse = errors.New("empty response from model")

// Message represents a single chat message for LLM requests.
type Message struct {
	Role    string // "user" | "assistant" | "system"
	Content string
}

// ChatRequest defines the input to an LLM chat completion.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature *float64
	MaxTokens   *int
}

// ChatResponse is a normalized response from an LLM.
type ChatResponse struct {
	Content string
	Model   string
}

// Provider defines the LLM interface used by the app.
type Provider interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// UserPrompt builds a single-turn request carrying prompt as the only user message.
func UserPrompt(prompt string) ChatRequest {
	return ChatRequest{
		Messages: []Message{{Role: "user", Content: prompt}},
	}
}
