// Package content turns a topic into an Instagram caption and hashtag list.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"instagram_content_ai/pkg/ai"
)

const (
	captionPromptPrefix  = "Write a creative, engaging Instagram caption for: "
	hashtagsPromptPrefix = "Generate 10 trendy and relevant Instagram hashtags for: "
)

// ErrEmptyTopic is returned when the topic is empty or whitespace-only.
var ErrEmptyTopic = errors.New("topic is empty")

// Request is one user trigger: a topic and an optional image.
type Request struct {
	Topic string
	// Image is shown to the user but not sent to the model.
	Image *Image
}

// Result holds the trimmed text returned for one request.
type Result struct {
	Caption  string
	Hashtags string
}

// CaptionPrompt embeds topic verbatim into the caption prompt.
func CaptionPrompt(topic string) string {
	return captionPromptPrefix + topic
}

// HashtagsPrompt embeds topic verbatim into the hashtag prompt.
func HashtagsPrompt(topic string) string {
	return hashtagsPromptPrefix + topic
}

// ValidateTopic reports ErrEmptyTopic for blank topics.
func ValidateTopic(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return ErrEmptyTopic
	}
	return nil
}

// Requester issues the caption and hashtag calls for a topic.
type Requester struct {
	provider ai.Provider
}

// NewRequester creates a Requester backed by provider.
func NewRequester(provider ai.Provider) *Requester {
	return &Requester{provider: provider}
}

// Generate runs the caption call and then the hashtag call. A failure in
// either aborts the request; nothing is retried and no partial result is returned.
func (r *Requester) Generate(ctx context.Context, req Request) (Result, error) {
	if err := ValidateTopic(req.Topic); err != nil {
		return Result{}, err
	}

	slog.Info("content_generate_start",
		"topic_length", len(req.Topic),
		"has_image", req.Image != nil,
	)

	caption, err := r.complete(ctx, CaptionPrompt(req.Topic))
	if err != nil {
		slog.Error("content_caption_failed", "error", err)
		return Result{}, fmt.Errorf("caption: %w", err)
	}

	hashtags, err := r.complete(ctx, HashtagsPrompt(req.Topic))
	if err != nil {
		slog.Error("content_hashtags_failed", "error", err)
		return Result{}, fmt.Errorf("hashtags: %w", err)
	}

	slog.Info("content_generate_done",
		"caption_length", len(caption),
		"hashtags_length", len(hashtags),
	)
	return Result{Caption: caption, Hashtags: hashtags}, nil
}

func (r *Requester) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := r.provider.CreateChatCompletion(ctx, ai.UserPrompt(prompt))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", ai.ErrEmptyResponse
	}
	return text, nil
}
