package providers

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"instagram_content_ai/pkg/ai"
	"instagram_content_ai/pkg/config"

	"google.golang.org/genai"
)

type stubGoogleModelsClient struct {
	generateResp *genai.GenerateContentResponse
	generateErr  error

	calls       int
	gotModel    string
	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig
	gotDeadline bool
}

func (s *stubGoogleModelsClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.calls++
	s.gotModel = model
	s.gotContents = contents
	s.gotConfig = cfg
	_, s.gotDeadline = ctx.Deadline()
	return s.generateResp, s.generateErr
}

func googleTextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role: genai.RoleModel,
					Parts: []*genai.Part{
						{Text: text},
					},
				},
			},
		},
	}
}

func TestNewGoogleProvider_RequiresAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.Google.APIKey = "  "

	_, err := NewGoogleProvider(ai.ProviderConfig{
		Type:   ai.ProviderGoogle,
		Config: cfg,
	})
	if err == nil {
		t.Fatal("Expected error when Google API key is missing")
	}
}

func TestNewGoogleProvider_DefaultFallbacks(t *testing.T) {
	origNewClient := newGoogleClient
	defer func() {
		newGoogleClient = origNewClient
	}()

	var gotClientCfg *genai.ClientConfig
	newGoogleClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
		gotClientCfg = cfg
		return &genai.Client{}, nil
	}

	cfg := config.Default()
	cfg.Providers.Google.APIKey = "test-google-key"
	cfg.Providers.Google.Model = ""
	cfg.Providers.Google.Temperature = 0.55
	cfg.Providers.Google.MaxTokens = 2048
	cfg.Providers.Google.APITimeoutSeconds = 0

	provider, err := NewGoogleProvider(ai.ProviderConfig{
		Type:   ai.ProviderGoogle,
		Config: cfg,
	})
	if err != nil {
		t.Fatalf("NewGoogleProvider() error: %v", err)
	}

	googleProvider, ok := provider.(*GoogleProvider)
	if !ok {
		t.Fatalf("Expected *GoogleProvider, got %T", provider)
	}
	if gotClientCfg == nil {
		t.Fatal("Expected Google client config to be captured")
	}
	if gotClientCfg.APIKey != "test-google-key" {
		t.Fatalf("Expected API key to be forwarded, got %q", gotClientCfg.APIKey)
	}
	if gotClientCfg.Backend != genai.BackendGeminiAPI {
		t.Fatalf("Expected BackendGeminiAPI, got %q", gotClientCfg.Backend)
	}
	if googleProvider.defaultModel != googleDefaultModel {
		t.Fatalf("Expected default model %q, got %q", googleDefaultModel, googleProvider.defaultModel)
	}
	if googleProvider.defaultTimeout != 60*time.Second {
		t.Fatalf("Expected default timeout 60s, got %s", googleProvider.defaultTimeout)
	}
	if googleProvider.defaultTemperature != 0.55 {
		t.Fatalf("Expected default temperature 0.55, got %f", googleProvider.defaultTemperature)
	}
	if googleProvider.defaultMaxTokens != 2048 {
		t.Fatalf("Expected default max tokens 2048, got %d", googleProvider.defaultMaxTokens)
	}
}

func TestNewGoogleProvider_ClientError(t *testing.T) {
	origNewClient := newGoogleClient
	defer func() {
		newGoogleClient = origNewClient
	}()

	newGoogleClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
		return nil, errors.New("no network")
	}

	cfg := config.Default()
	cfg.Providers.Google.APIKey = "k"
	if _, err := NewGoogleProvider(ai.ProviderConfig{Type: ai.ProviderGoogle, Config: cfg}); err == nil {
		t.Fatal("Expected client creation error to be returned")
	}
}

func TestGoogleProvider_CreateChatCompletion_SinglePrompt(t *testing.T) {
	stub := &stubGoogleModelsClient{
		generateResp: googleTextResponse("  caption text \n"),
	}
	provider := &GoogleProvider{
		models:         stub,
		defaultModel:   "gemini-1.5-flash",
		defaultTimeout: time.Minute,
	}

	resp, err := provider.CreateChatCompletion(context.Background(), ai.UserPrompt("Write a caption"))
	if err != nil {
		t.Fatalf("CreateChatCompletion() error: %v", err)
	}

	// Trimming is the caller's job.
	if resp.Content != "  caption text \n" {
		t.Fatalf("Expected raw response content, got %q", resp.Content)
	}
	if stub.gotModel != "gemini-1.5-flash" {
		t.Fatalf("Expected default model, got %q", stub.gotModel)
	}
	if len(stub.gotContents) != 1 || stub.gotContents[0].Role != genai.RoleUser {
		t.Fatalf("Expected one user content, got %+v", stub.gotContents)
	}
	if got := stub.gotContents[0].Parts[0].Text; got != "Write a caption" {
		t.Fatalf("Expected prompt to be forwarded verbatim, got %q", got)
	}
	if stub.gotConfig.Temperature != nil {
		t.Fatal("Expected temperature to be left unset when zero")
	}
	if stub.gotConfig.SystemInstruction != nil {
		t.Fatal("Expected no system instruction")
	}
	if !stub.gotDeadline {
		t.Fatal("Expected call context to carry the default timeout")
	}
}

func TestGoogleProvider_CreateChatCompletion_MapsMessages(t *testing.T) {
	stub := &stubGoogleModelsClient{
		generateResp: googleTextResponse("ok"),
	}
	provider := &GoogleProvider{
		models:             stub,
		defaultModel:       "google-default",
		defaultTemperature: 0.7,
		defaultMaxTokens:   1024,
	}

	temp := 0.2
	maxTokens := 42
	resp, err := provider.CreateChatCompletion(context.Background(), ai.ChatRequest{
		Model: "override-model",
		Messages: []ai.Message{
			{Role: "system", Content: "system prompt"},
			{Role: "user", Content: "user prompt"},
			{Role: "assistant", Content: "assistant prompt"},
			{Role: "tool", Content: "unknown role maps to user"},
		},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion() error: %v", err)
	}

	if resp.Model != "override-model" {
		t.Fatalf("Expected response model %q, got %q", "override-model", resp.Model)
	}
	if len(stub.gotContents) != 3 {
		t.Fatalf("Expected 3 non-system messages, got %d", len(stub.gotContents))
	}
	if stub.gotContents[1].Role != genai.RoleModel {
		t.Fatalf("Expected second content role model, got %q", stub.gotContents[1].Role)
	}
	if stub.gotContents[2].Role != genai.RoleUser {
		t.Fatalf("Expected unknown role to map to user, got %q", stub.gotContents[2].Role)
	}
	if stub.gotConfig.SystemInstruction == nil || stub.gotConfig.SystemInstruction.Parts[0].Text != "system prompt" {
		t.Fatal("Expected system instruction to be set")
	}
	if stub.gotConfig.Temperature == nil || math.Abs(float64(*stub.gotConfig.Temperature)-0.2) > 0.0001 {
		t.Fatalf("Expected temperature override 0.2, got %v", stub.gotConfig.Temperature)
	}
	if stub.gotConfig.MaxOutputTokens != 42 {
		t.Fatalf("Expected max output tokens 42, got %d", stub.gotConfig.MaxOutputTokens)
	}
}

func TestGoogleProvider_CreateChatCompletion_FiltersThoughtParts(t *testing.T) {
	stub := &stubGoogleModelsClient{
		generateResp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content: &genai.Content{
						Role: genai.RoleModel,
						Parts: []*genai.Part{
							{Text: "internal", Thought: true},
							{Text: "visible "},
							nil,
							{Text: "answer"},
						},
					},
				},
			},
		},
	}
	provider := &GoogleProvider{models: stub, defaultModel: "google-default"}

	resp, err := provider.CreateChatCompletion(context.Background(), ai.UserPrompt("hello"))
	if err != nil {
		t.Fatalf("CreateChatCompletion() error: %v", err)
	}
	if resp.Content != "visible answer" {
		t.Fatalf("Expected thought parts to be filtered, got %q", resp.Content)
	}
}

func TestGoogleProvider_CreateChatCompletion_EmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{
			name: "no candidates",
			resp: &genai.GenerateContentResponse{},
		},
		{
			name: "blocked prompt",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			},
			want: "prompt blocked (SAFETY)",
		},
		{
			name: "only thought parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{
						Content: &genai.Content{
							Role:  genai.RoleModel,
							Parts: []*genai.Part{{Text: "internal", Thought: true}},
						},
						FinishReason: genai.FinishReasonSafety,
					},
				},
			},
			want: "finish reason SAFETY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubGoogleModelsClient{generateResp: tt.resp}
			provider := &GoogleProvider{models: stub, defaultModel: "google-default"}

			resp, err := provider.CreateChatCompletion(context.Background(), ai.UserPrompt("hello"))
			if !errors.Is(err, ai.ErrEmptyResponse) {
				t.Fatalf("Expected ErrEmptyResponse, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Expected error to mention %q, got %q", tt.want, err.Error())
			}
			if resp.Content != "" {
				t.Fatalf("Expected no content, got %q", resp.Content)
			}
		})
	}
}

func TestGoogleProvider_CreateChatCompletion_PropagatesError(t *testing.T) {
	callErr := errors.New("quota exceeded")
	stub := &stubGoogleModelsClient{generateErr: callErr}
	provider := &GoogleProvider{models: stub, defaultModel: "google-default"}

	_, err := provider.CreateChatCompletion(context.Background(), ai.UserPrompt("hello"))
	if !errors.Is(err, callErr) {
		t.Fatalf("Expected service error to propagate, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("Expected exactly one call without retry, got %d", stub.calls)
	}
}

func TestGoogleProvider_CreateChatCompletion_RequiresMessages(t *testing.T) {
	stub := &stubGoogleModelsClient{}
	provider := &GoogleProvider{models: stub, defaultModel: "google-default"}

	if _, err := provider.CreateChatCompletion(context.Background(), ai.ChatRequest{}); err == nil {
		t.Fatal("Expected error for empty messages")
	}
	if _, err := provider.CreateChatCompletion(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: "system", Content: "only system"}},
	}); err == nil {
		t.Fatal("Expected error when only system messages are present")
	}
	if stub.calls != 0 {
		t.Fatalf("Expected no outbound call, got %d", stub.calls)
	}
}
