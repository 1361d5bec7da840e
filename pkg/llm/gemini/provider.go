package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Tigierre/contractguardian/pkg/llm"
)

type GeminiProvider struct {
	APIKey    string
	ModelName string
	Client    *http.Client
}

// Ensure GeminiProvider implements StructuredProvider
var _ llm.StructuredProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []*geminiPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []*geminiContent        `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) ExtractStructured(ctx context.Context, systemPrompt, userPrompt string, out any, opts ...llm.Option) error {
	options := &llm.Options{
		Temperature: 0.2, // Low default: extraction, not creative writing
	}
	for _, opt := range opts {
		opt(options)
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []*geminiPart{{Text: systemPrompt}},
		},
		Contents: []*geminiContent{
			{
				Parts: []*geminiPart{{Text: userPrompt}},
				Role:  "user",
			},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      options.Temperature,
			MaxOutputTokens:  options.MaxTokens,
			ResponseMimeType: "application/json",
		},
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return llm.NewAIError(llm.KindMalformedRequest, "create request", err)
	}
	req.Header.Set("x-goog-api-key", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return llm.NewAIError(llm.KindConnection, "gemini request failed", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return llm.NewAIError(llm.KindConnection, "read response", err)
	}

	if res.StatusCode != http.StatusOK {
		return classifyStatus(res.StatusCode, resBody)
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return llm.NewAIError(llm.KindParseError, "unmarshal response envelope", err)
	}
	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return llm.NewAIError(llm.KindParseError, "empty candidates in response", nil)
	}

	return llm.UnmarshalModelJSON(geminiRes.Candidates[0].Content.Parts[0].Text, out)
}

func classifyStatus(status int, body []byte) error {
	msg := fmt.Sprintf("status %d: %s", status, string(body))
	switch {
	case status == http.StatusTooManyRequests:
		return llm.NewAIError(llm.KindRateLimit, msg, nil)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return llm.NewAIError(llm.KindAuthentication, msg, nil)
	case status == http.StatusBadRequest:
		return llm.NewAIError(llm.KindMalformedRequest, msg, nil)
	case status >= 500:
		return llm.NewAIError(llm.KindConnection, msg, nil)
	default:
		return llm.NewAIError(llm.KindUnknown, msg, nil)
	}
}
