// Package gemini implements the model-client boundary against Google's
// Gemini generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"invana/internal/config"
	"invana/internal/domain"
	"invana/internal/port"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client calls the Gemini generateContent endpoint. It sends the prompt
// as the system instruction, the document as the single user part, and
// always requests deterministic generation (temperature 0, low thinking
// effort). Exactly one provider request per Generate call; no retries.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Gemini-backed model client.
func NewClient(cfg *config.GeminiConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.GeminiConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.GeminiConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	encoded := base64.StdEncoding.EncodeToString(input.Document)

	generationConfig := map[string]interface{}{
		"temperature": 0,
		"thinkingConfig": map[string]interface{}{
			"thinkingLevel": "low",
		},
	}
	if input.JSONMode {
		generationConfig["responseMimeType"] = "application/json"
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{
						"inline_data": map[string]interface{}{
							"mime_type": input.ContentType,
							"data":      encoded,
						},
					},
				},
			},
		},
		"systemInstruction": map[string]interface{}{
			"parts": []map[string]interface{}{
				{"text": input.SystemPrompt},
			},
		},
		"generationConfig": generationConfig,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.NewModelInvocationError("gemini", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewModelInvocationError("gemini", resp.StatusCode, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		invErr := domain.NewModelInvocationError("gemini", resp.StatusCode,
			fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500)))
		if resp.StatusCode == http.StatusTooManyRequests {
			invErr.RetryAfter = retryAfter(resp.Header.Get("Retry-After"))
		}
		return nil, invErr
	}

	return parseGenerateResponse(respBody)
}

// generateResponse models the generateContent API response.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount        int `json:"promptTokenCount"`
		CandidatesTokenCount    int `json:"candidatesTokenCount"`
		TotalTokenCount         int `json:"totalTokenCount"`
		CachedContentTokenCount int `json:"cachedContentTokenCount"`
		ThoughtsTokenCount      int `json:"thoughtsTokenCount"`
	} `json:"usageMetadata"`
}

func parseGenerateResponse(body []byte) (*port.GenerateOutput, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewModelInvocationError("gemini", http.StatusOK, fmt.Errorf("unmarshaling response: %w", err))
	}

	if len(resp.Candidates) == 0 {
		return nil, domain.NewModelInvocationError("gemini", http.StatusOK, fmt.Errorf("empty response from API: no candidates"))
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, domain.NewModelInvocationError("gemini", http.StatusOK, fmt.Errorf("empty response from API: no parts"))
	}

	// Absent cached/thoughts counters decode to zero, which is exactly
	// the telemetry default the record carries.
	usage := domain.TokenUsage{
		PromptTokens:   resp.UsageMetadata.PromptTokenCount,
		OutputTokens:   resp.UsageMetadata.CandidatesTokenCount,
		TotalTokens:    resp.UsageMetadata.TotalTokenCount,
		CachedTokens:   resp.UsageMetadata.CachedContentTokenCount,
		ThoughtsTokens: resp.UsageMetadata.ThoughtsTokenCount,
	}

	return &port.GenerateOutput{
		Text:  resp.Candidates[0].Content.Parts[0].Text,
		Usage: usage,
	}, nil
}

func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs <= 0 {
		secs = 60
	}
	return time.Duration(secs) * time.Second
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
