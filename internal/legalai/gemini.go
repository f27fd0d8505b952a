package legalai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls the Gemini generateContent endpoint over plain HTTP.
// Generation parameters are fixed: low temperature for consistent JSON,
// a raised output-token bound to avoid truncation, and medium-and-above
// safety blocking on all four harm categories.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client

	// Stats tracks per-call latency for the /api/stats/llm endpoint.
	Stats *ModelStats
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		Stats: NewModelStats(time.Hour),
	}
}

// NewGeminiClientWithBaseURL points the client at an alternate endpoint.
// Used by tests and by deployments fronted by a proxy.
func NewGeminiClientWithBaseURL(apiKey, model, baseURL string) *GeminiClient {
	c := NewGeminiClient(apiKey, model)
	c.baseURL = baseURL
	return c
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.model
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var blockMediumSettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// Generate sends the prompt and returns the raw generated text. The text is
// not guaranteed to be valid JSON; normalization happens downstream.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.1,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 8192,
		},
		SafetySettings: blockMediumSettings,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if c.Stats != nil {
		c.Stats.Record(time.Since(start).Milliseconds())
	}
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{StatusCode: resp.StatusCode, Message: truncate(string(respBody), 500)}
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", &MalformedEndpointResponse{Reason: "response is not valid JSON"}
	}
	if len(apiResp.Candidates) == 0 || apiResp.Candidates[0].Content == nil || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", &MalformedEndpointResponse{Reason: "missing candidates[0].content.parts"}
	}

	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}

// Close releases idle connections.
func (c *GeminiClient) Close() {
	c.httpClient.CloseIdleConnections()
}

// TransportError is a failed HTTP exchange with the model endpoint: a
// network error or a non-success status. Recoverable at the pipeline level.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model transport: %v", e.Err)
	}
	return fmt.Sprintf("model transport: status %d: %s", e.StatusCode, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedEndpointResponse is a success status whose payload lacks the
// expected generated-text field. Recoverable at the pipeline level.
type MalformedEndpointResponse struct {
	Reason string
}

func (e *MalformedEndpointResponse) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
