// Package rephrase is an HTTP client for the standalone text rephrasing
// service. The legal edit pipeline consults it only when the model's JSON
// output cannot be repaired.
package rephrase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client communicates with the rephrasing service HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// rephraseRequest is the body for POST /rephrase.
type rephraseRequest struct {
	Text string `json:"text"`
}

type rephraseResponse struct {
	RephrasedText string `json:"rephrased_text"`
}

// Rephrase submits plain text and returns the rewritten version.
func (c *Client) Rephrase(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(rephraseRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal rephrase request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rephrase", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("rephrase: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("rephrase: status %d: %s", resp.StatusCode, string(respBody))
	}

	var out rephraseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode rephrase response: %w", err)
	}
	return out.RephrasedText, nil
}
