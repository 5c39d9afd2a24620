// Package llm talks to an OpenAI-compatible chat-completions gateway.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sales-insights-go/internal/logger"
)

// Provider is the language-model collaborator. Absence of configuration is a
// supported mode, not an error: callers check IsConfigured and degrade.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	IsConfigured() bool
}

// GatewayProvider calls an OpenAI-compatible chat completions endpoint.
type GatewayProvider struct {
	URL    string
	APIKey string
	Model  string
	client *http.Client
}

// NewGatewayProvider builds a provider for the given gateway. URL or key may
// be empty; IsConfigured reports that.
func NewGatewayProvider(url, apiKey, model string, timeout time.Duration) *GatewayProvider {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &GatewayProvider{
		URL:    url,
		APIKey: apiKey,
		Model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

// IsConfigured reports whether the gateway URL and key are set.
func (g *GatewayProvider) IsConfigured() bool {
	return g.URL != "" && g.APIKey != ""
}

// Generate sends the prompt as a single user message and returns
// choices[0].message.content from the gateway response.
func (g *GatewayProvider) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.New().WithComponent("llm-gateway")

	if !g.IsConfigured() {
		return "", fmt.Errorf("llm gateway not configured")
	}

	reqBody := map[string]any{
		"model": g.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.0,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.URL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("llm request failed")
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	log.WithField("http_status", resp.StatusCode).Debug("llm raw response received")

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm gateway returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding llm response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
