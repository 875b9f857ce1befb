package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const anthropicVersion = "2023-06-01"

// AnthropicOptions configures the Messages API client
type AnthropicOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// AnthropicClient calls the Anthropic Messages API
type AnthropicClient struct {
	opts       AnthropicOptions
	client     *http.Client
	newBackOff func() backoff.BackOff
}

// NewAnthropicClient creates an Anthropic client
func NewAnthropicClient(opts AnthropicOptions) *AnthropicClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 4096
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.anthropic.com"
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	return &AnthropicClient{
		opts:       opts,
		client:     &http.Client{Timeout: opts.Timeout},
		newBackOff: defaultBackOff,
	}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Provider names the backend this client talks to
func (c *AnthropicClient) Provider() string {
	return "anthropic"
}

// Complete sends the contract as the system prompt and returns the concatenated text blocks
func (c *AnthropicClient) Complete(ctx context.Context, systemContract, userText string) (string, error) {
	b, err := json.Marshal(anthropicRequest{
		Model:       c.opts.Model,
		MaxTokens:   c.opts.MaxTokens,
		System:      systemContract,
		Messages:    []anthropicMessage{{Role: "user", Content: userText}},
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		return "", err
	}

	var text string
	err = withRetry(ctx, c.newBackOff, func() error {
		text, err = c.send(ctx, b)
		return err
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *AnthropicClient) send(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.opts.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Anthropic API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: "anthropic", StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("parsing Anthropic response: %w", err)
	}

	var sb strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from Anthropic API")
	}
	return sb.String(), nil
}
