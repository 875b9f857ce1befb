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
	"golang.org/x/oauth2"
)

// ChatOptions configures an OpenAI-compatible chat completions client
type ChatOptions struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	// JSONMode asks the server to constrain output to a JSON object
	JSONMode bool
}

// ChatClient talks to OpenAI, Groq and any local server exposing /chat/completions
type ChatClient struct {
	opts       ChatOptions
	client     *http.Client
	newBackOff func() backoff.BackOff
}

// NewChatClient creates a chat client. An empty API key sends unauthenticated requests.
func NewChatClient(opts ChatOptions) *ChatClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	client := &http.Client{Timeout: opts.Timeout}
	if opts.APIKey != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.APIKey})
		client = oauth2.NewClient(context.Background(), src)
		client.Timeout = opts.Timeout
	}

	return &ChatClient{opts: opts, client: client, newBackOff: defaultBackOff}
}

// ChatMessage is a single chat turn
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string            `json:"model,omitempty"`
	Messages       []ChatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Provider names the backend this client talks to
func (c *ChatClient) Provider() string {
	return c.opts.Provider
}

// Complete sends the system contract and user text, returning the assistant content
func (c *ChatClient) Complete(ctx context.Context, systemContract, userText string) (string, error) {
	reqBody := ChatRequest{
		Model: c.opts.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemContract},
			{Role: "user", Content: userText},
		},
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	}
	if c.opts.JSONMode {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	var content string
	err = withRetry(ctx, c.newBackOff, func() error {
		content, err = c.send(ctx, b)
		return err
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *ChatClient) send(ctx context.Context, body []byte) (string, error) {
	endpoint := c.opts.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", c.opts.Provider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &StatusError{Provider: c.opts.Provider, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var cr ChatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("parsing %s response: %w", c.opts.Provider, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.opts.Provider)
	}
	return cr.Choices[0].Message.Content, nil
}
