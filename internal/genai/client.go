// Package genai is the HTTP boundary to the text-generation service.
// It speaks the chat-completions wire format, which covers OpenAI,
// OpenRouter, vLLM, Ollama and other compatible servers.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"debrief/internal/fault"
)

// Client is a minimal chat-completions client. One instance is safe
// for concurrent use; per-call state lives in the request.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	jsonMode    bool
	headers     map[string]string
	httpClient  *http.Client
	logger      *slog.Logger
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	model       string
	temperature float64
	jsonMode    bool
	headers     map[string]string
	httpClient  *http.Client
	logger      *slog.Logger
	timeout     time.Duration
}

// New creates a Client for the given chat-completions endpoint.
// The apiKey is sent as a bearer Authorization header on every request.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("genai: baseURL is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{temperature: 0.3}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Copy a caller-supplied client so setting the timeout never
	// mutates a client shared with other code.
	httpClient := &http.Client{}
	if cfg.httpClient != nil {
		clone := *cfg.httpClient
		httpClient = &clone
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       cfg.model,
		temperature: cfg.temperature,
		jsonMode:    cfg.jsonMode,
		headers:     cfg.headers,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// WithModel sets the model identifier sent with every request.
func WithModel(model string) Option {
	return func(cfg *clientConfig) error {
		cfg.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(cfg *clientConfig) error {
		cfg.temperature = t
		return nil
	}
}

// WithJSONMode requests the json_object response format. Only set this
// when the upstream server supports it.
func WithJSONMode(enabled bool) Option {
	return func(cfg *clientConfig) error {
		cfg.jsonMode = enabled
		return nil
	}
}

// WithHeader adds an extra request header, e.g. OpenRouter attribution
// headers (HTTP-Referer, X-Title).
func WithHeader(key, value string) Option {
	return func(cfg *clientConfig) error {
		if cfg.headers == nil {
			cfg.headers = map[string]string{}
		}
		cfg.headers[key] = value
		return nil
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout sets a per-request timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		cfg.timeout = d
		return nil
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat any           `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Chat sends one system instruction plus one user message and returns
// the assistant's text content. Transport failures and non-2xx
// responses surface as *fault.GenerationError with the response body
// kept verbatim.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	const op = "chat completion"

	req := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	if c.jsonMode {
		req.ResponseFormat = map[string]string{"type": "json_object"}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", &fault.GenerationError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &fault.GenerationError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	c.logger.InfoContext(ctx, "generation request",
		"model", c.model, "json_mode", c.jsonMode,
		"system_chars", len(system), "user_chars", len(user))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &fault.GenerationError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &fault.GenerationError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.DebugContext(ctx, "generation response",
		"status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &fault.GenerationError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &fault.GenerationError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &fault.GenerationError{Op: op, Err: fmt.Errorf("response has no choices")}
	}

	return parsed.Choices[0].Message.Content, nil
}
