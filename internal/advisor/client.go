// Package advisor wraps an OpenAI-compatible chat completion endpoint as
// a best-effort project advisory adapter. Every caller-facing operation
// degrades to deterministic content when the adapter is disabled or fails.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Message is one turn in a chat completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client provides free-text completions from the advisory model.
type Client interface {
	// Complete sends the conversation and returns the model's reply.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Enabled reports whether the client is configured with credentials.
	Enabled() bool
}

type httpClient struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

// NewClient creates a chat completion client. A config without an API
// key yields a client whose Complete always returns ErrDisabled.
func NewClient(cfg Config, log zerolog.Logger) Client {
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		log: log,
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (c *httpClient) Enabled() bool {
	return c.cfg.Enabled()
}

func (c *httpClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if !c.cfg.Enabled() {
		return "", ErrDisabled
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		text, err := c.doRequest(ctx, body)
		if err == nil {
			c.log.Debug().
				Str("model", c.cfg.Model).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Msg("advisory call complete")
			return text, nil
		}
		lastErr = err

		// Credential failures and context expiry will not improve on retry.
		if errors.Is(err, ErrBadCredentials) || ctx.Err() != nil {
			break
		}
	}

	c.log.Warn().
		Err(lastErr).
		Str("model", c.cfg.Model).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("advisory call failed")

	switch {
	case ctx.Err() != nil:
		return "", ErrTimeout
	case errors.Is(lastErr, ErrBadCredentials):
		return "", ErrBadCredentials
	case isConnectionError(lastErr):
		return "", ErrUnavailable
	default:
		return "", fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
}

func (c *httpClient) doRequest(ctx context.Context, body chatRequest) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	switch {
	case httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d", ErrBadCredentials, httpResp.StatusCode)
	case httpResp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("advisory endpoint returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("advisory response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
