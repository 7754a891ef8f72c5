package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/breakbetter-backend/internal/platform/httpx"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

// Client is the text generation capability used by the recommendation flow.
type Client interface {
	// Plain text (no schema)
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

// RequestObserver receives one call per GenerateText outcome.
type RequestObserver interface {
	ObserveLLMRequest(model, status string, dur time.Duration, inputTokens, outputTokens int)
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxRetries  int
	Timeout     time.Duration
	Backoff     time.Duration
	Temperature *float64
	Observer    RequestObserver
}

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-3.5-turbo"
)

var ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY")

type client struct {
	log         *logger.Logger
	baseURL     string
	apiKey      string
	model       string
	httpClient  *http.Client
	timeout     time.Duration
	maxRetries  int
	backoff     time.Duration
	temperature *float64
	observer    RequestObserver
	tracer      trace.Tracer
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &client{
		log:         log.With("service", "OpenAIClient"),
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		httpClient:  &http.Client{},
		timeout:     timeout,
		maxRetries:  maxRetries,
		backoff:     backoff,
		temperature: cfg.Temperature,
		observer:    cfg.Observer,
		tracer:      otel.Tracer("breakbetter/openai"),
	}, nil
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *openAIHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (text string, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "openai.chat_completions",
		trace.WithAttributes(attribute.String("llm.model", c.model)))
	start := time.Now()
	var resp chatResponse
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			if errors.Is(err, context.DeadlineExceeded) {
				status = "timeout"
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, status)
		}
		if c.observer != nil {
			c.observer.ObserveLLMRequest(c.model, status, time.Since(start), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
		}
		span.End()
	}()

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
	}

	if err := c.do(ctx, http.MethodPost, "/v1/chat/completions", &req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return "", fmt.Errorf("model refused: %s", msg.Refusal)
	}
	if strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("empty completion content")
	}
	c.log.Debug("OpenAI completion received",
		"model", c.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return msg.Content, nil
}

func (c *client) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

// do sends the request, retrying retryable failures up to maxRetries times
// with exponential backoff. The context deadline bounds the whole loop.
func (c *client) do(ctx context.Context, method, path string, body any, out any) error {
	backoff := c.backoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, method, path, body)
		if err == nil {
			if out == nil {
				return nil
			}
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("openai decode error: %w", uErr)
			}
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))

		c.log.Warn("OpenAI request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		if sErr := httpx.Sleep(ctx, sleepFor); sErr != nil {
			return sErr
		}
		backoff *= 2
	}

	return fmt.Errorf("unreachable retry loop")
}
