package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"topicscope/internal/resilience/circuitbreaker"
	"topicscope/internal/resilience/retry"
)

// Claude implements Client against Anthropic's Messages API.
type Claude struct {
	client         anthropic.Client
	model          string
	maxTokens      int64
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	timeout        time.Duration
}

// NewClaude builds a Claude client. model lets the caller pick the small
// fallback model for the downgrade arm distinctly from the primary.
func NewClaude(apiKey, model string) *Claude {
	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:          model,
		maxTokens:      1024,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		timeout:        60 * time.Second,
	}
}

func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var result string
	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doComplete(ctx, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("claude completion failed after retries: %w", retryErr)
	}
	return result, nil
}

func (c *Claude) doComplete(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.New().String()
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	duration := time.Since(start)
	if err != nil {
		slog.ErrorContext(ctx, "claude completion failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}
	slog.InfoContext(ctx, "claude completion succeeded",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration))
	return textBlock.Text, nil
}
