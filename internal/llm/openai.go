package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"topicscope/internal/resilience/circuitbreaker"
	"topicscope/internal/resilience/retry"
)

// OpenAI implements Client against OpenAI's chat completion API, guarded by
// the same circuit breaker and retry policy the original summarizer used for
// its AI API calls.
type OpenAI struct {
	client         *openai.Client
	model          string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	timeout        time.Duration
}

// NewOpenAI builds an OpenAI client for the given model (e.g. "gpt-4o-mini"
// for the primary arm, a cheaper model for the fallback arm).
func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		client:         openai.NewClient(apiKey),
		model:          model,
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		timeout:        60 * time.Second,
	}
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var result string
	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doComplete(ctx, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("openai completion failed after retries: %w", retryErr)
	}
	return result, nil
}

func (o *OpenAI) doComplete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    "user",
			Content: prompt,
		}},
	})
	duration := time.Since(start)
	if err != nil {
		slog.ErrorContext(ctx, "openai completion failed",
			slog.String("model", o.model),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}
	slog.InfoContext(ctx, "openai completion succeeded",
		slog.String("model", o.model),
		slog.Duration("duration", duration))
	return resp.Choices[0].Message.Content, nil
}
