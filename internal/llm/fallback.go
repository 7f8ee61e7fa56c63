package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"topicscope/internal/domain/entity"
	httphandler "topicscope/internal/handler/http"
)

// Fallback wraps a primary and a secondary (smaller/cheaper) Client,
// implementing the automatic one-time downgrade of spec §7: a primary-model
// error triggers exactly one retry against the fallback model; if that also
// fails, the error returned wraps entity.ErrLLMFailure so callers can surface
// the required human-readable apology and set an error field, never
// fabricating a result.
type Fallback struct {
	Primary   Client
	Secondary Client
	Logger    *slog.Logger
}

// NewFallback builds a Fallback. secondary may be nil, in which case a
// primary failure returns immediately — there is no smaller model configured
// to downgrade to.
func NewFallback(primary, secondary Client, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{Primary: primary, Secondary: secondary, Logger: logger}
}

func (f *Fallback) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := f.Primary.Complete(ctx, prompt)
	if err == nil {
		httphandler.RecordLLMCall("primary", true)
		return out, nil
	}
	httphandler.RecordLLMCall("primary", false)
	f.Logger.Warn("primary llm call failed, downgrading", slog.String("error", err.Error()))

	if f.Secondary == nil {
		return "", fmt.Errorf("%w: primary failed and no fallback configured: %v", entity.ErrLLMFailure, err)
	}
	out, secErr := f.Secondary.Complete(ctx, prompt)
	if secErr == nil {
		httphandler.RecordLLMCall("secondary", true)
		return out, nil
	}
	httphandler.RecordLLMCall("secondary", false)
	f.Logger.Warn("fallback llm call also failed", slog.String("error", secErr.Error()))
	return "", fmt.Errorf("%w: %v", entity.ErrLLMFailure, errors.Join(err, secErr))
}
