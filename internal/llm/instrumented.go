package llm

import (
	"context"
	"time"

	"lexiguide/internal/domain"
)

// CallObserver receives one observation per completed LLM call.
type CallObserver interface {
	ObserveLLMCall(kind string, outcome string, duration time.Duration)
}

// Instrumented reports every call of the wrapped client to an observer and logger.
type Instrumented struct {
	next     domain.LLMClient
	observer CallObserver
	logger   domain.Logger
}

func NewInstrumented(next domain.LLMClient, observer CallObserver, logger domain.Logger) *Instrumented {
	return &Instrumented{next: next, observer: observer, logger: logger}
}

func (i *Instrumented) Model() string {
	return i.next.Model()
}

func (i *Instrumented) Complete(ctx context.Context, prompt domain.Prompt) (*domain.Completion, error) {
	start := time.Now()
	completion, err := i.next.Complete(ctx, prompt)
	elapsed := time.Since(start)

	outcome := "success"
	if err != nil {
		outcome = "error"
		i.logger.Error("LLM call failed", err, "kind", prompt.Kind, "model", i.next.Model(), "duration_ms", elapsed.Milliseconds())
	} else {
		i.logger.Debug("LLM call completed", "kind", prompt.Kind, "model", completion.Model,
			"prompt_tokens", completion.PromptTokens, "completion_tokens", completion.CompletionTokens,
			"duration_ms", elapsed.Milliseconds())
	}
	if i.observer != nil {
		i.observer.ObserveLLMCall(string(prompt.Kind), outcome, elapsed)
	}
	return completion, err
}
