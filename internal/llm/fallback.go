package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrAllModelsExhausted is returned when every model in the chain failed.
var ErrAllModelsExhausted = errors.New("all models exhausted")

// Attempt pairs a model identifier with the client that serves it.
type Attempt struct {
	Model  string
	Client LLMClient
}

// Fallback tries an ordered chain of models, one attempt each, and returns
// the first successful generation verbatim.
type Fallback struct {
	attempts []Attempt
}

// NewFallback deduplicates the chain, keeping each model at its earliest
// position.
func NewFallback(attempts []Attempt) *Fallback {
	var chain []Attempt
	seen := make(map[string]bool)
	for _, a := range attempts {
		if seen[a.Model] {
			continue
		}
		seen[a.Model] = true
		chain = append(chain, a)
	}
	return &Fallback{attempts: chain}
}

// Models returns the deduplicated chain order.
func (f *Fallback) Models() []string {
	models := make([]string, len(f.attempts))
	for i, a := range f.attempts {
		models[i] = a.Model
	}
	return models
}

func (f *Fallback) Call(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, a := range f.attempts {
		response, err := a.Client.Generate(ctx, prompt)
		if err != nil {
			log.Printf("model %s failed: %v", a.Model, err)
			lastErr = err
			continue
		}
		return response, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: last error: %v", ErrAllModelsExhausted, lastErr)
	}
	return "", ErrAllModelsExhausted
}
