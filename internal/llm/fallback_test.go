package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type scriptedClient struct {
	response string
	err      error
	calls    int
}

func (s *scriptedClient) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestFallbackFirstSuccessWins(t *testing.T) {
	a := &scriptedClient{err: errors.New("quota exceeded")}
	b := &scriptedClient{err: errors.New("timeout")}
	c := &scriptedClient{response: `{"title": "ok"}`}

	chain := NewFallback([]Attempt{
		{Model: "model-a", Client: a},
		{Model: "model-b", Client: b},
		{Model: "model-c", Client: c},
	})

	out, err := chain.Call(context.Background(), "prompt")

	assert.NoError(t, err)
	assert.Equal(t, `{"title": "ok"}`, out)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, 1, c.calls)
}

func TestFallbackPrimarySuccessSkipsRest(t *testing.T) {
	a := &scriptedClient{response: "primary"}
	b := &scriptedClient{response: "backup"}

	chain := NewFallback([]Attempt{
		{Model: "model-a", Client: a},
		{Model: "model-b", Client: b},
	})

	out, err := chain.Call(context.Background(), "prompt")

	assert.NoError(t, err)
	assert.Equal(t, "primary", out)
	assert.Equal(t, 0, b.calls)
}

func TestFallbackAllModelsExhausted(t *testing.T) {
	a := &scriptedClient{err: errors.New("down")}
	b := &scriptedClient{err: errors.New("also down")}

	chain := NewFallback([]Attempt{
		{Model: "model-a", Client: a},
		{Model: "model-b", Client: b},
	})

	_, err := chain.Call(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrAllModelsExhausted)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestFallbackDeduplicatesChain(t *testing.T) {
	a := &scriptedClient{err: errors.New("down")}
	b := &scriptedClient{response: "backup"}

	// model-a appears twice; it must only be attempted once, at the front.
	chain := NewFallback([]Attempt{
		{Model: "model-a", Client: a},
		{Model: "model-a", Client: a},
		{Model: "model-b", Client: b},
	})

	assert.Equal(t, []string{"model-a", "model-b"}, chain.Models())

	out, err := chain.Call(context.Background(), "prompt")

	assert.NoError(t, err)
	assert.Equal(t, "backup", out)
	assert.Equal(t, 1, a.calls)
}
