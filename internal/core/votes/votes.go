package votes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akwamin-eng/asta-engine/internal/core/model"
	"github.com/akwamin-eng/asta-engine/internal/store"
)

type Status string

const (
	Recorded    Status = "recorded"
	Duplicate   Status = "duplicate"
	NotFound    Status = "not_found"
	InvalidKind Status = "invalid_kind"
)

// Outcome is the result of a vote attempt. Count is only meaningful when
// Status is Recorded.
type Outcome struct {
	Status Status `json:"status"`
	Count  int    `json:"count,omitempty"`
}

// Aggregator enforces one vote per (property, device) pair and keeps the
// aggregate counters in step. Atomicity lives in the store: the ballot
// uniqueness constraint and the single-statement counter increment.
type Aggregator struct {
	Store store.PropertyStore
}

func NewAggregator(s store.PropertyStore) *Aggregator {
	return &Aggregator{Store: s}
}

func (a *Aggregator) Cast(ctx context.Context, propertyID, deviceID string, kind model.VoteKind) (Outcome, error) {
	column, ok := kind.CounterColumn()
	if !ok {
		return Outcome{Status: InvalidKind}, nil
	}

	ballot := &model.Ballot{
		ID:         uuid.New().String(),
		PropertyID: propertyID,
		DeviceID:   deviceID,
		Kind:       kind,
		CreatedAt:  time.Now().UTC(),
	}

	err := a.Store.InsertBallot(ctx, ballot)
	switch {
	case errors.Is(err, store.ErrDuplicateBallot):
		return Outcome{Status: Duplicate}, nil
	case errors.Is(err, store.ErrNotFound):
		return Outcome{Status: NotFound}, nil
	case err != nil:
		return Outcome{}, fmt.Errorf("failed to record ballot: %w", err)
	}

	count, err := a.Store.IncrementVote(ctx, propertyID, column)
	if errors.Is(err, store.ErrNotFound) {
		return Outcome{Status: NotFound}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to increment counter: %w", err)
	}

	return Outcome{Status: Recorded, Count: count}, nil
}
