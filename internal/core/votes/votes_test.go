package votes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akwamin-eng/asta-engine/internal/core/model"
	"github.com/akwamin-eng/asta-engine/internal/store"
)

func seedProperty(t *testing.T, s *store.MemoryStore, id string) {
	t.Helper()
	_, err := s.InsertProperty(context.Background(), &model.PropertyRecord{
		ID:        id,
		Title:     "Test listing",
		Status:    model.StatusActive,
		CreatedAt: time.Now().UTC(),
	})
	assert.NoError(t, err)
}

func TestFirstVoteRecorded(t *testing.T) {
	s := store.NewMemoryStore()
	seedProperty(t, s, "prop-1")
	agg := NewAggregator(s)

	outcome, err := agg.Cast(context.Background(), "prop-1", "device-1", model.VoteScam)

	assert.NoError(t, err)
	assert.Equal(t, Recorded, outcome.Status)
	assert.Equal(t, 1, outcome.Count)
}

func TestSecondVoteFromSameDeviceIsDuplicate(t *testing.T) {
	s := store.NewMemoryStore()
	seedProperty(t, s, "prop-1")
	agg := NewAggregator(s)

	_, err := agg.Cast(context.Background(), "prop-1", "device-1", model.VoteScam)
	assert.NoError(t, err)

	// Same device, different kind: still a duplicate, counters untouched.
	outcome, err := agg.Cast(context.Background(), "prop-1", "device-1", model.VoteConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, Duplicate, outcome.Status)

	rec, err := s.GetProperty(context.Background(), "prop-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, rec.VotesScam)
	assert.Equal(t, 0, rec.VotesGood)
}

func TestDifferentDevicesCountIndependently(t *testing.T) {
	s := store.NewMemoryStore()
	seedProperty(t, s, "prop-1")
	agg := NewAggregator(s)

	first, err := agg.Cast(context.Background(), "prop-1", "device-1", model.VoteScam)
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Count)

	second, err := agg.Cast(context.Background(), "prop-1", "device-2", model.VoteScam)
	assert.NoError(t, err)
	assert.Equal(t, Recorded, second.Status)
	assert.Equal(t, 2, second.Count)
}

func TestVoteKindsMapToSeparateCounters(t *testing.T) {
	s := store.NewMemoryStore()
	seedProperty(t, s, "prop-1")
	agg := NewAggregator(s)

	_, err := agg.Cast(context.Background(), "prop-1", "d1", model.VoteConfirmed)
	assert.NoError(t, err)
	_, err = agg.Cast(context.Background(), "prop-1", "d2", model.VoteSuspicious)
	assert.NoError(t, err)
	_, err = agg.Cast(context.Background(), "prop-1", "d3", model.VoteScam)
	assert.NoError(t, err)

	rec, err := s.GetProperty(context.Background(), "prop-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, rec.VotesGood)
	assert.Equal(t, 1, rec.VotesBad)
	assert.Equal(t, 1, rec.VotesScam)
}

func TestInvalidKindTouchesNothing(t *testing.T) {
	s := store.NewMemoryStore()
	seedProperty(t, s, "prop-1")
	agg := NewAggregator(s)

	outcome, err := agg.Cast(context.Background(), "prop-1", "device-1", model.VoteKind("upvote"))

	assert.NoError(t, err)
	assert.Equal(t, InvalidKind, outcome.Status)

	// A valid vote from the same device still succeeds.
	valid, err := agg.Cast(context.Background(), "prop-1", "device-1", model.VoteConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, Recorded, valid.Status)
}

func TestVoteOnMissingProperty(t *testing.T) {
	s := store.NewMemoryStore()
	agg := NewAggregator(s)

	outcome, err := agg.Cast(context.Background(), "no-such-property", "device-1", model.VoteScam)

	assert.NoError(t, err)
	assert.Equal(t, NotFound, outcome.Status)
}
