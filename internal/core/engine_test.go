package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akwamin-eng/asta-engine/internal/config"
	"github.com/akwamin-eng/asta-engine/internal/core/extraction"
	"github.com/akwamin-eng/asta-engine/internal/core/model"
	"github.com/akwamin-eng/asta-engine/internal/core/votes"
	"github.com/akwamin-eng/asta-engine/internal/store"
)

const listingJSON = `{
	"title": "Cozy 2BR in Osu",
	"price": 2500,
	"location_name": "Osu",
	"lat": 5.557,
	"long": -0.182,
	"type": "rent",
	"vibe_features": "Pool, Gym",
	"description": "A cozy two bedroom."
}`

func testEngine(s store.PropertyStore, caller extraction.Caller) *Engine {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return NewEngine(s, caller, nil, cfg)
}

func TestProcessListingSaves(t *testing.T) {
	s := store.NewMemoryStore()
	e := testEngine(s, &extraction.MockCaller{Response: listingJSON})

	rec, err := e.ProcessListing(context.Background(), "2BR in Osu with pool and gym")

	assert.NoError(t, err)

	stored, err := s.GetProperty(context.Background(), rec.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Cozy 2BR in Osu", stored.Title)
	assert.Equal(t, model.StatusActive, stored.Status)
}

func TestProcessListingStoreFailure(t *testing.T) {
	s := store.NewMemoryStore()
	s.InsertErr = assert.AnError
	e := testEngine(s, &extraction.MockCaller{Response: listingJSON})

	_, err := e.ProcessListing(context.Background(), "2BR in Osu")

	assert.ErrorIs(t, err, ErrStoreFailure)
}

func TestProcessListingExtractionFailure(t *testing.T) {
	s := store.NewMemoryStore()
	e := testEngine(s, &extraction.MockCaller{Response: "no json here"})

	_, err := e.ProcessListing(context.Background(), "gibberish")

	assert.ErrorIs(t, err, extraction.ErrMalformedResponse)
}

func TestVoteAndTrendsEndToEnd(t *testing.T) {
	s := store.NewMemoryStore()
	e := testEngine(s, &extraction.MockCaller{Response: listingJSON})

	rec, err := e.ProcessListing(context.Background(), "2BR in Osu")
	assert.NoError(t, err)

	outcome, err := e.Vote(context.Background(), rec.ID, "device-1", model.VoteConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, votes.Recorded, outcome.Status)
	assert.Equal(t, 1, outcome.Count)

	tags, err := e.TrendingTags(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Pool"}, tags)
}

func TestSearchListings(t *testing.T) {
	s := store.NewMemoryStore()
	e := testEngine(s, &extraction.MockCaller{Response: listingJSON})

	_, err := e.ProcessListing(context.Background(), "2BR in Osu")
	assert.NoError(t, err)

	recs, err := e.SearchListings(context.Background(), "osu", 5)
	assert.NoError(t, err)
	assert.Len(t, recs, 1)

	none, err := e.SearchListings(context.Background(), "kumasi", 5)
	assert.NoError(t, err)
	assert.Len(t, none, 0)
}
