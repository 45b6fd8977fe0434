package core

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/akwamin-eng/asta-engine/internal/config"
	"github.com/akwamin-eng/asta-engine/internal/core/extraction"
	"github.com/akwamin-eng/asta-engine/internal/core/geo"
	"github.com/akwamin-eng/asta-engine/internal/core/model"
	"github.com/akwamin-eng/asta-engine/internal/core/trends"
	"github.com/akwamin-eng/asta-engine/internal/core/votes"
	"github.com/akwamin-eng/asta-engine/internal/geocode"
	"github.com/akwamin-eng/asta-engine/internal/store"
)

// ErrStoreFailure marks a persistence failure after successful extraction;
// the extracted record is lost and the caller must resubmit.
var ErrStoreFailure = errors.New("store failure")

// Engine wires the extraction pipeline, vote aggregation, and trend queries
// over a shared store.
type Engine struct {
	Store    store.PropertyStore
	Pipeline *extraction.Pipeline
	Votes    *votes.Aggregator
}

func NewEngine(s store.PropertyStore, caller extraction.Caller, geocoder geocode.Geocoder, cfg *config.Config) *Engine {
	bounds := geo.New(cfg.Region)
	return &Engine{
		Store:    s,
		Pipeline: extraction.NewPipeline(caller, geocoder, bounds, cfg.Extraction),
		Votes:    votes.NewAggregator(s),
	}
}

// ProcessListing extracts a structured record from raw text and persists it.
// Persistence is single-attempt: on store failure the record is not retried.
func (e *Engine) ProcessListing(ctx context.Context, rawText string) (*model.PropertyRecord, error) {
	rec, err := e.Pipeline.Extract(ctx, rawText)
	if err != nil {
		log.Printf("extraction failed: %v", err)
		return nil, err
	}

	stored, err := e.Store.InsertProperty(ctx, rec)
	if err != nil {
		log.Printf("failed to save property %q: %v", rec.Title, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	return stored, nil
}

func (e *Engine) Vote(ctx context.Context, propertyID, deviceID string, kind model.VoteKind) (votes.Outcome, error) {
	return e.Votes.Cast(ctx, propertyID, deviceID, kind)
}

func (e *Engine) TrendingTags(ctx context.Context, n int) ([]string, error) {
	fields, err := e.Store.FetchVibeTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return trends.TopTags(fields, n), nil
}

func (e *Engine) SearchListings(ctx context.Context, query string, limit int) ([]*model.PropertyRecord, error) {
	recs, err := e.Store.SearchByLocation(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return recs, nil
}
