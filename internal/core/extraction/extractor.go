package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akwamin-eng/asta-engine/internal/config"
	"github.com/akwamin-eng/asta-engine/internal/core/common"
	"github.com/akwamin-eng/asta-engine/internal/core/geo"
	"github.com/akwamin-eng/asta-engine/internal/core/model"
	"github.com/akwamin-eng/asta-engine/internal/geocode"
)

var (
	// ErrMalformedResponse means the model output contained no parseable JSON.
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrEmptyExtraction means the model returned an empty list.
	ErrEmptyExtraction = errors.New("empty extraction result")
)

// Caller is the generation capability behind the pipeline, normally the
// model fallback chain.
type Caller interface {
	Call(ctx context.Context, prompt string) (string, error)
}

// Pipeline turns raw listing text into a validated PropertyRecord.
type Pipeline struct {
	Caller   Caller
	Geocoder geocode.Geocoder // nil disables enrichment
	Bounds   *geo.Bounds
	Prompts  config.ExtractionPrompts
}

func NewPipeline(caller Caller, geocoder geocode.Geocoder, bounds *geo.Bounds, prompts config.ExtractionPrompts) *Pipeline {
	return &Pipeline{
		Caller:   caller,
		Geocoder: geocoder,
		Bounds:   bounds,
		Prompts:  prompts,
	}
}

// Extract runs the full pipeline: prompt, model chain, parse, coerce,
// geocode enrichment, coordinate validation, jitter, lifecycle stamp.
func (p *Pipeline) Extract(ctx context.Context, rawText string) (*model.PropertyRecord, error) {
	prompt := fmt.Sprintf(p.Prompts.Listing, p.Prompts.Currency, rawText)

	response, err := p.Caller.Call(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	payload, err := parsePayload(response)
	if err != nil {
		return nil, err
	}

	rec := coerce(payload)
	p.enrich(ctx, rec)

	rec.Lat, rec.Long = p.Bounds.Validate(rec.Lat, rec.Long)
	rec.Lat, rec.Long = p.Bounds.Jitter(rec.Lat, rec.Long)

	rec.ID = uuid.New().String()
	rec.Status = model.StatusActive
	rec.CreatedAt = time.Now().UTC()

	return rec, nil
}

// parsePayload strips LLM wrapping and normalizes shape: an array takes its
// first element, an empty array is an empty extraction.
func parsePayload(response string) (*model.ListingPayload, error) {
	jsonStr, err := common.ExtractJSON(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if strings.HasPrefix(jsonStr, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(jsonStr), &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if len(items) == 0 {
			return nil, ErrEmptyExtraction
		}
		jsonStr = string(items[0])
	}

	var payload model.ListingPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &payload, nil
}

// coerce converts the loosely-typed model payload into a PropertyRecord,
// defaulting every field the model omitted or mangled.
func coerce(payload *model.ListingPayload) *model.PropertyRecord {
	rec := &model.PropertyRecord{
		Title:        strings.TrimSpace(payload.Title),
		Price:        float64(payload.Price),
		LocationName: strings.TrimSpace(payload.LocationName),
		Lat:          float64(payload.Lat),
		Long:         float64(payload.Long),
		VibeTags:     []string(payload.VibeFeatures),
		Description:  strings.TrimSpace(payload.Description),
		Accuracy:     model.AccuracyLow,
	}

	if rec.Price < 0 {
		rec.Price = 0
	}

	switch strings.ToLower(strings.TrimSpace(payload.Type)) {
	case model.TypeSale, "sell", "for sale":
		rec.Type = model.TypeSale
	default:
		rec.Type = model.TypeRent
	}

	return rec
}

// enrich runs the best-effort geocoding pass. It never fails the pipeline:
// a missing or errored lookup leaves the model's coordinates in place with
// low accuracy.
func (p *Pipeline) enrich(ctx context.Context, rec *model.PropertyRecord) {
	if p.Geocoder == nil || rec.LocationName == "" {
		return
	}

	result, err := p.Geocoder.Geocode(ctx, rec.LocationName)
	if err != nil {
		log.Printf("geocode lookup failed for %q: %v", rec.LocationName, err)
		return
	}
	if result == nil {
		return
	}

	rec.Lat = result.Lat
	rec.Long = result.Long
	rec.Address = result.Address
	rec.Accuracy = model.AccuracyHigh
}
