package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ExtractionPrompts struct {
	// Listing is a format template with two %s verbs: target currency,
	// then the raw listing text.
	Listing  string `toml:"listing"`
	Currency string `toml:"currency"`
}

type LLMConfig struct {
	Provider       string   `toml:"provider"`
	Model          string   `toml:"model"`
	FallbackModels []string `toml:"fallback_models"`
	APIKey         string   `toml:"api_key"`
	BaseURL        string   `toml:"base_url"`
}

type StoreConfig struct {
	DSN string `toml:"dsn"`
}

type GeocodeConfig struct {
	APIKey   string `toml:"api_key"`
	Country  string `toml:"country"`
	Endpoint string `toml:"endpoint"`
}

// RegionConfig bounds extracted coordinates to the service's target market.
// Coordinates outside the box are snapped to the anchor point.
type RegionConfig struct {
	MinLat     float64 `toml:"min_lat"`
	MaxLat     float64 `toml:"max_lat"`
	MinLong    float64 `toml:"min_long"`
	MaxLong    float64 `toml:"max_long"`
	AnchorLat  float64 `toml:"anchor_lat"`
	AnchorLong float64 `toml:"anchor_long"`
	Jitter     float64 `toml:"jitter"`
}

type ServerConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type Config struct {
	LLM        LLMConfig         `toml:"llm"`
	Store      StoreConfig       `toml:"store"`
	Geocode    GeocodeConfig     `toml:"geocode"`
	Region     RegionConfig      `toml:"region"`
	Server     ServerConfig      `toml:"server"`
	Extraction ExtractionPrompts `toml:"extraction"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills the gaps a partial config file leaves. Defaults target
// the Ghana market with Accra as the anchor point.
func (c *Config) ApplyDefaults() {
	if c.Region.MinLat == 0 && c.Region.MaxLat == 0 {
		c.Region.MinLat = 4.5
		c.Region.MaxLat = 11.5
		c.Region.MinLong = -3.5
		c.Region.MaxLong = 1.5
	}
	if c.Region.AnchorLat == 0 && c.Region.AnchorLong == 0 {
		c.Region.AnchorLat = 5.6037
		c.Region.AnchorLong = -0.1870
	}
	if c.Region.Jitter == 0 {
		c.Region.Jitter = 0.002
	}
	if c.Geocode.Country == "" {
		c.Geocode.Country = "GH"
	}
	if c.Extraction.Currency == "" {
		c.Extraction.Currency = "GHS"
	}
	if c.Extraction.Listing == "" {
		c.Extraction.Listing = DefaultListingPrompt
	}
}

// DefaultListingPrompt is used when the config file does not override the
// extraction template. The JSON shape here is the contract the extraction
// pipeline parses against.
const DefaultListingPrompt = `You are Asta, an expert Real Estate AI.
Extract the listing into this EXACT JSON structure.

{
  "title": "Short catchy title",
  "price": 12345 (Number only, convert to %s),
  "location_name": "Neighborhood Name",
  "lat": 5.123,
  "long": -0.123,
  "type": "rent" or "sale",
  "vibe_features": "TAG1, TAG2, TAG3",
  "description": "Write a 2-sentence marketing summary here. Make it professional."
}

RAW TEXT:
%s`
