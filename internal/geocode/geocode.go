package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/akwamin-eng/asta-engine/internal/config"
)

const defaultEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

// Result is a single forward-geocoding hit.
type Result struct {
	Lat     float64
	Long    float64
	Address string
}

// Geocoder resolves a free-text place name to coordinates. Implementations
// return (nil, nil) when the provider has no match.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

// Client is a thin HTTP client for the provider's forward-geocoding API,
// biased to the configured country.
type Client struct {
	httpClient *http.Client
	apiKey     string
	country    string
	endpoint   string
}

func NewClient(cfg config.GeocodeConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     cfg.APIKey,
		country:    cfg.Country,
		endpoint:   endpoint,
	}
}

type apiResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *Client) Geocode(ctx context.Context, query string) (*Result, error) {
	q := url.Values{}
	q.Set("address", query)
	q.Set("components", "country:"+c.country)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request failed: status %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("geocode response decode failed: %w", err)
	}

	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		return nil, nil
	}

	first := parsed.Results[0]
	return &Result{
		Lat:     first.Geometry.Location.Lat,
		Long:    first.Geometry.Location.Lng,
		Address: first.FormattedAddress,
	}, nil
}
