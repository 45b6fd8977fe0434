package extraction

import (
	"context"

	"github.com/akwamin-eng/asta-engine/internal/geocode"
)

type MockCaller struct {
	Response string
	Err      error
}

func (m *MockCaller) Call(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

type MockGeocoder struct {
	Result *geocode.Result
	Err    error
}

func (m *MockGeocoder) Geocode(ctx context.Context, query string) (*geocode.Result, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
