package geo

import (
	"math/rand"

	"github.com/akwamin-eng/asta-engine/internal/config"
)

// Bounds validates coordinates against the configured regional bounding box
// and applies cosmetic jitter so stacked markers don't overlap on a map.
type Bounds struct {
	cfg config.RegionConfig
}

func New(cfg config.RegionConfig) *Bounds {
	return &Bounds{cfg: cfg}
}

// Validate is total: out-of-region or (0,0) placeholder coordinates are
// replaced by the anchor point, everything else passes through unchanged.
func (b *Bounds) Validate(lat, long float64) (float64, float64) {
	if lat == 0 && long == 0 {
		return b.cfg.AnchorLat, b.cfg.AnchorLong
	}
	if lat < b.cfg.MinLat || lat > b.cfg.MaxLat {
		return b.cfg.AnchorLat, b.cfg.AnchorLong
	}
	if long < b.cfg.MinLong || long > b.cfg.MaxLong {
		return b.cfg.AnchorLat, b.cfg.AnchorLong
	}
	return lat, long
}

// Jitter adds independent uniform noise in ±cfg.Jitter per axis. Not
// cryptographic; purely visual declustering.
func (b *Bounds) Jitter(lat, long float64) (float64, float64) {
	j := b.cfg.Jitter
	return lat + (rand.Float64()*2-1)*j, long + (rand.Float64()*2-1)*j
}
