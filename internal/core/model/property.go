package model

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	TypeRent = "rent"
	TypeSale = "sale"

	AccuracyHigh = "high"
	AccuracyLow  = "low"
)

// PropertyRecord is a structured, geolocated listing. Counters are only
// mutated through the vote aggregator; records are never deleted.
type PropertyRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	LocationName string    `json:"location_name"`
	Address      string    `json:"address,omitempty"`
	Lat          float64   `json:"lat"`
	Long         float64   `json:"long"`
	Type         string    `json:"type"`
	VibeTags     []string  `json:"vibe_features"`
	Description  string    `json:"description"`
	Accuracy     string    `json:"accuracy"`
	Status       string    `json:"status"`
	VotesGood    int       `json:"votes_good"`
	VotesBad     int       `json:"votes_bad"`
	VotesScam    int       `json:"votes_scam"`
	CreatedAt    time.Time `json:"created_at"`
}

// Ballot is one immutable vote event tying a device to a property. At most
// one ballot exists per (property, device) pair.
type Ballot struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	DeviceID   string    `json:"device_id"`
	Kind       VoteKind  `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

type VoteKind string

const (
	VoteConfirmed  VoteKind = "confirmed"
	VoteSuspicious VoteKind = "suspicious"
	VoteScam       VoteKind = "scam"
)

// CounterColumn maps a vote kind to the aggregate counter it increments.
// The second return is false for unrecognized kinds.
func (k VoteKind) CounterColumn() (string, bool) {
	switch k {
	case VoteConfirmed:
		return "votes_good", true
	case VoteSuspicious:
		return "votes_bad", true
	case VoteScam:
		return "votes_scam", true
	default:
		return "", false
	}
}
