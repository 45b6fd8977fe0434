package store

import (
	"context"
	"errors"

	"github.com/akwamin-eng/asta-engine/internal/core/model"
)

var (
	// ErrDuplicateBallot means the (property, device) pair already voted.
	ErrDuplicateBallot = errors.New("ballot already exists for device")
	// ErrNotFound means the referenced property does not exist.
	ErrNotFound = errors.New("property not found")
)

// PropertyStore is the persistence boundary. Uniqueness of
// (property_id, device_id) and counter increments are enforced here, not in
// the callers, so concurrent identical requests cannot double count.
type PropertyStore interface {
	InsertProperty(ctx context.Context, rec *model.PropertyRecord) (*model.PropertyRecord, error)
	GetProperty(ctx context.Context, id string) (*model.PropertyRecord, error)
	SearchByLocation(ctx context.Context, query string, limit int) ([]*model.PropertyRecord, error)

	// InsertBallot returns ErrDuplicateBallot when the pair already voted
	// and ErrNotFound when the property does not exist.
	InsertBallot(ctx context.Context, b *model.Ballot) error
	// IncrementVote atomically bumps one counter column and returns the new
	// value. The column name must come from VoteKind.CounterColumn.
	IncrementVote(ctx context.Context, propertyID, column string) (int, error)

	// FetchVibeTags returns the raw tag field of every record in insertion
	// order.
	FetchVibeTags(ctx context.Context) ([]string, error)

	Close() error
}
