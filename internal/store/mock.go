package store

import (
	"context"
	"strings"
	"sync"

	"github.com/akwamin-eng/asta-engine/internal/core/model"
)

// MemoryStore is an in-memory PropertyStore used by unit tests.
type MemoryStore struct {
	mu         sync.Mutex
	order      []string
	properties map[string]*model.PropertyRecord
	ballots    map[string]*model.Ballot // keyed property_id|device_id

	InsertErr error // forced failure for InsertProperty
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		properties: make(map[string]*model.PropertyRecord),
		ballots:    make(map[string]*model.Ballot),
	}
}

func (m *MemoryStore) InsertProperty(ctx context.Context, rec *model.PropertyRecord) (*model.PropertyRecord, error) {
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return rec, nil
}

func (m *MemoryStore) GetProperty(ctx context.Context, id string) (*model.PropertyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (m *MemoryStore) SearchByLocation(ctx context.Context, query string, limit int) ([]*model.PropertyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.PropertyRecord
	for _, id := range m.order {
		rec := m.properties[id]
		if rec.Status != model.StatusActive {
			continue
		}
		if strings.Contains(strings.ToLower(rec.LocationName), strings.ToLower(query)) {
			out = append(out, rec)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *MemoryStore) InsertBallot(ctx context.Context, b *model.Ballot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.properties[b.PropertyID]; !ok {
		return ErrNotFound
	}
	key := b.PropertyID + "|" + b.DeviceID
	if _, ok := m.ballots[key]; ok {
		return ErrDuplicateBallot
	}
	m.ballots[key] = b
	return nil
}

func (m *MemoryStore) IncrementVote(ctx context.Context, propertyID, column string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.properties[propertyID]
	if !ok {
		return 0, ErrNotFound
	}
	switch column {
	case "votes_good":
		rec.VotesGood++
		return rec.VotesGood, nil
	case "votes_bad":
		rec.VotesBad++
		return rec.VotesBad, nil
	case "votes_scam":
		rec.VotesScam++
		return rec.VotesScam, nil
	}
	return 0, ErrNotFound
}

func (m *MemoryStore) FetchVibeTags(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var fields []string
	for _, id := range m.order {
		fields = append(fields, strings.Join(m.properties[id].VibeTags, ", "))
	}
	return fields, nil
}

func (m *MemoryStore) Close() error { return nil }
