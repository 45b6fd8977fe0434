package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/akwamin-eng/asta-engine/internal/core/model"
)

// PostgresStore persists properties and ballots to PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection, runs schema migrations, and returns a
// ready-to-use store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id            UUID PRIMARY KEY,
			title         TEXT         NOT NULL,
			price         NUMERIC(12,2) NOT NULL DEFAULT 0,
			location_name TEXT         NOT NULL DEFAULT '',
			address       TEXT         NOT NULL DEFAULT '',
			lat           DOUBLE PRECISION NOT NULL DEFAULT 0,
			long          DOUBLE PRECISION NOT NULL DEFAULT 0,
			type          VARCHAR(10)  NOT NULL DEFAULT 'rent',
			vibe_features TEXT         NOT NULL DEFAULT '',
			description   TEXT         NOT NULL DEFAULT '',
			accuracy      VARCHAR(10)  NOT NULL DEFAULT 'low',
			status        VARCHAR(20)  NOT NULL DEFAULT 'active',
			votes_good    INTEGER      NOT NULL DEFAULT 0,
			votes_bad     INTEGER      NOT NULL DEFAULT 0,
			votes_scam    INTEGER      NOT NULL DEFAULT 0,
			created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_properties_location ON properties(location_name);
		CREATE INDEX IF NOT EXISTS idx_properties_status   ON properties(status);
		CREATE INDEX IF NOT EXISTS idx_properties_price    ON properties(price);

		CREATE TABLE IF NOT EXISTS ballots (
			id          UUID PRIMARY KEY,
			property_id UUID        NOT NULL REFERENCES properties(id),
			device_id   TEXT        NOT NULL,
			kind        VARCHAR(20) NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (property_id, device_id)
		);
	`)
	return err
}

func (s *PostgresStore) InsertProperty(ctx context.Context, rec *model.PropertyRecord) (*model.PropertyRecord, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO properties
			(id, title, price, location_name, address, lat, long, type,
			 vibe_features, description, accuracy, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		rec.ID, rec.Title, rec.Price, rec.LocationName, rec.Address,
		rec.Lat, rec.Long, rec.Type, strings.Join(rec.VibeTags, ", "),
		rec.Description, rec.Accuracy, rec.Status, rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: insert property: %w", err)
	}
	return rec, nil
}

const propertyColumns = `
	id, title, price, location_name, address, lat, long, type,
	vibe_features, description, accuracy, status,
	votes_good, votes_bad, votes_scam, created_at
`

func (s *PostgresStore) scanProperty(row interface{ Scan(...any) error }) (*model.PropertyRecord, error) {
	rec := &model.PropertyRecord{}
	var tags string
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Price, &rec.LocationName, &rec.Address,
		&rec.Lat, &rec.Long, &rec.Type, &tags, &rec.Description,
		&rec.Accuracy, &rec.Status,
		&rec.VotesGood, &rec.VotesBad, &rec.VotesScam, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.VibeTags = model.SplitTags(tags)
	return rec, nil
}

// notFoundErr folds "no such row" and "id is not even a UUID" into the same
// outcome; device-supplied ids are untrusted.
func notFoundErr(err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}

func (s *PostgresStore) GetProperty(ctx context.Context, id string) (*model.PropertyRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)

	rec, err := s.scanProperty(row)
	if err != nil && notFoundErr(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get property: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) SearchByLocation(ctx context.Context, query string, limit int) ([]*model.PropertyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		WHERE status = 'active' AND location_name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: search by location: %w", err)
	}
	defer rows.Close()

	var recs []*model.PropertyRecord
	for rows.Next() {
		rec, err := s.scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *PostgresStore) InsertBallot(ctx context.Context, b *model.Ballot) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO ballots (id, property_id, device_id, kind, created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (property_id, device_id) DO NOTHING
	`, b.ID, b.PropertyID, b.DeviceID, string(b.Kind), b.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			// Foreign key violation: the property does not exist.
			return ErrNotFound
		}
		if notFoundErr(err) {
			return ErrNotFound
		}
		return fmt.Errorf("postgres: insert ballot: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: insert ballot: %w", err)
	}
	if affected == 0 {
		return ErrDuplicateBallot
	}
	return nil
}

func (s *PostgresStore) IncrementVote(ctx context.Context, propertyID, column string) (int, error) {
	// column is validated by VoteKind.CounterColumn before it gets here.
	q := fmt.Sprintf(
		`UPDATE properties SET %s = %s + 1 WHERE id = $1 RETURNING %s`,
		column, column, column)

	var count int
	err := s.db.QueryRowContext(ctx, q, propertyID).Scan(&count)
	if err != nil && notFoundErr(err) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("postgres: increment vote: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) FetchVibeTags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT vibe_features FROM properties ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch vibe tags: %w", err)
	}
	defer rows.Close()

	var fields []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
