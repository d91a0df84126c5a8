package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"looview/internal/toilet/models"
	"looview/pkg/platform/sentinel"
	"looview/pkg/platform/tx"
)

const schema = `
CREATE TABLE IF NOT EXISTS toilets (
	seq        BIGSERIAL   NOT NULL,
	id         TEXT        PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	doc        JSONB       NOT NULL
);
CREATE INDEX IF NOT EXISTS toilets_seq_idx ON toilets (seq DESC);
`

// pq reports connection failures with these SQLSTATE classes.
const (
	pqClassConnection = "08"
	pqClassResources  = "53"
)

// PostgresStore keeps each toilet as a JSONB document. Insertion order
// (seq) defines the newest-first listing.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the toilets table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure toilets schema: %w", classify(err))
	}
	return nil
}

func (s *PostgresStore) Read(ctx context.Context) ([]models.StoredRecord, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, `SELECT doc FROM toilets ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("read toilets: %w", classify(err))
	}
	defer rows.Close()

	var out []models.StoredRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan toilet: %w", err)
		}
		var rec models.StoredRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode toilet document: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate toilets: %w", classify(err))
	}
	return out, nil
}

func (s *PostgresStore) Prepend(ctx context.Context, rec models.StoredRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("prepend toilet: empty id")
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode toilet document: %w", err)
	}
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`INSERT INTO toilets (id, created_at, doc) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.CreatedAt, doc)
	if err != nil {
		return fmt.Errorf("insert toilet: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert toilet: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("toilet %s: %w", rec.ID, sentinel.ErrConflict)
	}
	return nil
}

// Import stores legacy or current documents as-is in one transaction,
// skipping ids already present. Used to seed demo data.
func (s *PostgresStore) Import(ctx context.Context, recs []models.StoredRecord) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		// Oldest first so that seq order matches the newest-first input.
		for i := len(recs) - 1; i >= 0; i-- {
			if err := s.Prepend(ctx, recs[i]); err != nil && !errors.Is(err, sentinel.ErrConflict) {
				return err
			}
		}
		return nil
	})
}

func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case pqClassConnection, pqClassResources:
			return errors.Join(sentinel.ErrUnavailable, err)
		}
	}
	if errors.Is(err, sql.ErrConnDone) {
		return errors.Join(sentinel.ErrUnavailable, err)
	}
	return err
}
