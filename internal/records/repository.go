// Package records is the read layer over the Postgres mirror tables. Sync
// processes outside this repository write each upstream record as an opaque
// JSONB payload; this package only reads them back as normalize.Record maps
// and leaves all interpretation to the normalizer.
package records

import (
	"context"
	"fmt"

	"opsboard_backend/internal/dashboard/normalize"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads raw record payloads from the mirror tables.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a records repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Engagements returns all mirrored engagement payloads.
func (r *Repository) Engagements(ctx context.Context) ([]normalize.Record, error) {
	return r.fetch(ctx, "record_engagements")
}

// Jobs returns all mirrored job payloads.
func (r *Repository) Jobs(ctx context.Context) ([]normalize.Record, error) {
	return r.fetch(ctx, "record_jobs")
}

// Technicians returns all mirrored technician payloads.
func (r *Repository) Technicians(ctx context.Context) ([]normalize.Record, error) {
	return r.fetch(ctx, "record_technicians")
}

// Messages returns all mirrored message payloads.
func (r *Repository) Messages(ctx context.Context) ([]normalize.Record, error) {
	return r.fetch(ctx, "record_messages")
}

func (r *Repository) fetch(ctx context.Context, table string) ([]normalize.Record, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT id, fields FROM %s`, table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	items := make([]normalize.Record, 0)
	for rows.Next() {
		var id string
		var fields map[string]any
		if err := rows.Scan(&id, &fields); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		if fields == nil {
			fields = make(map[string]any, 1)
		}
		// The row key is authoritative even when the payload carries its own.
		fields["id"] = id
		items = append(items, normalize.Record(fields))
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}
