// Package postgres provides a Postgres-backed record source for deployments
// where the activity log lives in the association's database instead of a
// CSV export.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lqint/RMBSVolReport/internal/domain"
)

// Source bulk-loads the volunteer_records table.
type Source struct {
	pool *pgxpool.Pool
}

// NewSource constructs a Source.
func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

// Load reads the whole table. Nullable columns coerce to neutral values,
// matching the CSV source's lenient behaviour.
func (s *Source) Load(ctx context.Context) ([]domain.ActivityRecord, error) {
	const query = `SELECT name, volunteer_id, activity_name, activity_type, activity_date, hours, cover_img
        FROM volunteer_records ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query volunteer_records: %w", err)
	}
	defer rows.Close()

	var records []domain.ActivityRecord
	for rows.Next() {
		var (
			rec      domain.ActivityRecord
			volID    string
			hours    *float64
			coverImg *string
		)
		if err := rows.Scan(&rec.Name, &volID, &rec.ActivityName, &rec.Category, &rec.Date, &hours, &coverImg); err != nil {
			return nil, fmt.Errorf("scan volunteer_records: %w", err)
		}
		rec.VolunteerID = domain.NormalizeID(volID)
		if hours != nil && *hours > 0 {
			rec.Hours = *hours
		}
		if coverImg != nil {
			rec.CoverImage = *coverImg
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
