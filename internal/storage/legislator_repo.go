package storage

import (
	"context"
	"fmt"

	"civiscore/internal/models"
)

type LegislatorRepo struct {
	db *DB
}

func NewLegislatorRepo(db *DB) *LegislatorRepo {
	return &LegislatorRepo{db: db}
}

// InsertLegislator inserts keyed on external_id. A conflict on that key is the
// idempotent re-sync case and reports inserted=false with no error.
func (r *LegislatorRepo) InsertLegislator(ctx context.Context, l models.Legislator) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
INSERT INTO legislators (external_id, name, state, chamber, party, photo_url, role_title, serving_since)
VALUES ($1, $2, $3, $4, $5, NULLIF($6,''), NULLIF($7,''), NULLIF($8,0))
ON CONFLICT (external_id) DO NOTHING`,
		l.ExternalID, l.Name, l.State, string(l.Chamber), string(l.Party), l.PhotoURL, l.RoleTitle, l.ServingSince,
	)
	if err != nil {
		return false, fmt.Errorf("insert legislator: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *LegislatorRepo) ListLegislators(ctx context.Context) ([]models.Legislator, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT external_id, name, state, chamber, party, COALESCE(photo_url,''), COALESCE(role_title,''),
       COALESCE(serving_since,0), created_at, updated_at
FROM legislators
ORDER BY external_id`)
	if err != nil {
		return nil, fmt.Errorf("list legislators: %w", err)
	}
	defer rows.Close()

	out := make([]models.Legislator, 0)
	for rows.Next() {
		var l models.Legislator
		if err := rows.Scan(&l.ExternalID, &l.Name, &l.State, &l.Chamber, &l.Party, &l.PhotoURL, &l.RoleTitle, &l.ServingSince, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan legislator: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legislators: %w", err)
	}
	return out, nil
}

func (r *LegislatorRepo) GetLegislatorByExternalID(ctx context.Context, externalID string) (*models.Legislator, error) {
	var l models.Legislator
	err := r.db.Pool.QueryRow(ctx, `
SELECT external_id, name, state, chamber, party, COALESCE(photo_url,''), COALESCE(role_title,''),
       COALESCE(serving_since,0), created_at, updated_at
FROM legislators
WHERE external_id=$1`, externalID).
		Scan(&l.ExternalID, &l.Name, &l.State, &l.Chamber, &l.Party, &l.PhotoURL, &l.RoleTitle, &l.ServingSince, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get legislator by external id: %w", err)
	}
	return &l, nil
}
