package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"civiscore/internal/models"
)

type BillRepo struct {
	db *DB
}

func NewBillRepo(db *DB) *BillRepo {
	return &BillRepo{db: db}
}

// GetBillByExternalID returns nil (no error) when the bill is not stored.
func (r *BillRepo) GetBillByExternalID(ctx context.Context, externalID string) (*models.Bill, error) {
	var b models.Bill
	err := r.db.Pool.QueryRow(ctx, `
SELECT external_id, congress_number, bill_type, bill_number, title, COALESCE(summary,''),
       COALESCE(introduced_date,''), COALESCE(status,''), polarity_score, created_at
FROM bills
WHERE external_id=$1`, externalID).
		Scan(&b.ExternalID, &b.CongressNumber, &b.BillType, &b.BillNumber, &b.Title, &b.Summary, &b.IntroducedDate, &b.Status, &b.PolarityScore, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bill by external id: %w", err)
	}
	topics, err := r.listBillTopics(ctx, externalID)
	if err != nil {
		return nil, err
	}
	b.TopicIDs = topics
	return &b, nil
}

// InsertBill inserts keyed on external_id; a conflict means the bill was
// ingested before and its derived fields stay frozen.
func (r *BillRepo) InsertBill(ctx context.Context, b models.Bill) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
INSERT INTO bills (external_id, congress_number, bill_type, bill_number, title, summary, introduced_date, status, polarity_score)
VALUES ($1, $2, $3, $4, $5, NULLIF($6,''), NULLIF($7,''), NULLIF($8,''), $9)
ON CONFLICT (external_id) DO NOTHING`,
		b.ExternalID, b.CongressNumber, b.BillType, b.BillNumber, b.Title, b.Summary, b.IntroducedDate, b.Status, b.PolarityScore,
	)
	if err != nil {
		return false, fmt.Errorf("insert bill: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BillRepo) SetBillTopics(ctx context.Context, billID string, topicIDs []string) error {
	for _, topicID := range topicIDs {
		_, err := r.db.Pool.Exec(ctx, `
INSERT INTO bill_topics (bill_id, topic_id)
VALUES ($1, $2)
ON CONFLICT (bill_id, topic_id) DO NOTHING`, billID, topicID)
		if err != nil {
			return fmt.Errorf("set bill topic %s/%s: %w", billID, topicID, err)
		}
	}
	return nil
}

func (r *BillRepo) listBillTopics(ctx context.Context, billID string) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT topic_id FROM bill_topics WHERE bill_id=$1 ORDER BY topic_id`, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill topics: %w", err)
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan bill topic: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
