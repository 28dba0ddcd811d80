package storage

import (
	"context"
	"fmt"

	"civiscore/internal/models"
)

type VoteRepo struct {
	db *DB
}

func NewVoteRepo(db *DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// UpsertVoteEvent is keyed on (chamber, congress, session, roll_call); later
// syncs overwrite totals rather than duplicating the event.
func (r *VoteRepo) UpsertVoteEvent(ctx context.Context, e models.VoteEvent) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO vote_events (chamber, congress_number, session, roll_call_number, bill_external_id, vote_date,
                         yea_total, nay_total, present_total, not_voting_total)
VALUES ($1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''), $7, $8, $9, $10)
ON CONFLICT (chamber, congress_number, session, roll_call_number)
DO UPDATE SET
  bill_external_id = EXCLUDED.bill_external_id,
  vote_date = EXCLUDED.vote_date,
  yea_total = EXCLUDED.yea_total,
  nay_total = EXCLUDED.nay_total,
  present_total = EXCLUDED.present_total,
  not_voting_total = EXCLUDED.not_voting_total`,
		string(e.Chamber), e.CongressNumber, e.Session, e.RollCallNumber, e.BillExternalID, e.VoteDate,
		e.YeaTotal, e.NayTotal, e.PresentTotal, e.NotVotingTotal,
	)
	if err != nil {
		return fmt.Errorf("upsert vote event: %w", err)
	}
	return nil
}

// UpsertVotingRecord is keyed on (legislator, bill), not (legislator, event),
// since scoring operates per bill.
func (r *VoteRepo) UpsertVotingRecord(ctx context.Context, rec models.VotingRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO voting_records (legislator_id, bill_id, vote, vote_date)
VALUES ($1, $2, $3, NULLIF($4,''))
ON CONFLICT (legislator_id, bill_id)
DO UPDATE SET vote = EXCLUDED.vote, vote_date = EXCLUDED.vote_date`,
		rec.LegislatorID, rec.BillID, string(rec.Vote), rec.VoteDate,
	)
	if err != nil {
		return fmt.Errorf("upsert voting record: %w", err)
	}
	return nil
}
