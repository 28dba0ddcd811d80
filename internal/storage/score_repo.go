package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"civiscore/internal/models"
)

type ScoreRepo struct {
	db *DB
}

func NewScoreRepo(db *DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// ListVoteFacts joins voting records with bill polarity and topic tags. It is
// the scoring engine's only input besides the legislator and topic lists.
func (r *ScoreRepo) ListVoteFacts(ctx context.Context) ([]models.VoteFact, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT vr.legislator_id, bt.topic_id, vr.bill_id, b.polarity_score, vr.vote
FROM voting_records vr
JOIN bills b ON b.external_id = vr.bill_id
JOIN bill_topics bt ON bt.bill_id = b.external_id`)
	if err != nil {
		return nil, fmt.Errorf("list vote facts: %w", err)
	}
	defer rows.Close()

	out := make([]models.VoteFact, 0)
	for rows.Next() {
		var f models.VoteFact
		if err := rows.Scan(&f.LegislatorID, &f.TopicID, &f.BillID, &f.Polarity, &f.Vote); err != nil {
			return nil, fmt.Errorf("scan vote fact: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vote facts: %w", err)
	}
	return out, nil
}

func (r *ScoreRepo) UpsertTopicScore(ctx context.Context, s models.TopicScore) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO topic_scores (legislator_id, topic_id, score, vote_count, confidence)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (legislator_id, topic_id)
DO UPDATE SET score = EXCLUDED.score, vote_count = EXCLUDED.vote_count, confidence = EXCLUDED.confidence`,
		s.LegislatorID, s.TopicID, s.Score, s.VoteCount, s.Confidence,
	)
	if err != nil {
		return fmt.Errorf("upsert topic score: %w", err)
	}
	return nil
}

func (r *ScoreRepo) UpsertAggregateScore(ctx context.Context, s models.AggregateScore) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO aggregate_scores (legislator_id, overall_score, philosophy)
VALUES ($1, $2, $3)
ON CONFLICT (legislator_id)
DO UPDATE SET overall_score = EXCLUDED.overall_score, philosophy = EXCLUDED.philosophy`,
		s.LegislatorID, s.OverallScore, s.Philosophy,
	)
	if err != nil {
		return fmt.Errorf("upsert aggregate score: %w", err)
	}
	return nil
}

func (r *ScoreRepo) ListTopicScores(ctx context.Context, legislatorID string) ([]models.TopicScore, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT legislator_id, topic_id, score, vote_count, confidence
FROM topic_scores
WHERE legislator_id=$1
ORDER BY topic_id`, legislatorID)
	if err != nil {
		return nil, fmt.Errorf("list topic scores: %w", err)
	}
	defer rows.Close()

	out := make([]models.TopicScore, 0)
	for rows.Next() {
		var s models.TopicScore
		if err := rows.Scan(&s.LegislatorID, &s.TopicID, &s.Score, &s.VoteCount, &s.Confidence); err != nil {
			return nil, fmt.Errorf("scan topic score: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetAggregateScore returns nil (no error) when no score has been computed.
func (r *ScoreRepo) GetAggregateScore(ctx context.Context, legislatorID string) (*models.AggregateScore, error) {
	var s models.AggregateScore
	err := r.db.Pool.QueryRow(ctx, `
SELECT legislator_id, overall_score, philosophy
FROM aggregate_scores
WHERE legislator_id=$1`, legislatorID).
		Scan(&s.LegislatorID, &s.OverallScore, &s.Philosophy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get aggregate score: %w", err)
	}
	return &s, nil
}
