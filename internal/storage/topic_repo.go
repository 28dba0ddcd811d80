package storage

import (
	"context"
	"fmt"

	"civiscore/internal/models"
)

type TopicRepo struct {
	db *DB
}

func NewTopicRepo(db *DB) *TopicRepo {
	return &TopicRepo{db: db}
}

// EnsureTopics inserts any missing reference topics. Existing rows are left
// untouched; topics are immutable during a pipeline run.
func (r *TopicRepo) EnsureTopics(ctx context.Context, topics []models.Topic) error {
	for _, t := range topics {
		_, err := r.db.Pool.Exec(ctx, `
INSERT INTO topics (id, name, keywords)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO NOTHING`, t.ID, t.Name, t.Keywords)
		if err != nil {
			return fmt.Errorf("ensure topic %s: %w", t.ID, err)
		}
	}
	return nil
}

func (r *TopicRepo) ListTopics(ctx context.Context) ([]models.Topic, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name, keywords FROM topics ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	out := make([]models.Topic, 0)
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Keywords); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}
	return out, nil
}
