package pipeline

import (
	"context"
	"net/url"

	"civiscore/internal/models"
)

// Fetcher is the slice of the API client the stages depend on. Fetch carries
// record-level pacing, FetchPage page-level pacing; neither retries or loops.
type Fetcher interface {
	Fetch(ctx context.Context, path string, query url.Values, out any) error
	FetchPage(ctx context.Context, path string, query url.Values, out any) error
}

type LegislatorStore interface {
	InsertLegislator(ctx context.Context, l models.Legislator) (inserted bool, err error)
	ListLegislators(ctx context.Context) ([]models.Legislator, error)
}

type TopicStore interface {
	EnsureTopics(ctx context.Context, topics []models.Topic) error
	ListTopics(ctx context.Context) ([]models.Topic, error)
}

type BillStore interface {
	GetBillByExternalID(ctx context.Context, externalID string) (*models.Bill, error)
	InsertBill(ctx context.Context, b models.Bill) (created bool, err error)
	SetBillTopics(ctx context.Context, billID string, topicIDs []string) error
}

type VoteStore interface {
	UpsertVoteEvent(ctx context.Context, e models.VoteEvent) error
	UpsertVotingRecord(ctx context.Context, r models.VotingRecord) error
}

// Stores groups the storage interfaces a pipeline needs. The pgx repos in
// internal/storage satisfy these; tests use in-memory fakes.
type Stores struct {
	Legislators LegislatorStore
	Topics      TopicStore
	Bills       BillStore
	Votes       VoteStore
}
