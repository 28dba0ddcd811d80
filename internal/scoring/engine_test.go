package scoring

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"civiscore/internal/logger"
	"civiscore/internal/models"
)

type fakeScoreStore struct {
	legislators []models.Legislator
	topics      []models.Topic
	facts       []models.VoteFact

	topicScores     map[string]models.TopicScore
	aggregateScores map[string]models.AggregateScore
}

func newFakeScoreStore() *fakeScoreStore {
	return &fakeScoreStore{
		topicScores:     map[string]models.TopicScore{},
		aggregateScores: map[string]models.AggregateScore{},
	}
}

func (f *fakeScoreStore) ListLegislators(context.Context) ([]models.Legislator, error) {
	return f.legislators, nil
}

func (f *fakeScoreStore) ListTopics(context.Context) ([]models.Topic, error) {
	return f.topics, nil
}

func (f *fakeScoreStore) ListVoteFacts(context.Context) ([]models.VoteFact, error) {
	return f.facts, nil
}

func (f *fakeScoreStore) UpsertTopicScore(_ context.Context, s models.TopicScore) error {
	f.topicScores[s.LegislatorID+"/"+s.TopicID] = s
	return nil
}

func (f *fakeScoreStore) UpsertAggregateScore(_ context.Context, s models.AggregateScore) error {
	f.aggregateScores[s.LegislatorID] = s
	return nil
}

func fp(v float64) *float64 { return &v }

func TestConfidenceCurve(t *testing.T) {
	require.Equal(t, 0.0, Confidence(0))
	require.InDelta(t, math.Sqrt(5)/10, Confidence(5), 1e-9)
	require.InDelta(t, 0.2236, Confidence(5), 1e-4)
	require.Equal(t, 1.0, Confidence(100))
	require.Equal(t, 1.0, Confidence(400))

	prev := 0.0
	for n := 1; n <= 150; n++ {
		c := Confidence(n)
		require.GreaterOrEqual(t, c, prev, "confidence must be non-decreasing at n=%d", n)
		prev = c
	}
}

func TestComputeTopicScoreNoQualifyingVotes(t *testing.T) {
	ts := ComputeTopicScore("A001", "healthcare", nil)
	require.Equal(t, models.TopicScore{LegislatorID: "A001", TopicID: "healthcare"}, ts)

	// Present/NotVoting and nil-polarity bills contribute zero votes, not
	// zero-valued votes.
	facts := []models.VoteFact{
		{LegislatorID: "A001", TopicID: "healthcare", BillID: "b1", Polarity: fp(0.5), Vote: models.VotePresent},
		{LegislatorID: "A001", TopicID: "healthcare", BillID: "b2", Polarity: fp(0.5), Vote: models.VoteNotVoting},
		{LegislatorID: "A001", TopicID: "healthcare", BillID: "b3", Polarity: nil, Vote: models.VoteYea},
	}
	ts = ComputeTopicScore("A001", "healthcare", facts)
	require.Equal(t, 0, ts.VoteCount)
	require.Equal(t, 0.0, ts.Score)
	require.Equal(t, 0.0, ts.Confidence)
}

func TestComputeTopicScoreSymmetry(t *testing.T) {
	// Yea on +0.5 and Nay on -0.5 both pull toward the positive pole.
	facts := []models.VoteFact{
		{LegislatorID: "L", TopicID: "t", BillID: "b1", Polarity: fp(0.5), Vote: models.VoteYea},
		{LegislatorID: "L", TopicID: "t", BillID: "b2", Polarity: fp(-0.5), Vote: models.VoteNay},
	}
	ts := ComputeTopicScore("L", "t", facts)
	require.Equal(t, 2, ts.VoteCount)
	require.InDelta(t, 0.5, ts.Score, 1e-9)
	require.InDelta(t, math.Sqrt(2)/10, ts.Confidence, 1e-9)
}

func TestPhilosophyBuckets(t *testing.T) {
	require.Equal(t, PhilosophyConservative, PhilosophyFor(-0.8))
	require.Equal(t, PhilosophyConservative, PhilosophyFor(-0.6))
	require.Equal(t, PhilosophyLeanConservative, PhilosophyFor(-0.4))
	require.Equal(t, PhilosophyModerate, PhilosophyFor(0))
	require.Equal(t, PhilosophyModerate, PhilosophyFor(0.19))
	require.Equal(t, PhilosophyLeanProgressive, PhilosophyFor(0.2))
	require.Equal(t, PhilosophyProgressive, PhilosophyFor(0.6))
	require.Equal(t, PhilosophyProgressive, PhilosophyFor(1))
}

func TestCalculateScoresEndToEnd(t *testing.T) {
	store := newFakeScoreStore()
	store.legislators = []models.Legislator{
		{ExternalID: "A001", Name: "L1"},
		{ExternalID: "A002", Name: "L2"},
	}
	store.topics = []models.Topic{{ID: "healthcare", Name: "Healthcare"}}
	store.facts = []models.VoteFact{
		{LegislatorID: "A001", TopicID: "healthcare", BillID: "b1", Polarity: fp(0.8), Vote: models.VoteYea},
		{LegislatorID: "A001", TopicID: "healthcare", BillID: "b2", Polarity: fp(-0.6), Vote: models.VoteNay},
		{LegislatorID: "A002", TopicID: "healthcare", BillID: "b1", Polarity: fp(0.8), Vote: models.VoteNay},
		{LegislatorID: "A002", TopicID: "healthcare", BillID: "b2", Polarity: fp(-0.6), Vote: models.VotePresent},
	}

	engine := NewEngine(store, logger.NewNop())
	sum, err := engine.CalculateScores(context.Background())
	require.NoError(t, err)
	require.Empty(t, sum.Errors)
	require.Equal(t, 2, sum.TopicScores)
	require.Equal(t, 2, sum.AggregateScores)

	l1 := store.topicScores["A001/healthcare"]
	require.Equal(t, 2, l1.VoteCount)
	require.InDelta(t, 0.7, l1.Score, 1e-9)

	l2 := store.topicScores["A002/healthcare"]
	require.Equal(t, 1, l2.VoteCount)
	require.InDelta(t, -0.8, l2.Score, 1e-9)

	require.InDelta(t, 0.7, store.aggregateScores["A001"].OverallScore, 1e-9)
	require.Equal(t, PhilosophyProgressive, store.aggregateScores["A001"].Philosophy)
	require.Equal(t, PhilosophyConservative, store.aggregateScores["A002"].Philosophy)
}

func TestCalculateScoresEmitsExplicitZeroRows(t *testing.T) {
	store := newFakeScoreStore()
	store.legislators = []models.Legislator{{ExternalID: "A001", Name: "L1"}}
	store.topics = []models.Topic{
		{ID: "healthcare", Name: "Healthcare"},
		{ID: "economy", Name: "Economy"},
	}
	store.facts = []models.VoteFact{
		{LegislatorID: "A001", TopicID: "healthcare", BillID: "b1", Polarity: fp(0.4), Vote: models.VoteYea},
	}

	engine := NewEngine(store, logger.NewNop())
	sum, err := engine.CalculateScores(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, sum.TopicScores)

	// The no-data topic exists as an explicit zero row, never omitted.
	econ, ok := store.topicScores["A001/economy"]
	require.True(t, ok)
	require.Equal(t, models.TopicScore{LegislatorID: "A001", TopicID: "economy"}, econ)

	// The aggregate averages the zero-confidence row too, pulling the overall
	// score toward moderate.
	require.InDelta(t, 0.2, store.aggregateScores["A001"].OverallScore, 1e-9)
}
