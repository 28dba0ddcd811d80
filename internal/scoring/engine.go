package scoring

import (
	"context"
	"fmt"
	"math"

	"civiscore/internal/classify"
	"civiscore/internal/logger"
	"civiscore/internal/models"
)

// Philosophy labels, ordered most conservative to most progressive. Bucket
// boundaries are fixed constants, not derived.
const (
	PhilosophyConservative     = "conservative"
	PhilosophyLeanConservative = "lean_conservative"
	PhilosophyModerate         = "moderate"
	PhilosophyLeanProgressive  = "lean_progressive"
	PhilosophyProgressive      = "progressive"
)

const (
	strongBoundary = 0.6
	leanBoundary   = 0.2
)

// confidenceSaturation is the qualifying-vote count at which confidence
// reaches exactly 1.
const confidenceSaturation = 100

// Store is the slice of persistence the engine needs. The engine never calls
// the external API; it is a pure function of what earlier stages persisted.
type Store interface {
	ListLegislators(ctx context.Context) ([]models.Legislator, error)
	ListTopics(ctx context.Context) ([]models.Topic, error)
	ListVoteFacts(ctx context.Context) ([]models.VoteFact, error)
	UpsertTopicScore(ctx context.Context, s models.TopicScore) error
	UpsertAggregateScore(ctx context.Context, s models.AggregateScore) error
}

type Engine struct {
	store Store
	log   *logger.Logger
}

func NewEngine(store Store, log *logger.Logger) *Engine {
	return &Engine{store: store, log: log.With("component", "scoring")}
}

type Summary struct {
	TopicScores     int
	AggregateScores int
	Errors          []string
}

// CalculateScores recomputes every (legislator, topic) score from the current
// voting records. Pairs with zero qualifying votes get an explicit
// {score:0, vote_count:0, confidence:0} row so consumers can render "no data"
// uniformly. The aggregate averages ALL of a legislator's topic scores,
// zero-confidence ones included, which pulls sparse-data legislators toward
// the moderate bucket.
func (e *Engine) CalculateScores(ctx context.Context) (Summary, error) {
	legislators, err := e.store.ListLegislators(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load legislators: %w", err)
	}
	topics, err := e.store.ListTopics(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load topics: %w", err)
	}
	facts, err := e.store.ListVoteFacts(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load vote facts: %w", err)
	}

	grouped := make(map[string][]models.VoteFact)
	for _, f := range facts {
		k := f.LegislatorID + "\x00" + f.TopicID
		grouped[k] = append(grouped[k], f)
	}

	var sum Summary
	for _, l := range legislators {
		topicScores := make([]float64, 0, len(topics))
		for _, t := range topics {
			ts := ComputeTopicScore(l.ExternalID, t.ID, grouped[l.ExternalID+"\x00"+t.ID])
			if err := e.store.UpsertTopicScore(ctx, ts); err != nil {
				sum.Errors = append(sum.Errors, fmt.Sprintf("topic score %s/%s: %v", l.ExternalID, t.ID, err))
				continue
			}
			sum.TopicScores++
			topicScores = append(topicScores, ts.Score)
		}

		agg := models.AggregateScore{
			LegislatorID: l.ExternalID,
			OverallScore: mean(topicScores),
		}
		agg.Philosophy = PhilosophyFor(agg.OverallScore)
		if err := e.store.UpsertAggregateScore(ctx, agg); err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("aggregate score %s: %v", l.ExternalID, err))
			continue
		}
		sum.AggregateScores++
	}
	e.log.Info("scores recomputed",
		"legislators", len(legislators),
		"topics", len(topics),
		"topic_scores", sum.TopicScores,
		"errors", len(sum.Errors))
	return sum, nil
}

// ComputeTopicScore derives one (legislator, topic) score from its qualifying
// votes. Qualifying means a Yea or Nay on a bill with a non-null polarity;
// Present and NotVoting contribute no votes at all.
func ComputeTopicScore(legislatorID, topicID string, facts []models.VoteFact) models.TopicScore {
	contributions := make([]float64, 0, len(facts))
	for _, f := range facts {
		if f.Polarity == nil {
			continue
		}
		switch f.Vote {
		case models.VoteYea:
			contributions = append(contributions, *f.Polarity)
		case models.VoteNay:
			contributions = append(contributions, -*f.Polarity)
		}
	}
	if len(contributions) == 0 {
		return models.TopicScore{LegislatorID: legislatorID, TopicID: topicID}
	}
	return models.TopicScore{
		LegislatorID: legislatorID,
		TopicID:      topicID,
		Score:        classify.Clamp(mean(contributions), -1, 1),
		VoteCount:    len(contributions),
		Confidence:   Confidence(len(contributions)),
	}
}

// Confidence grows sub-linearly with sample size and saturates at 100
// qualifying votes: min(1, sqrt(n)/10).
func Confidence(voteCount int) float64 {
	if voteCount <= 0 {
		return 0
	}
	c := math.Sqrt(float64(voteCount)) / math.Sqrt(confidenceSaturation)
	if c > 1 {
		return 1
	}
	return c
}

func PhilosophyFor(score float64) string {
	switch {
	case score <= -strongBoundary:
		return PhilosophyConservative
	case score <= -leanBoundary:
		return PhilosophyLeanConservative
	case score < leanBoundary:
		return PhilosophyModerate
	case score < strongBoundary:
		return PhilosophyLeanProgressive
	default:
		return PhilosophyProgressive
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals))
}
