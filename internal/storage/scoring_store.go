package storage

// ScoringStore composes the repos the scoring engine reads and writes.
type ScoringStore struct {
	*LegislatorRepo
	*TopicRepo
	*ScoreRepo
}

func NewScoringStore(db *DB) *ScoringStore {
	return &ScoringStore{
		LegislatorRepo: NewLegislatorRepo(db),
		TopicRepo:      NewTopicRepo(db),
		ScoreRepo:      NewScoreRepo(db),
	}
}
