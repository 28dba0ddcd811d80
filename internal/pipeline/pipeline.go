package pipeline

import (
	"context"

	"civiscore/internal/classify"
	"civiscore/internal/logger"
	"civiscore/internal/scoring"
)

// Options is the only external configuration the pipeline accepts: which
// congress to sync, optional per-stage record caps, and a scoring skip flag.
type Options struct {
	Congress        int    `json:"congress"`
	PageSize        int    `json:"page_size"`
	LegislatorLimit int    `json:"legislator_limit"`
	BillLimit       int    `json:"bill_limit"`
	VoteLimit       int    `json:"vote_limit"`
	SkipScoring     bool   `json:"skip_scoring"`
	ReportRoot      string `json:"report_root,omitempty"`
}

func (o Options) pageSize() int {
	if o.PageSize <= 0 {
		return 250
	}
	return o.PageSize
}

// Pipeline runs the ingestion stages. Everything is strictly sequential: one
// page at a time, one record at a time, a single in-flight request, because
// the client's pacing delays are the rate-limit contract and parallel fan-out
// would break it. Two pipelines must not run against the same store at once.
type Pipeline struct {
	fetcher    Fetcher
	stores     Stores
	classifier *classify.Classifier
	engine     *scoring.Engine
	opts       Options
	log        *logger.Logger
}

func New(fetcher Fetcher, stores Stores, cls *classify.Classifier, engine *scoring.Engine, opts Options, log *logger.Logger) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		stores:     stores,
		classifier: cls,
		engine:     engine,
		opts:       opts,
		log:        log.With("component", "pipeline"),
	}
}

// EnsureTopics seeds the static reference topics. Safe to call every run.
func (p *Pipeline) EnsureTopics(ctx context.Context) error {
	return p.stores.Topics.EnsureTopics(ctx, p.classifier.Topics())
}
