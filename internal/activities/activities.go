package activities

import (
	"context"
	"time"

	"civiscore/internal/classify"
	"civiscore/internal/config"
	"civiscore/internal/congress"
	"civiscore/internal/logger"
	"civiscore/internal/pipeline"
	"civiscore/internal/scoring"
	"civiscore/internal/storage"
)

type Activities struct {
	cfg        config.Config
	client     *congress.Client
	stores     pipeline.Stores
	classifier *classify.Classifier
	engine     *scoring.Engine
	log        *logger.Logger
}

func New(cfg config.Config, db *storage.DB, log *logger.Logger) *Activities {
	client := congress.NewClient(cfg.CongressAPIBase, cfg.CongressAPIKey,
		congress.WithDelays(
			time.Duration(cfg.RecordDelayMillis)*time.Millisecond,
			time.Duration(cfg.PageDelayMillis)*time.Millisecond,
		))
	cls := classify.New(classify.DefaultConfig())
	return &Activities{
		cfg:    cfg,
		client: client,
		stores: pipeline.Stores{
			Legislators: storage.NewLegislatorRepo(db),
			Topics:      storage.NewTopicRepo(db),
			Bills:       storage.NewBillRepo(db),
			Votes:       storage.NewVoteRepo(db),
		},
		classifier: cls,
		engine:     scoring.NewEngine(storage.NewScoringStore(db), log),
		log:        log,
	}
}

func (a *Activities) pipeline(in StageInput) *pipeline.Pipeline {
	congressNumber := in.Congress
	if congressNumber <= 0 {
		congressNumber = a.cfg.CongressNumber
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = a.cfg.PageSize
	}
	opts := pipeline.Options{
		Congress:        congressNumber,
		PageSize:        pageSize,
		LegislatorLimit: fallbackLimit(in.LegislatorLimit, a.cfg.LegislatorLimit),
		BillLimit:       fallbackLimit(in.BillLimit, a.cfg.BillLimit),
		VoteLimit:       fallbackLimit(in.VoteLimit, a.cfg.VoteLimit),
		SkipScoring:     in.SkipScoring,
		ReportRoot:      a.cfg.ReportOutRoot,
	}
	return pipeline.New(a.client, a.stores, a.classifier, a.engine, opts, a.log)
}

func fallbackLimit(requested, configured int) int {
	if requested > 0 {
		return requested
	}
	return configured
}

func (a *Activities) EnsureTopicsActivity(ctx context.Context, in StageInput) error {
	return a.pipeline(in).EnsureTopics(ctx)
}

func (a *Activities) SyncLegislatorsActivity(ctx context.Context, in StageInput) (pipeline.Result, error) {
	return a.pipeline(in).SyncLegislators(ctx), nil
}

func (a *Activities) SyncBillsActivity(ctx context.Context, in StageInput) (pipeline.Result, error) {
	return a.pipeline(in).SyncBills(ctx), nil
}

func (a *Activities) SyncVotesActivity(ctx context.Context, in StageInput) (pipeline.Result, error) {
	return a.pipeline(in).SyncVotes(ctx), nil
}

func (a *Activities) CalculateScoresActivity(ctx context.Context, in StageInput) (pipeline.Result, error) {
	return a.pipeline(in).CalculateScores(ctx), nil
}

func (a *Activities) WriteSyncReportActivity(_ context.Context, in WriteSyncReportInput) error {
	return a.pipeline(StageInput{Congress: in.Congress}).WriteReport(in.RunID, in.Result)
}
