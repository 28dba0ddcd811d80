package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"civiscore/internal/util"
)

// CalculateScores runs the scoring stage. It touches only previously persisted
// bills and votes, never the external API.
func (p *Pipeline) CalculateScores(ctx context.Context) Result {
	start := time.Now()
	res := newResult()
	sum, err := p.engine.CalculateScores(ctx)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("scoring: %v", err))
		res.DurationMS = time.Since(start).Milliseconds()
		return res
	}
	res.Counts["topic_scores"] = sum.TopicScores
	res.Counts["aggregate_scores"] = sum.AggregateScores
	res.Errors = append(res.Errors, sum.Errors...)
	res.Success = len(res.Errors) == 0
	res.DurationMS = time.Since(start).Milliseconds()
	return res
}

// FullSync runs every stage strictly in order: legislators, bills, votes,
// scores. A stage failing does not stop the stages after it; whatever
// persisted is still scored. Unlike the per-stage rule, full-pipeline success
// requires a completely empty merged error list.
func (p *Pipeline) FullSync(ctx context.Context) Result {
	start := time.Now()
	runID := uuid.NewString()
	res := newResult()
	log := p.log.With("run_id", runID)
	log.Info("full sync started", "congress", p.opts.Congress)

	if err := p.EnsureTopics(ctx); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("topics: %v", err))
	}

	res.Merge(p.SyncLegislators(ctx))
	res.Merge(p.SyncBills(ctx))
	res.Merge(p.SyncVotes(ctx))
	if p.opts.SkipScoring {
		log.Info("scoring stage skipped")
	} else {
		res.Merge(p.CalculateScores(ctx))
	}

	res.Success = len(res.Errors) == 0
	res.DurationMS = time.Since(start).Milliseconds()
	log.Info("full sync finished", "success", res.Success, "errors", len(res.Errors), "duration_ms", res.DurationMS)

	if p.opts.ReportRoot != "" {
		if err := p.WriteReport(runID, res); err != nil {
			log.Warn("sync report not written", "reason", err)
		}
	}
	return res
}

// WriteReport persists the run outcome as a JSON artifact for offline
// inspection.
func (p *Pipeline) WriteReport(runID string, res Result) error {
	if p.opts.ReportRoot == "" {
		return nil
	}
	path := filepath.Join(p.opts.ReportRoot, "runs", runID, "sync_report.json")
	return util.WriteJSONAtomic(path, map[string]any{
		"run_id":       runID,
		"congress":     p.opts.Congress,
		"success":      res.Success,
		"counts":       res.Counts,
		"errors":       res.Errors,
		"duration_ms":  res.DurationMS,
		"generated_at": time.Now().UTC(),
	})
}
