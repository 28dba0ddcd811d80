package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"civiscore/internal/activities"
	"civiscore/internal/pipeline"
)

const QueryGetSyncProgress = "GetSyncProgress"

// FullSyncWorkflow runs the pipeline stages strictly one after another:
// legislators, bills, votes, scores. Activities get a single attempt — the
// stages already tolerate per-record failures internally, and a blind retry
// would re-walk the upstream API against its rate limits. A failed stage is
// recorded and the next stage still runs; the final result is successful only
// when no stage contributed any error.
func FullSyncWorkflow(ctx workflow.Context, input FullSyncInput) (pipeline.Result, error) {
	runID := workflow.GetInfo(ctx).WorkflowExecution.ID
	progress := FullSyncProgress{
		RunID:  runID,
		Stages: map[string]pipeline.Result{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetSyncProgress, func() (FullSyncProgress, error) {
		return progress, nil
	}); err != nil {
		return pipeline.Result{}, err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Hour,
		HeartbeatTimeout:    0,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	stageIn := activities.StageInput{
		Congress:        input.Congress,
		PageSize:        input.PageSize,
		LegislatorLimit: input.LegislatorLimit,
		BillLimit:       input.BillLimit,
		VoteLimit:       input.VoteLimit,
	}

	started := workflow.Now(ctx)
	merged := pipeline.Result{Counts: map[string]int{}, Errors: []string{}}

	progress.CurrentStage = "topics"
	if err := workflow.ExecuteActivity(ctx, "EnsureTopicsActivity", stageIn).Get(ctx, nil); err != nil {
		merged.Errors = append(merged.Errors, fmt.Sprintf("topics: %v", err))
	}

	stages := []string{"legislators", "bills", "votes"}
	stageActivities := map[string]string{
		"legislators": "SyncLegislatorsActivity",
		"bills":       "SyncBillsActivity",
		"votes":       "SyncVotesActivity",
	}
	if !input.SkipScoring {
		stages = append(stages, "scores")
		stageActivities["scores"] = "CalculateScoresActivity"
	}

	for _, stage := range stages {
		progress.CurrentStage = stage
		var res pipeline.Result
		if err := workflow.ExecuteActivity(ctx, stageActivities[stage], stageIn).Get(ctx, &res); err != nil {
			// Stage blew up past its own error capture; record it and move
			// on so later stages still run against whatever persisted.
			merged.Errors = append(merged.Errors, fmt.Sprintf("%s: %v", stage, err))
			progress.Errors = merged.Errors
			continue
		}
		progress.Stages[stage] = res
		merged.Merge(res)
		progress.Errors = merged.Errors
	}

	progress.CurrentStage = "done"
	merged.Success = len(merged.Errors) == 0
	merged.DurationMS = workflow.Now(ctx).Sub(started).Milliseconds()

	_ = workflow.ExecuteActivity(ctx, "WriteSyncReportActivity", activities.WriteSyncReportInput{
		RunID:    runID,
		Congress: input.Congress,
		Result:   merged,
	}).Get(ctx, nil)

	return merged, nil
}
