package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.EnsureTopicsActivity)
	w.RegisterActivity(a.SyncLegislatorsActivity)
	w.RegisterActivity(a.SyncBillsActivity)
	w.RegisterActivity(a.SyncVotesActivity)
	w.RegisterActivity(a.CalculateScoresActivity)
	w.RegisterActivity(a.WriteSyncReportActivity)
}
