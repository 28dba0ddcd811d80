package workflows

import "civiscore/internal/pipeline"

type FullSyncInput struct {
	Congress        int  `json:"congress"`
	PageSize        int  `json:"page_size,omitempty"`
	LegislatorLimit int  `json:"legislator_limit,omitempty"`
	BillLimit       int  `json:"bill_limit,omitempty"`
	VoteLimit       int  `json:"vote_limit,omitempty"`
	SkipScoring     bool `json:"skip_scoring,omitempty"`
}

type FullSyncProgress struct {
	RunID        string                     `json:"run_id"`
	CurrentStage string                     `json:"current_stage"`
	Stages       map[string]pipeline.Result `json:"stages"`
	Errors       []string                   `json:"errors"`
}
