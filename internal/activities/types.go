package activities

import "civiscore/internal/pipeline"

type StageInput struct {
	Congress        int  `json:"congress"`
	PageSize        int  `json:"page_size,omitempty"`
	LegislatorLimit int  `json:"legislator_limit,omitempty"`
	BillLimit       int  `json:"bill_limit,omitempty"`
	VoteLimit       int  `json:"vote_limit,omitempty"`
	SkipScoring     bool `json:"skip_scoring,omitempty"`
}

type WriteSyncReportInput struct {
	RunID    string          `json:"run_id"`
	Congress int             `json:"congress"`
	Result   pipeline.Result `json:"result"`
}
