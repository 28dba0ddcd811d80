package pipeline

// Result is the structured outcome every pipeline entry point returns. The
// HTTP layer maps it onto status codes: success to 200, failure with nonzero
// counts to a partial-success status, failure with zero counts to a server
// error.
type Result struct {
	Success    bool           `json:"success"`
	Counts     map[string]int `json:"counts"`
	Errors     []string       `json:"errors"`
	DurationMS int64          `json:"duration_ms"`
}

func newResult() Result {
	return Result{Counts: map[string]int{}, Errors: []string{}}
}

// TotalCount is the amount of work actually completed, across all counters.
func (r Result) TotalCount() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// Merge folds a stage result into a pipeline-level one: counts and errors are
// carried over verbatim, never summarized.
func (r *Result) Merge(stage Result) {
	for k, n := range stage.Counts {
		r.Counts[k] += n
	}
	r.Errors = append(r.Errors, stage.Errors...)
}
