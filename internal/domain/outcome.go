package domain

import "errors"

// SourceStatus is the terminal state of one source within a daily run.
type SourceStatus string

const (
	StatusPending   SourceStatus = "pending"
	StatusSkipped   SourceStatus = "skipped"
	StatusFailed    SourceStatus = "failed"
	StatusSucceeded SourceStatus = "succeeded"
)

// SourceOutcome describes how processing of a source ended.
type SourceOutcome struct {
	Source     string
	Status     SourceStatus
	AnalysisID int64
	Articles   int
	Err        error
}

// FailedStage returns the stage that failed, if any.
func (o SourceOutcome) FailedStage() Stage {
	var se *StageError
	if errors.As(o.Err, &se) {
		return se.Stage
	}
	return ""
}

// RunSummary aggregates a daily run.
type RunSummary struct {
	RunID     string
	Processed int
	Succeeded int
	Outcomes  []SourceOutcome
}

// Successful reports whether at least one source succeeded.
func (r RunSummary) Successful() bool {
	return r.Succeeded > 0
}
