package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy of the pipeline. Stage failures wrap one of these so callers
// can use errors.Is.
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrAvailability      = errors.New("application not available")
	ErrDownload          = errors.New("download failed")
	ErrExtraction        = errors.New("text extraction failed")
	ErrAnalysis          = errors.New("analysis failed")
	ErrParsing           = errors.New("parsing failed")
	ErrPersistence       = errors.New("persistence failed")
	ErrNoSourceSucceeded = errors.New("no source succeeded")
)

// Stage names a step of per-source processing.
type Stage string

const (
	StageDownload Stage = "download"
	StageExtract  Stage = "extract"
	StageAnalyze  Stage = "analyze"
	StageParse    Stage = "parse"
	StagePersist  Stage = "persist"
)

// Sentinel returns the taxonomy error matching the stage.
func (s Stage) Sentinel() error {
	switch s {
	case StageDownload:
		return ErrDownload
	case StageExtract:
		return ErrExtraction
	case StageAnalyze:
		return ErrAnalysis
	case StageParse:
		return ErrParsing
	case StagePersist:
		return ErrPersistence
	default:
		return nil
	}
}

// StageError records which stage of which source failed and why.
type StageError struct {
	Source string
	Stage  Stage
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("source %s: %s: %v", e.Source, e.Stage, e.Err)
}

// Unwrap exposes both the stage sentinel and the underlying cause.
func (e *StageError) Unwrap() []error {
	errs := []error{e.Err}
	if s := e.Stage.Sentinel(); s != nil {
		errs = append(errs, s)
	}
	return errs
}
