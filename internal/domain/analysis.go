package domain

import (
	"fmt"
	"time"
)

// MaxStoredTextLength bounds the copy of the original text kept with an analysis.
const MaxStoredTextLength = 10000

// Analysis is the persisted summary of one source for one calendar day.
type Analysis struct {
	ID                  int64
	Name                string
	TotalArticles       int
	HighPriorityCount   int
	MediumPriorityCount int
	OriginalText        string
	Metadata            AnalysisMetadata
	CreatedAt           time.Time
}

// AnalysisMetadata is stored as JSON next to the analysis row.
type AnalysisMetadata struct {
	Source        string    `json:"source"`
	AutoGenerated bool      `json:"auto_generated"`
	TextLength    int       `json:"text_length"`
	Timestamp     time.Time `json:"timestamp"`
}

// AnalysisName builds the idempotency key "AUTO_<source>_<yyyymmdd>".
func AnalysisName(source string, day time.Time) string {
	return fmt.Sprintf("AUTO_%s_%s", source, day.Format("20060102"))
}

// TruncateRunes returns at most n characters of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
