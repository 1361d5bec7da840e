package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AnalysisStatusPending    = "pending"
	AnalysisStatusProcessing = "processing"
	AnalysisStatusCompleted  = "completed"
	AnalysisStatusFailed     = "failed"
)

const (
	AnalysisStageChunking    = "chunking"
	AnalysisStageAnalyzing   = "analyzing"
	AnalysisStageSummarizing = "summarizing"
	AnalysisStageSaving      = "saving"
)

const (
	ViewpointClient   = "client"
	ViewpointSupplier = "supplier"
)

const (
	AssessmentPositivo    = "positivo"
	AssessmentEquilibrato = "equilibrato"
	AssessmentDaRivedere  = "da_rivedere"
)

// Analysis is the persisted state machine instance tracking one document's
// analysis run from request to terminal outcome. Only the orchestrator
// writes to a given analysis id once it is running.
type Analysis struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	Status         string
	Stage          string
	ProgressDetail string
	TotalChunks    int
	CurrentChunk   int
	Enhanced       bool
	Viewpoint      *string // basic mode only
	StartedAt      *time.Time
	CompletedAt    *time.Time
	ErrorMessage   *string

	ExecutiveSummary  *string
	OverallAssessment *string
	Recommendation    *string

	TotalFindings     int
	StrengthCount     int
	ImprovementCount  int
	ImportanteCount   int
	ConsigliatoCount  int
	SuggerimentoCount int

	CreatedAt time.Time
}

// IsTerminal reports whether the record reached one of the two final states.
func (a *Analysis) IsTerminal() bool {
	return a.Status == AnalysisStatusCompleted || a.Status == AnalysisStatusFailed
}

// IsInFlight reports whether a new run for the same document must be refused.
func (a *Analysis) IsInFlight() bool {
	return a.Status == AnalysisStatusPending || a.Status == AnalysisStatusProcessing
}
