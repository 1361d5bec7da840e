package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartAnalysisRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
	Viewpoint  string    `json:"viewpoint" validate:"required,oneof=client supplier"`
}

type StartEnhancedAnalysisRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
}

// StartAnalysisResponse is returned immediately; the run continues in
// the background worker.
type StartAnalysisResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type ShowAnalysisResponse struct {
	Id             uuid.UUID  `json:"id"`
	DocumentId     uuid.UUID  `json:"document_id"`
	Status         string     `json:"status"`
	Stage          string     `json:"stage,omitempty"`
	ProgressDetail string     `json:"progress_detail,omitempty"`
	TotalChunks    int        `json:"total_chunks"`
	CurrentChunk   int        `json:"current_chunk"`
	Enhanced       bool       `json:"enhanced"`
	Viewpoint      *string    `json:"viewpoint,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`

	ExecutiveSummary  *string `json:"executive_summary,omitempty"`
	OverallAssessment *string `json:"overall_assessment,omitempty"`
	Recommendation    *string `json:"recommendation,omitempty"`

	TotalFindings     int `json:"total_findings"`
	StrengthCount     int `json:"strength_count"`
	ImprovementCount  int `json:"improvement_count"`
	ImportanteCount   int `json:"importante_count"`
	ConsigliatoCount  int `json:"consigliato_count"`
	SuggerimentoCount int `json:"suggerimento_count"`

	CreatedAt time.Time `json:"created_at"`
}

type FindingResponse struct {
	Id                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	ClauseText        string    `json:"clause_text"`
	Type              string    `json:"type"`
	PolicyName        string    `json:"policy_name"`
	Priority          *string   `json:"priority,omitempty"`
	Explanation       string    `json:"explanation"`
	RedlineSuggestion *string   `json:"redline_suggestion,omitempty"`
	Actor             *string   `json:"actor,omitempty"`
	NormIds           []string  `json:"norm_ids,omitempty"`
	Rank              int       `json:"rank"`
	SourceChunkIndex  int       `json:"source_chunk_index"`
}

// AnalysisJobPayload is the message body queued for the background worker.
type AnalysisJobPayload struct {
	AnalysisId uuid.UUID `json:"analysis_id"`
}

// ProgressMessage is pushed to websocket subscribers on every state change.
type ProgressMessage struct {
	AnalysisId     uuid.UUID `json:"analysis_id"`
	Status         string    `json:"status"`
	Stage          string    `json:"stage,omitempty"`
	ProgressDetail string    `json:"progress_detail,omitempty"`
	TotalChunks    int       `json:"total_chunks"`
	CurrentChunk   int       `json:"current_chunk"`
}
