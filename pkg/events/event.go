package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ANALYSIS_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation services publish.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeAnalysisCompleted = "ANALYSIS_COMPLETED"
	TypeAnalysisFailed    = "ANALYSIS_FAILED"
)

// NewAnalysisCompleted describes a finished analysis job.
func NewAnalysisCompleted(analysisId, documentId string, totalFindings int) Event {
	return BaseEvent{
		Type: TypeAnalysisCompleted,
		Data: map[string]interface{}{
			"analysis_id":    analysisId,
			"document_id":    documentId,
			"total_findings": totalFindings,
		},
		OccurredAt: time.Now(),
	}
}

// NewAnalysisFailed describes a job that reached the failed state.
func NewAnalysisFailed(analysisId, documentId, reason string) Event {
	return BaseEvent{
		Type: TypeAnalysisFailed,
		Data: map[string]interface{}{
			"analysis_id": analysisId,
			"document_id": documentId,
			"reason":      reason,
		},
		OccurredAt: time.Now(),
	}
}
