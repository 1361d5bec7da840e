package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByDocumentId filters analyses belonging to a document.
type ByDocumentId struct {
	DocumentId uuid.UUID
}

func (s ByDocumentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}

// InFlight matches jobs that have not reached a terminal state yet.
type InFlight struct{}

func (s InFlight) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", []string{"pending", "processing"})
}

// ByAnalysisId filters findings belonging to an analysis run.
type ByAnalysisId struct {
	AnalysisId uuid.UUID
}

func (s ByAnalysisId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("analysis_id = ?", s.AnalysisId)
}
