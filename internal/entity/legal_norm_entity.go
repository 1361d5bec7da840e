package entity

import (
	"github.com/google/uuid"
)

// LegalNorm is a citable external rule record, jurisdiction-specific,
// that an enhanced-mode finding may reference by NormId.
type LegalNorm struct {
	Id             uuid.UUID
	NormId         string
	Title          string
	Citation       string
	Url            string
	ContractTypeId string
	JurisdictionId string
	Relevance      float64
}
