package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	LanguageItalian = "it"
	LanguageEnglish = "en"
)

// Document is the already-extracted plain-text body produced by the
// upstream OCR/extraction step. The text is immutable; only validated
// metadata may be attached afterwards to enable an enhanced run.
type Document struct {
	Id                uuid.UUID
	Filename          string
	Text              string
	Language          string
	PageCount         int
	OcrConfidence     float64
	PartyA            *string
	PartyB            *string
	ContractTypeId    *string
	JurisdictionId    *string
	MetadataValidated bool
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// HasValidatedMetadata reports whether the document carries everything the
// enhanced analysis flow requires.
func (d *Document) HasValidatedMetadata() bool {
	return d.MetadataValidated &&
		d.PartyA != nil && *d.PartyA != "" &&
		d.PartyB != nil && *d.PartyB != "" &&
		d.ContractTypeId != nil && *d.ContractTypeId != "" &&
		d.JurisdictionId != nil && *d.JurisdictionId != ""
}
