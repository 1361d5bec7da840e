package specification

import (
	"gorm.io/gorm"
)

// ActiveOnly matches policies currently enabled for analysis prompts.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// NormScope narrows legal norms to one contract type and jurisdiction,
// keeping only those at or above the relevance floor.
type NormScope struct {
	ContractTypeId string
	JurisdictionId string
	MinRelevance   float64
}

func (s NormScope) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Where("contract_type_id = ?", s.ContractTypeId).
		Where("jurisdiction_id = ?", s.JurisdictionId).
		Where("relevance >= ?", s.MinRelevance)
}
