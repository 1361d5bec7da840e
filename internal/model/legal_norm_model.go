package model

import (
	"github.com/google/uuid"
)

type LegalNorm struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NormId         string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Citation       string    `gorm:"type:varchar(255)"`
	Url            string    `gorm:"type:varchar(512)"`
	ContractTypeId string    `gorm:"type:varchar(64);not null;index:idx_norms_scope"`
	JurisdictionId string    `gorm:"type:varchar(64);not null;index:idx_norms_scope"`
	Relevance      float64   `gorm:"not null;default:0"`
}

func (LegalNorm) TableName() string {
	return "legal_norms"
}
