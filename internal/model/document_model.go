package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename          string    `gorm:"type:varchar(255);not null"`
	Text              string    `gorm:"type:text;not null"`
	Language          string    `gorm:"type:varchar(8);not null;default:'it'"`
	PageCount         int       `gorm:"not null;default:0"`
	OcrConfidence     float64   `gorm:"not null;default:0"`
	PartyA            *string   `gorm:"type:varchar(255)"`
	PartyB            *string   `gorm:"type:varchar(255)"`
	ContractTypeId    *string   `gorm:"type:varchar(64)"`
	JurisdictionId    *string   `gorm:"type:varchar(64)"`
	MetadataValidated bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
