package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Finding struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AnalysisId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title             string         `gorm:"type:varchar(255);not null"`
	ClauseText        string         `gorm:"type:text"`
	Type              string         `gorm:"type:varchar(16);not null"`
	PolicyName        string         `gorm:"type:varchar(255)"`
	Priority          *string        `gorm:"type:varchar(16)"`
	Explanation       string         `gorm:"type:text"`
	RedlineSuggestion *string        `gorm:"type:text"`
	Actor             *string        `gorm:"type:varchar(16)"`
	NormIds           datatypes.JSON `gorm:"type:jsonb"`
	Rank              int            `gorm:"not null;default:0"`
	SourceChunkIndex  int            `gorm:"not null;default:0"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
}

func (Finding) TableName() string {
	return "findings"
}
