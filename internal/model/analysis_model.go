package model

import (
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status         string     `gorm:"type:varchar(16);not null;index"`
	Stage          string     `gorm:"type:varchar(16)"`
	ProgressDetail string     `gorm:"type:varchar(255)"`
	TotalChunks    int        `gorm:"not null;default:0"`
	CurrentChunk   int        `gorm:"not null;default:0"`
	Enhanced       bool       `gorm:"not null;default:false"`
	Viewpoint      *string    `gorm:"type:varchar(16)"`
	StartedAt      *time.Time `gorm:""`
	CompletedAt    *time.Time `gorm:""`
	ErrorMessage   *string    `gorm:"type:text"`

	ExecutiveSummary  *string `gorm:"type:text"`
	OverallAssessment *string `gorm:"type:varchar(16)"`
	Recommendation    *string `gorm:"type:text"`

	TotalFindings     int `gorm:"not null;default:0"`
	StrengthCount     int `gorm:"not null;default:0"`
	ImprovementCount  int `gorm:"not null;default:0"`
	ImportanteCount   int `gorm:"not null;default:0"`
	ConsigliatoCount  int `gorm:"not null;default:0"`
	SuggerimentoCount int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Analysis) TableName() string {
	return "analyses"
}
