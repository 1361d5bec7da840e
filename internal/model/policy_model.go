package model

import (
	"github.com/google/uuid"
)

type Policy struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Category string    `gorm:"type:varchar(64)"`
	Content  string    `gorm:"type:text;not null"`
	Position int       `gorm:"not null;default:0"`
	Active   bool      `gorm:"not null;default:true;index"`
}

func (Policy) TableName() string {
	return "policies"
}
