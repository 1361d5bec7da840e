package dto

import (
	"github.com/google/uuid"
)

type PolicyResponse struct {
	Id       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Content  string    `json:"content"`
	Position int       `json:"position"`
}
