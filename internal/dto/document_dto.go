package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Filename      string  `json:"filename" validate:"required"`
	Text          string  `json:"text" validate:"required"`
	Language      string  `json:"language" validate:"omitempty,oneof=it en"`
	PageCount     int     `json:"page_count" validate:"omitempty,min=0"`
	OcrConfidence float64 `json:"ocr_confidence" validate:"omitempty,min=0,max=1"`
}

type CreateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type AttachMetadataRequest struct {
	Id             uuid.UUID
	PartyA         string `json:"party_a" validate:"required"`
	PartyB         string `json:"party_b" validate:"required"`
	ContractTypeId string `json:"contract_type_id" validate:"required"`
	JurisdictionId string `json:"jurisdiction_id" validate:"required"`
}

type AttachMetadataResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowDocumentResponse struct {
	Id                uuid.UUID  `json:"id"`
	Filename          string     `json:"filename"`
	Language          string     `json:"language"`
	PageCount         int        `json:"page_count"`
	OcrConfidence     float64    `json:"ocr_confidence"`
	PartyA            *string    `json:"party_a"`
	PartyB            *string    `json:"party_b"`
	ContractTypeId    *string    `json:"contract_type_id"`
	JurisdictionId    *string    `json:"jurisdiction_id"`
	MetadataValidated bool       `json:"metadata_validated"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}
