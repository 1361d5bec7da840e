package mapper

import (
	"time"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:                d.Id,
		Filename:          d.Filename,
		Text:              d.Text,
		Language:          d.Language,
		PageCount:         d.PageCount,
		OcrConfidence:     d.OcrConfidence,
		PartyA:            d.PartyA,
		PartyB:            d.PartyB,
		ContractTypeId:    d.ContractTypeId,
		JurisdictionId:    d.JurisdictionId,
		MetadataValidated: d.MetadataValidated,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:                d.Id,
		Filename:          d.Filename,
		Text:              d.Text,
		Language:          d.Language,
		PageCount:         d.PageCount,
		OcrConfidence:     d.OcrConfidence,
		PartyA:            d.PartyA,
		PartyB:            d.PartyB,
		ContractTypeId:    d.ContractTypeId,
		JurisdictionId:    d.JurisdictionId,
		MetadataValidated: d.MetadataValidated,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}
