package mapper

import (
	"encoding/json"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/model"
)

type FindingMapper struct{}

func NewFindingMapper() *FindingMapper {
	return &FindingMapper{}
}

func (m *FindingMapper) ToEntity(f *model.Finding) *entity.Finding {
	if f == nil {
		return nil
	}

	var normIds []string
	if len(f.NormIds) > 0 {
		// A decode failure leaves the slice empty rather than failing the read.
		_ = json.Unmarshal(f.NormIds, &normIds)
	}

	return &entity.Finding{
		Id:                f.Id,
		AnalysisId:        f.AnalysisId,
		Title:             f.Title,
		ClauseText:        f.ClauseText,
		Type:              f.Type,
		PolicyName:        f.PolicyName,
		Priority:          f.Priority,
		Explanation:       f.Explanation,
		RedlineSuggestion: f.RedlineSuggestion,
		Actor:             f.Actor,
		NormIds:           normIds,
		Rank:              f.Rank,
		SourceChunkIndex:  f.SourceChunkIndex,
		CreatedAt:         f.CreatedAt,
	}
}

func (m *FindingMapper) ToModel(f *entity.Finding) *model.Finding {
	if f == nil {
		return nil
	}

	normIds := []byte("[]")
	if len(f.NormIds) > 0 {
		if raw, err := json.Marshal(f.NormIds); err == nil {
			normIds = raw
		}
	}

	return &model.Finding{
		Id:                f.Id,
		AnalysisId:        f.AnalysisId,
		Title:             f.Title,
		ClauseText:        f.ClauseText,
		Type:              f.Type,
		PolicyName:        f.PolicyName,
		Priority:          f.Priority,
		Explanation:       f.Explanation,
		RedlineSuggestion: f.RedlineSuggestion,
		Actor:             f.Actor,
		NormIds:           normIds,
		Rank:              f.Rank,
		SourceChunkIndex:  f.SourceChunkIndex,
		CreatedAt:         f.CreatedAt,
	}
}

func (m *FindingMapper) ToEntities(findings []*model.Finding) []*entity.Finding {
	entities := make([]*entity.Finding, len(findings))
	for i, f := range findings {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

func (m *FindingMapper) ToModels(findings []*entity.Finding) []*model.Finding {
	models := make([]*model.Finding, len(findings))
	for i, f := range findings {
		models[i] = m.ToModel(f)
	}
	return models
}
