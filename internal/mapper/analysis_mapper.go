package mapper

import (
	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/model"
)

type AnalysisMapper struct{}

func NewAnalysisMapper() *AnalysisMapper {
	return &AnalysisMapper{}
}

func (m *AnalysisMapper) ToEntity(a *model.Analysis) *entity.Analysis {
	if a == nil {
		return nil
	}

	return &entity.Analysis{
		Id:             a.Id,
		DocumentId:     a.DocumentId,
		Status:         a.Status,
		Stage:          a.Stage,
		ProgressDetail: a.ProgressDetail,
		TotalChunks:    a.TotalChunks,
		CurrentChunk:   a.CurrentChunk,
		Enhanced:       a.Enhanced,
		Viewpoint:      a.Viewpoint,
		StartedAt:      a.StartedAt,
		CompletedAt:    a.CompletedAt,
		ErrorMessage:   a.ErrorMessage,

		ExecutiveSummary:  a.ExecutiveSummary,
		OverallAssessment: a.OverallAssessment,
		Recommendation:    a.Recommendation,

		TotalFindings:     a.TotalFindings,
		StrengthCount:     a.StrengthCount,
		ImprovementCount:  a.ImprovementCount,
		ImportanteCount:   a.ImportanteCount,
		ConsigliatoCount:  a.ConsigliatoCount,
		SuggerimentoCount: a.SuggerimentoCount,

		CreatedAt: a.CreatedAt,
	}
}

func (m *AnalysisMapper) ToModel(a *entity.Analysis) *model.Analysis {
	if a == nil {
		return nil
	}

	return &model.Analysis{
		Id:             a.Id,
		DocumentId:     a.DocumentId,
		Status:         a.Status,
		Stage:          a.Stage,
		ProgressDetail: a.ProgressDetail,
		TotalChunks:    a.TotalChunks,
		CurrentChunk:   a.CurrentChunk,
		Enhanced:       a.Enhanced,
		Viewpoint:      a.Viewpoint,
		StartedAt:      a.StartedAt,
		CompletedAt:    a.CompletedAt,
		ErrorMessage:   a.ErrorMessage,

		ExecutiveSummary:  a.ExecutiveSummary,
		OverallAssessment: a.OverallAssessment,
		Recommendation:    a.Recommendation,

		TotalFindings:     a.TotalFindings,
		StrengthCount:     a.StrengthCount,
		ImprovementCount:  a.ImprovementCount,
		ImportanteCount:   a.ImportanteCount,
		ConsigliatoCount:  a.ConsigliatoCount,
		SuggerimentoCount: a.SuggerimentoCount,

		CreatedAt: a.CreatedAt,
	}
}

func (m *AnalysisMapper) ToEntities(analyses []*model.Analysis) []*entity.Analysis {
	entities := make([]*entity.Analysis, len(analyses))
	for i, a := range analyses {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
