package contract

import (
	"context"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/repository/specification"

	"github.com/google/uuid"
)

type AnalysisRepository interface {
	Create(ctx context.Context, analysis *entity.Analysis) error
	Update(ctx context.Context, analysis *entity.Analysis) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Analysis, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Analysis, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type FindingRepository interface {
	CreateBatch(ctx context.Context, findings []*entity.Finding) error
	DeleteByAnalysisId(ctx context.Context, analysisId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Finding, error)
}
