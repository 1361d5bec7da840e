package implementation

import (
	"context"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/mapper"
	"github.com/Tigierre/contractguardian/internal/model"
	"github.com/Tigierre/contractguardian/internal/repository/contract"
	"github.com/Tigierre/contractguardian/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FindingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FindingMapper
}

func NewFindingRepository(db *gorm.DB) contract.FindingRepository {
	return &FindingRepositoryImpl{
		db:     db,
		mapper: mapper.NewFindingMapper(),
	}
}

func (r *FindingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FindingRepositoryImpl) CreateBatch(ctx context.Context, findings []*entity.Finding) error {
	if len(findings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(findings)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*findings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *FindingRepositoryImpl) DeleteByAnalysisId(ctx context.Context, analysisId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("analysis_id = ?", analysisId).Delete(&model.Finding{}).Error
}

func (r *FindingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Finding, error) {
	var models []*model.Finding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
