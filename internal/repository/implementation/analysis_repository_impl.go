package implementation

import (
	"context"
	"errors"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/mapper"
	"github.com/Tigierre/contractguardian/internal/model"
	"github.com/Tigierre/contractguardian/internal/repository/contract"
	"github.com/Tigierre/contractguardian/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalysisRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalysisMapper
}

func NewAnalysisRepository(db *gorm.DB) contract.AnalysisRepository {
	return &AnalysisRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalysisMapper(),
	}
}

func (r *AnalysisRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AnalysisRepositoryImpl) Create(ctx context.Context, analysis *entity.Analysis) error {
	m := r.mapper.ToModel(analysis)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*analysis = *r.mapper.ToEntity(m)
	return nil
}

func (r *AnalysisRepositoryImpl) Update(ctx context.Context, analysis *entity.Analysis) error {
	m := r.mapper.ToModel(analysis)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*analysis = *r.mapper.ToEntity(m)
	return nil
}

func (r *AnalysisRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Analysis{}, id).Error
}

func (r *AnalysisRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Analysis, error) {
	var m model.Analysis
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AnalysisRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Analysis, error) {
	var models []*model.Analysis
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AnalysisRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Analysis{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
