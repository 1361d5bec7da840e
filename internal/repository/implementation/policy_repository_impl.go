package implementation

import (
	"context"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/mapper"
	"github.com/Tigierre/contractguardian/internal/model"
	"github.com/Tigierre/contractguardian/internal/repository/contract"
	"github.com/Tigierre/contractguardian/internal/repository/specification"

	"gorm.io/gorm"
)

type PolicyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PolicyMapper
}

func NewPolicyRepository(db *gorm.DB) contract.PolicyRepository {
	return &PolicyRepositoryImpl{
		db:     db,
		mapper: mapper.NewPolicyMapper(),
	}
}

func (r *PolicyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PolicyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Policy, error) {
	var models []*model.Policy
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type LegalNormRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LegalNormMapper
}

func NewLegalNormRepository(db *gorm.DB) contract.LegalNormRepository {
	return &LegalNormRepositoryImpl{
		db:     db,
		mapper: mapper.NewLegalNormMapper(),
	}
}

func (r *LegalNormRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LegalNormRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LegalNorm, error) {
	var models []*model.LegalNorm
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
