package unitofwork

import (
	"context"
	"fmt"

	"github.com/Tigierre/contractguardian/internal/repository/contract"
	"github.com/Tigierre/contractguardian/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // the active transaction, nil when not inside one
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) DocumentRepository() contract.DocumentRepository {
	return implementation.NewDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AnalysisRepository() contract.AnalysisRepository {
	return implementation.NewAnalysisRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FindingRepository() contract.FindingRepository {
	return implementation.NewFindingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PolicyRepository() contract.PolicyRepository {
	return implementation.NewPolicyRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LegalNormRepository() contract.LegalNormRepository {
	return implementation.NewLegalNormRepository(u.getDB())
}
