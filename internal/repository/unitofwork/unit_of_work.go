package unitofwork

import (
	"context"

	"github.com/Tigierre/contractguardian/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	AnalysisRepository() contract.AnalysisRepository
	FindingRepository() contract.FindingRepository
	PolicyRepository() contract.PolicyRepository
	LegalNormRepository() contract.LegalNormRepository
}
