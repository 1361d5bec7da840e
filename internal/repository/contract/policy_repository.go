package contract

import (
	"context"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/repository/specification"
)

type PolicyRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Policy, error)
}

type LegalNormRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LegalNorm, error)
}
