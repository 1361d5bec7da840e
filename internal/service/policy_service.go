package service

import (
	"context"

	"github.com/Tigierre/contractguardian/internal/dto"
	"github.com/Tigierre/contractguardian/internal/repository/specification"
	"github.com/Tigierre/contractguardian/internal/repository/unitofwork"
)

type IPolicyService interface {
	List(ctx context.Context) ([]*dto.PolicyResponse, error)
}

type policyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPolicyService(uowFactory unitofwork.RepositoryFactory) IPolicyService {
	return &policyService{
		uowFactory: uowFactory,
	}
}

// List returns the active policies in prompt-injection order.
func (s *policyService) List(ctx context.Context) ([]*dto.PolicyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	policies, err := uow.PolicyRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PolicyResponse, len(policies))
	for i, p := range policies {
		res[i] = &dto.PolicyResponse{
			Id:       p.Id,
			Name:     p.Name,
			Category: p.Category,
			Content:  p.Content,
			Position: p.Position,
		}
	}

	return res, nil
}
