package mapper

import (
	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/model"
)

type PolicyMapper struct{}

func NewPolicyMapper() *PolicyMapper {
	return &PolicyMapper{}
}

func (m *PolicyMapper) ToEntity(p *model.Policy) *entity.Policy {
	if p == nil {
		return nil
	}

	return &entity.Policy{
		Id:       p.Id,
		Name:     p.Name,
		Category: p.Category,
		Content:  p.Content,
		Position: p.Position,
		Active:   p.Active,
	}
}

func (m *PolicyMapper) ToEntities(policies []*model.Policy) []*entity.Policy {
	entities := make([]*entity.Policy, len(policies))
	for i, p := range policies {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

type LegalNormMapper struct{}

func NewLegalNormMapper() *LegalNormMapper {
	return &LegalNormMapper{}
}

func (m *LegalNormMapper) ToEntity(n *model.LegalNorm) *entity.LegalNorm {
	if n == nil {
		return nil
	}

	return &entity.LegalNorm{
		Id:             n.Id,
		NormId:         n.NormId,
		Title:          n.Title,
		Citation:       n.Citation,
		Url:            n.Url,
		ContractTypeId: n.ContractTypeId,
		JurisdictionId: n.JurisdictionId,
		Relevance:      n.Relevance,
	}
}

func (m *LegalNormMapper) ToEntities(norms []*model.LegalNorm) []*entity.LegalNorm {
	entities := make([]*entity.LegalNorm, len(norms))
	for i, n := range norms {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
