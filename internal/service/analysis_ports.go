package service

import (
	"context"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/repository/memory"
	"github.com/Tigierre/contractguardian/internal/repository/specification"
	"github.com/Tigierre/contractguardian/internal/repository/unitofwork"
	"github.com/Tigierre/contractguardian/pkg/analysis/orchestrator"

	"github.com/google/uuid"
)

// The pipeline talks to storage through narrow ports. These adapters back
// them with the repository layer so the pipeline itself stays storage-free.

type jobStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewJobStore(uowFactory unitofwork.RepositoryFactory) orchestrator.JobStore {
	return &jobStore{uowFactory: uowFactory}
}

func (s *jobStore) Get(ctx context.Context, id uuid.UUID) (*entity.Analysis, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AnalysisRepository().FindOne(ctx, specification.ByID{ID: id})
}

func (s *jobStore) Update(ctx context.Context, analysis *entity.Analysis) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AnalysisRepository().Update(ctx, analysis)
}

func (s *jobStore) InsertFindings(ctx context.Context, analysisId uuid.UUID, findings []*entity.Finding) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// A re-run replaces the previous finding set wholesale.
	if err := uow.FindingRepository().DeleteByAnalysisId(ctx, analysisId); err != nil {
		return err
	}
	if err := uow.FindingRepository().CreateBatch(ctx, findings); err != nil {
		return err
	}

	return uow.Commit()
}

type documentSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDocumentSource(uowFactory unitofwork.RepositoryFactory) orchestrator.DocumentSource {
	return &documentSource{uowFactory: uowFactory}
}

func (s *documentSource) FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
}

type policySource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPolicySource(uowFactory unitofwork.RepositoryFactory) orchestrator.PolicySource {
	return &policySource{uowFactory: uowFactory}
}

func (s *policySource) ActivePolicies(ctx context.Context) ([]*entity.Policy, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.PolicyRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "position"},
	)
}

type normSource struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.NormCache
}

func NewNormSource(uowFactory unitofwork.RepositoryFactory, cache *memory.NormCache) orchestrator.NormSource {
	return &normSource{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *normSource) FindApplicable(ctx context.Context, contractTypeId, jurisdictionId string, minRelevance float64, limit int) ([]*entity.LegalNorm, error) {
	if cached, found := s.cache.Get(contractTypeId, jurisdictionId); found {
		return capNorms(cached, minRelevance, limit), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	norms, err := uow.LegalNormRepository().FindAll(ctx,
		specification.NormScope{
			ContractTypeId: contractTypeId,
			JurisdictionId: jurisdictionId,
		},
		specification.OrderBy{Field: "relevance", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	s.cache.Save(contractTypeId, jurisdictionId, norms)
	return capNorms(norms, minRelevance, limit), nil
}

// capNorms applies the relevance floor and cap; input is already sorted by
// relevance descending.
func capNorms(norms []*entity.LegalNorm, minRelevance float64, limit int) []*entity.LegalNorm {
	out := make([]*entity.LegalNorm, 0, limit)
	for _, n := range norms {
		if n.Relevance < minRelevance {
			continue
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out
}
