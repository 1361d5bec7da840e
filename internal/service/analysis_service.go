package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Tigierre/contractguardian/internal/dto"
	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/repository/specification"
	"github.com/Tigierre/contractguardian/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAnalysisService interface {
	StartBasic(ctx context.Context, req *dto.StartAnalysisRequest) (*dto.StartAnalysisResponse, error)
	StartEnhanced(ctx context.Context, req *dto.StartEnhancedAnalysisRequest) (*dto.StartAnalysisResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowAnalysisResponse, error)
	Findings(ctx context.Context, id uuid.UUID) ([]*dto.FindingResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type analysisService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IAnalysisService {
	return &analysisService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

// StartBasic queues a basic analysis from the requested negotiating viewpoint.
// The response returns immediately; the run happens on the background worker.
func (s *analysisService) StartBasic(ctx context.Context, req *dto.StartAnalysisRequest) (*dto.StartAnalysisResponse, error) {
	return s.start(ctx, req.DocumentId, false, &req.Viewpoint)
}

// StartEnhanced queues an enhanced analysis. The document must carry
// validated metadata (parties, contract type, jurisdiction) first.
func (s *analysisService) StartEnhanced(ctx context.Context, req *dto.StartEnhancedAnalysisRequest) (*dto.StartAnalysisResponse, error) {
	return s.start(ctx, req.DocumentId, true, nil)
}

func (s *analysisService) start(ctx context.Context, documentId uuid.UUID, enhanced bool, viewpoint *string) (*dto.StartAnalysisResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}
	if enhanced && !document.HasValidatedMetadata() {
		return nil, ErrMetadataRequired
	}

	// Idempotency guard: one in-flight run per document. A second request
	// gets the existing job id back instead of a duplicate run.
	existing, err := uow.AnalysisRepository().FindOne(ctx,
		specification.ByDocumentId{DocumentId: documentId},
		specification.InFlight{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.StartAnalysisResponse{
			Id:     existing.Id,
			Status: existing.Status,
		}, nil
	}

	analysis := entity.Analysis{
		Id:         uuid.New(),
		DocumentId: documentId,
		Status:     entity.AnalysisStatusPending,
		Enhanced:   enhanced,
		Viewpoint:  viewpoint,
		CreatedAt:  time.Now(),
	}

	if err := uow.AnalysisRepository().Create(ctx, &analysis); err != nil {
		return nil, err
	}

	msgPayload := dto.AnalysisJobPayload{
		AnalysisId: analysis.Id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.StartAnalysisResponse{
		Id:     analysis.Id,
		Status: analysis.Status,
	}, nil
}

func (s *analysisService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowAnalysisResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	analysis, err := uow.AnalysisRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, nil // Not found
	}

	res := dto.ShowAnalysisResponse{
		Id:             analysis.Id,
		DocumentId:     analysis.DocumentId,
		Status:         analysis.Status,
		Stage:          analysis.Stage,
		ProgressDetail: analysis.ProgressDetail,
		TotalChunks:    analysis.TotalChunks,
		CurrentChunk:   analysis.CurrentChunk,
		Enhanced:       analysis.Enhanced,
		Viewpoint:      analysis.Viewpoint,
		StartedAt:      analysis.StartedAt,
		CompletedAt:    analysis.CompletedAt,
		ErrorMessage:   analysis.ErrorMessage,

		ExecutiveSummary:  analysis.ExecutiveSummary,
		OverallAssessment: analysis.OverallAssessment,
		Recommendation:    analysis.Recommendation,

		TotalFindings:     analysis.TotalFindings,
		StrengthCount:     analysis.StrengthCount,
		ImprovementCount:  analysis.ImprovementCount,
		ImportanteCount:   analysis.ImportanteCount,
		ConsigliatoCount:  analysis.ConsigliatoCount,
		SuggerimentoCount: analysis.SuggerimentoCount,

		CreatedAt: analysis.CreatedAt,
	}

	return &res, nil
}

// Findings returns the canonical (deduplicated, ranked) findings of a
// completed analysis, in rank order.
func (s *analysisService) Findings(ctx context.Context, id uuid.UUID) ([]*dto.FindingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	analysis, err := uow.AnalysisRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, ErrAnalysisNotFound
	}

	findings, err := uow.FindingRepository().FindAll(ctx,
		specification.ByAnalysisId{AnalysisId: id},
		specification.OrderBy{Field: "rank"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.FindingResponse, len(findings))
	for i, f := range findings {
		res[i] = &dto.FindingResponse{
			Id:                f.Id,
			Title:             f.Title,
			ClauseText:        f.ClauseText,
			Type:              f.Type,
			PolicyName:        f.PolicyName,
			Priority:          f.Priority,
			Explanation:       f.Explanation,
			RedlineSuggestion: f.RedlineSuggestion,
			Actor:             f.Actor,
			NormIds:           f.NormIds,
			Rank:              f.Rank,
			SourceChunkIndex:  f.SourceChunkIndex,
		}
	}

	return res, nil
}

func (s *analysisService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	analysis, err := uow.AnalysisRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if analysis == nil {
		return ErrAnalysisNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.FindingRepository().DeleteByAnalysisId(ctx, id); err != nil {
		return err
	}
	if err := uow.AnalysisRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
