package service

import (
	"context"
	"errors"
	"time"

	"github.com/Tigierre/contractguardian/internal/dto"
	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/repository/specification"
	"github.com/Tigierre/contractguardian/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrMetadataRequired = errors.New("document metadata not validated")
)

type IDocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	AttachMetadata(ctx context.Context, req *dto.AttachMetadataRequest) (*dto.AttachMetadataResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory) IDocumentService {
	return &documentService{
		uowFactory: uowFactory,
	}
}

func (s *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	language := req.Language
	if language == "" {
		language = entity.LanguageItalian
	}

	document := entity.Document{
		Id:            uuid.New(),
		Filename:      req.Filename,
		Text:          req.Text,
		Language:      language,
		PageCount:     req.PageCount,
		OcrConfidence: req.OcrConfidence,
		CreatedAt:     time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	return &dto.CreateDocumentResponse{
		Id: document.Id,
	}, nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil // Not found
	}

	res := dto.ShowDocumentResponse{
		Id:                document.Id,
		Filename:          document.Filename,
		Language:          document.Language,
		PageCount:         document.PageCount,
		OcrConfidence:     document.OcrConfidence,
		PartyA:            document.PartyA,
		PartyB:            document.PartyB,
		ContractTypeId:    document.ContractTypeId,
		JurisdictionId:    document.JurisdictionId,
		MetadataValidated: document.MetadataValidated,
		CreatedAt:         document.CreatedAt,
		UpdatedAt:         document.UpdatedAt,
	}

	return &res, nil
}

// AttachMetadata stores the validated parties and classification on the
// document, unlocking the enhanced analysis flow. The text itself is immutable.
func (s *documentService) AttachMetadata(ctx context.Context, req *dto.AttachMetadataRequest) (*dto.AttachMetadataResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}

	document.PartyA = &req.PartyA
	document.PartyB = &req.PartyB
	document.ContractTypeId = &req.ContractTypeId
	document.JurisdictionId = &req.JurisdictionId
	document.MetadataValidated = true

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	return &dto.AttachMetadataResponse{
		Id: document.Id,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return ErrDocumentNotFound
	}

	return uow.DocumentRepository().Delete(ctx, id)
}
