package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paperdesk/internal/entity"
	"paperdesk/internal/modules/paper/dto"
	"paperdesk/internal/modules/paper/repository"
	"paperdesk/pkg/apperror"
	"paperdesk/pkg/metrics"
	"paperdesk/pkg/response"
	"paperdesk/pkg/storage"
)

type PaperService interface {
	List(ctx context.Context, actor response.Actor, filter dto.PaperFilter) ([]dto.PaperResponse, error)
	Get(ctx context.Context, actor response.Actor, id uuid.UUID) (dto.PaperResponse, error)
	Create(ctx context.Context, actor response.Actor, input dto.CreatePaperInput, upload *dto.Upload) (*dto.MessagePaperResponse, error)
	Update(ctx context.Context, actor response.Actor, id uuid.UUID, input dto.UpdatePaperInput, upload *dto.Upload) (*dto.MessagePaperResponse, error)
	Delete(ctx context.Context, actor response.Actor, id uuid.UUID) error
	FetchPDF(ctx context.Context, actor response.Actor, id uuid.UUID) (string, io.ReadCloser, int64, error)
	MyPapers(ctx context.Context, actor response.Actor) ([]dto.PaperResponse, error)
}

type paperService struct {
	repo  repository.PaperRepository
	files storage.FileStorage
	log   *zap.Logger
}

func NewPaperService(repo repository.PaperRepository, files storage.FileStorage, log *zap.Logger) PaperService {
	return &paperService{repo: repo, files: files, log: log}
}

func (s *paperService) List(ctx context.Context, actor response.Actor, filter dto.PaperFilter) ([]dto.PaperResponse, error) {
	// Non-admins only ever see approved papers
	status := entity.StatusApproved
	if actor.IsAdmin() {
		status = ""
	}

	papers, err := s.repo.List(ctx, status, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewPaperResponses(papers), nil
}

func (s *paperService) Get(ctx context.Context, actor response.Actor, id uuid.UUID) (dto.PaperResponse, error) {
	paper, err := s.findPaper(ctx, id)
	if err != nil {
		return dto.PaperResponse{}, err
	}
	return dto.NewPaperResponse(paper), nil
}

func (s *paperService) Create(ctx context.Context, actor response.Actor, input dto.CreatePaperInput, upload *dto.Upload) (*dto.MessagePaperResponse, error) {
	paper := &entity.ResearchPaper{
		Title:     input.Title,
		Authors:   input.Authors,
		Year:      input.Year,
		Month:     input.Month,
		Journal:   input.Journal,
		Volume:    input.Volume,
		Number:    input.Number,
		Pages:     input.Pages,
		Publisher: input.Publisher,
		DOI:       input.DOI,
		ISBN:      input.ISBN,
		ISSN:      input.ISSN,
		URL:       input.URL,
		Abstract:  input.Abstract,
		Keywords:  input.Keywords,
		Note:      input.Note,
		UserID:    actor.ID,
		Status:    entity.StatusApproved,
	}

	message := "paper created successfully"
	var request *entity.ApprovalRequest
	if !actor.IsAdmin() {
		paper.Status = entity.StatusPending
		request = &entity.ApprovalRequest{
			UserID:      actor.ID,
			RequestType: entity.RequestCreate,
			Status:      entity.StatusPending,
		}
		message = "paper submitted for approval"
	}

	storedName, err := s.storeUpload(ctx, upload)
	if err != nil {
		return nil, err
	}
	paper.PDFFilename = storedName

	if err := s.repo.Create(ctx, paper, request); err != nil {
		// a failed record write must not leave an orphaned file behind
		s.removeFile(ctx, storedName)
		return nil, err
	}

	metrics.PapersCreated.WithLabelValues(paper.Status).Inc()

	created, err := s.findPaper(ctx, paper.ID)
	if err != nil {
		return nil, err
	}

	return &dto.MessagePaperResponse{Message: message, Paper: dto.NewPaperResponse(created)}, nil
}

func (s *paperService) Update(ctx context.Context, actor response.Actor, id uuid.UUID, input dto.UpdatePaperInput, upload *dto.Upload) (*dto.MessagePaperResponse, error) {
	paper, err := s.findPaper(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && paper.UserID != actor.ID {
		return nil, apperror.New(0, "you may only edit your own papers", apperror.ErrForbidden)
	}

	storedName, err := s.storeUpload(ctx, upload)
	if err != nil {
		return nil, err
	}

	previousPDF := ""
	if storedName != "" {
		previousPDF = paper.PDFFilename
		paper.PDFFilename = storedName
	}

	applyPatch(paper, input)

	message := "paper updated successfully"
	var request *entity.ApprovalRequest
	if !actor.IsAdmin() {
		// every user edit goes back through review
		paper.Status = entity.StatusPending
		request = &entity.ApprovalRequest{
			UserID:      actor.ID,
			RequestType: entity.RequestUpdate,
			Status:      entity.StatusPending,
		}
		message = "paper update submitted for approval"
	}

	if err := s.repo.Update(ctx, paper, request); err != nil {
		s.removeFile(ctx, storedName)
		return nil, err
	}

	if previousPDF != "" && previousPDF != paper.PDFFilename {
		s.removeFile(ctx, previousPDF)
	}

	return &dto.MessagePaperResponse{Message: message, Paper: dto.NewPaperResponse(paper)}, nil
}

func (s *paperService) Delete(ctx context.Context, actor response.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperror.New(0, "only admins can delete papers", apperror.ErrForbidden)
	}

	paper, err := s.findPaper(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, paper); err != nil {
		return err
	}

	s.removeFile(ctx, paper.PDFFilename)
	return nil
}

func (s *paperService) FetchPDF(ctx context.Context, actor response.Actor, id uuid.UUID) (string, io.ReadCloser, int64, error) {
	paper, err := s.findPaper(ctx, id)
	if err != nil {
		return "", nil, 0, err
	}

	if paper.PDFFilename == "" {
		return "", nil, 0, apperror.New(0, "PDF not found", apperror.ErrNotFound)
	}

	rc, size, err := s.files.Open(ctx, paper.PDFFilename)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", nil, 0, apperror.New(0, "PDF not found", apperror.ErrNotFound)
		}
		return "", nil, 0, err
	}
	return paper.PDFFilename, rc, size, nil
}

func (s *paperService) MyPapers(ctx context.Context, actor response.Actor) ([]dto.PaperResponse, error) {
	papers, err := s.repo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewPaperResponses(papers), nil
}

func (s *paperService) findPaper(ctx context.Context, id uuid.UUID) (*entity.ResearchPaper, error) {
	paper, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "paper not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return paper, nil
}

// storeUpload validates and persists an attached PDF, returning its stored
// name. A nil upload returns the empty name.
func (s *paperService) storeUpload(ctx context.Context, upload *dto.Upload) (string, error) {
	if upload == nil {
		return "", nil
	}
	if !storage.AllowedPDF(upload.Filename) {
		return "", apperror.New(0, "only PDF files are accepted", apperror.ErrValidation)
	}

	name := storage.StoredName(upload.Filename)
	if err := s.files.Save(ctx, name, upload.Reader); err != nil {
		return "", err
	}
	return name, nil
}

// removeFile deletes a stored PDF and swallows failures; a file that cannot
// be removed must not block the record operation that already happened.
func (s *paperService) removeFile(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := s.files.Delete(ctx, name); err != nil {
		s.log.Warn("failed to delete stored PDF", zap.String("file", name), zap.Error(err))
	}
}

func applyPatch(paper *entity.ResearchPaper, input dto.UpdatePaperInput) {
	if input.Title != nil {
		paper.Title = *input.Title
	}
	if input.Authors != nil {
		paper.Authors = *input.Authors
	}
	if input.Year != nil {
		paper.Year = *input.Year
	}
	if input.Month != nil {
		paper.Month = *input.Month
	}
	if input.Journal != nil {
		paper.Journal = *input.Journal
	}
	if input.Volume != nil {
		paper.Volume = *input.Volume
	}
	if input.Number != nil {
		paper.Number = *input.Number
	}
	if input.Pages != nil {
		paper.Pages = *input.Pages
	}
	if input.Publisher != nil {
		paper.Publisher = *input.Publisher
	}
	if input.DOI != nil {
		paper.DOI = *input.DOI
	}
	if input.ISBN != nil {
		paper.ISBN = *input.ISBN
	}
	if input.ISSN != nil {
		paper.ISSN = *input.ISSN
	}
	if input.URL != nil {
		paper.URL = *input.URL
	}
	if input.Abstract != nil {
		paper.Abstract = *input.Abstract
	}
	if input.Keywords != nil {
		paper.Keywords = *input.Keywords
	}
	if input.Note != nil {
		paper.Note = *input.Note
	}
}
