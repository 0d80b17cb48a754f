package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paperdesk/internal/entity"
	"paperdesk/internal/modules/approval/dto"
	"paperdesk/internal/modules/approval/repository"
	"paperdesk/pkg/apperror"
	"paperdesk/pkg/metrics"
	"paperdesk/pkg/response"
)

type ApprovalService interface {
	List(ctx context.Context, actor response.Actor, status string) ([]dto.ApprovalResponse, error)
	Review(ctx context.Context, actor response.Actor, id uuid.UUID, input dto.ReviewInput) (*dto.MessageApprovalResponse, error)
}

type approvalService struct {
	repo repository.ApprovalRepository
}

func NewApprovalService(repo repository.ApprovalRepository) ApprovalService {
	return &approvalService{repo: repo}
}

func (s *approvalService) List(ctx context.Context, actor response.Actor, status string) ([]dto.ApprovalResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	if status == "" {
		status = entity.StatusPending
	}

	requests, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return dto.NewApprovalResponses(requests), nil
}

func (s *approvalService) Review(ctx context.Context, actor response.Actor, id uuid.UUID, input dto.ReviewInput) (*dto.MessageApprovalResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "request not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	// approved and rejected are terminal states
	if request.Reviewed() {
		return nil, apperror.New(0, "request already reviewed", apperror.ErrInvalidAction)
	}

	var outcome string
	switch input.Action {
	case "approve":
		outcome = entity.StatusApproved
	case "reject":
		outcome = entity.StatusRejected
	default:
		return nil, apperror.New(0, "action must be approve or reject", apperror.ErrInvalidAction)
	}

	now := time.Now()
	request.Status = outcome
	request.ReviewedAt = &now
	request.ReviewedBy = &actor.ID
	request.AdminComment = input.Comment

	if err := s.repo.Review(ctx, request, outcome); err != nil {
		return nil, err
	}
	if request.Paper != nil {
		request.Paper.Status = outcome
	}

	metrics.ReviewsProcessed.WithLabelValues(outcome).Inc()

	return &dto.MessageApprovalResponse{
		Message: fmt.Sprintf("request %sd successfully", input.Action),
		Request: dto.NewApprovalResponse(request),
	}, nil
}
