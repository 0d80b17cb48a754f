package service

import (
	"context"
	"time"

	"paperdesk/internal/entity"
	approvalRepo "paperdesk/internal/modules/approval/repository"
	"paperdesk/internal/modules/stat/dto"
	"paperdesk/internal/modules/stat/repository"
	"paperdesk/pkg/response"
)

type StatService interface {
	Summary(ctx context.Context, actor response.Actor) (*dto.Summary, error)
}

type statService struct {
	stats     repository.StatRepository
	approvals approvalRepo.ApprovalRepository
}

func NewStatService(stats repository.StatRepository, approvals approvalRepo.ApprovalRepository) StatService {
	return &statService{stats: stats, approvals: approvals}
}

func (s *statService) Summary(ctx context.Context, actor response.Actor) (*dto.Summary, error) {
	summary := &dto.Summary{}
	var err error

	if actor.IsAdmin() {
		if summary.TotalPapers, err = s.stats.CountPapers(ctx); err != nil {
			return nil, err
		}
		if summary.PendingPapers, err = s.stats.CountPapersByStatus(ctx, entity.StatusPending); err != nil {
			return nil, err
		}
	} else {
		// non-admins see the catalog they can browse; the global pending
		// count is not theirs to know
		if summary.TotalPapers, err = s.stats.CountPapersByStatus(ctx, entity.StatusApproved); err != nil {
			return nil, err
		}
		summary.PendingPapers = 0
	}

	if summary.PapersByYear, err = s.stats.ApprovedByYear(ctx); err != nil {
		return nil, err
	}

	if summary.PapersThisYear, err = s.stats.CountApprovedInYear(ctx, time.Now().Year()); err != nil {
		return nil, err
	}

	if summary.MyPapersCount, err = s.stats.CountPapersByOwner(ctx, actor.ID); err != nil {
		return nil, err
	}

	if actor.IsAdmin() {
		summary.PendingApprovals, err = s.approvals.CountPending(ctx)
	} else {
		summary.PendingApprovals, err = s.approvals.CountPendingByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	return summary, nil
}
