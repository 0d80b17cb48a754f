package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paperdesk/internal/entity"
)

type ApprovalRepository interface {
	ListByStatus(ctx context.Context, status string) ([]*entity.ApprovalRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ApprovalRequest, error)
	// Review persists the terminal transition together with the linked
	// paper's new status, atomically.
	Review(ctx context.Context, request *entity.ApprovalRequest, paperStatus string) error
	CountPending(ctx context.Context) (int64, error)
	CountPendingByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) ListByStatus(ctx context.Context, status string) ([]*entity.ApprovalRequest, error) {
	var requests []*entity.ApprovalRequest
	err := r.db.WithContext(ctx).
		Preload("Paper").
		Preload("Requester").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *approvalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ApprovalRequest, error) {
	var request entity.ApprovalRequest
	err := r.db.WithContext(ctx).
		Preload("Paper").
		Preload("Requester").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *approvalRepository) Review(ctx context.Context, request *entity.ApprovalRequest, paperStatus string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(request).Error; err != nil {
			return err
		}
		return tx.Model(&entity.ResearchPaper{}).
			Where("id = ?", request.PaperID).
			Update("status", paperStatus).Error
	})
}

func (r *approvalRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ApprovalRequest{}).
		Where("status = ?", entity.StatusPending).
		Count(&count).Error
	return count, err
}

func (r *approvalRepository) CountPendingByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ApprovalRequest{}).
		Where("user_id = ? AND status = ?", userID, entity.StatusPending).
		Count(&count).Error
	return count, err
}
