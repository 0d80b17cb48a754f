package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paperdesk/internal/entity"
	"paperdesk/internal/modules/stat/dto"
)

// StatRepository owns the read-only aggregate queries behind the dashboard.
type StatRepository interface {
	CountPapers(ctx context.Context) (int64, error)
	CountPapersByStatus(ctx context.Context, status string) (int64, error)
	CountPapersByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	CountApprovedInYear(ctx context.Context, year int) (int64, error)
	ApprovedByYear(ctx context.Context) ([]dto.YearCount, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

func (r *statRepository) CountPapers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ResearchPaper{}).Count(&count).Error
	return count, err
}

func (r *statRepository) CountPapersByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ResearchPaper{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *statRepository) CountPapersByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ResearchPaper{}).
		Where("user_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *statRepository) CountApprovedInYear(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ResearchPaper{}).
		Where("year = ? AND status = ?", year, entity.StatusApproved).
		Count(&count).Error
	return count, err
}

func (r *statRepository) ApprovedByYear(ctx context.Context) ([]dto.YearCount, error) {
	var rows []dto.YearCount
	err := r.db.WithContext(ctx).
		Model(&entity.ResearchPaper{}).
		Select("year, COUNT(id) AS count").
		Where("status = ?", entity.StatusApproved).
		Group("year").
		Order("year").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
