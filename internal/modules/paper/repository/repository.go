package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paperdesk/internal/entity"
	"paperdesk/internal/modules/paper/dto"
)

type PaperRepository interface {
	// Create stores the paper and, when request is non-nil, the approval
	// request enqueued for it, atomically.
	Create(ctx context.Context, paper *entity.ResearchPaper, request *entity.ApprovalRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ResearchPaper, error)
	// List applies the filter AND-combined; status narrows visibility and is
	// skipped when empty (admin view).
	List(ctx context.Context, status string, filter dto.PaperFilter) ([]*entity.ResearchPaper, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.ResearchPaper, error)
	// Update saves the paper and, when request is non-nil, the approval
	// request enqueued for the edit, atomically.
	Update(ctx context.Context, paper *entity.ResearchPaper, request *entity.ApprovalRequest) error
	// Delete removes the paper together with all approval requests that
	// reference it.
	Delete(ctx context.Context, paper *entity.ResearchPaper) error
}

type paperRepository struct {
	db *gorm.DB
}

func NewPaperRepository(db *gorm.DB) PaperRepository {
	return &paperRepository{db: db}
}

func (r *paperRepository) Create(ctx context.Context, paper *entity.ResearchPaper, request *entity.ApprovalRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(paper).Error; err != nil {
			return err
		}
		if request != nil {
			request.PaperID = paper.ID
			if err := tx.Create(request).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *paperRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ResearchPaper, error) {
	var paper entity.ResearchPaper
	if err := r.db.WithContext(ctx).Preload("Owner").First(&paper, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *paperRepository) List(ctx context.Context, status string, filter dto.PaperFilter) ([]*entity.ResearchPaper, error) {
	query := r.db.WithContext(ctx).Model(&entity.ResearchPaper{}).Preload("Owner")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	if filter.Author != "" {
		query = query.Where("authors LIKE ?", "%"+filter.Author+"%")
	}
	if filter.Journal != "" {
		query = query.Where("journal LIKE ?", "%"+filter.Journal+"%")
	}
	if filter.Keyword != "" {
		query = query.Where("keywords LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR authors LIKE ? OR abstract LIKE ?", term, term, term)
	}

	var papers []*entity.ResearchPaper
	if err := query.Order("created_at DESC").Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}

func (r *paperRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.ResearchPaper, error) {
	var papers []*entity.ResearchPaper
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&papers).Error
	if err != nil {
		return nil, err
	}
	return papers, nil
}

func (r *paperRepository) Update(ctx context.Context, paper *entity.ResearchPaper, request *entity.ApprovalRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(paper).Error; err != nil {
			return err
		}
		if request != nil {
			request.PaperID = paper.ID
			if err := tx.Create(request).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *paperRepository) Delete(ctx context.Context, paper *entity.ResearchPaper) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("paper_id = ?", paper.ID).Delete(&entity.ApprovalRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(paper).Error
	})
}
