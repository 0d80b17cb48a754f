package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"paperdesk/internal/entity"
	"paperdesk/internal/modules/approval/dto"
	"paperdesk/internal/modules/approval/repository"
	"paperdesk/pkg/apperror"
	"paperdesk/pkg/response"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&entity.User{}, &entity.ResearchPaper{}, &entity.ApprovalRequest{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	db.Exec("DELETE FROM approval_requests")
	db.Exec("DELETE FROM research_papers")
	db.Exec("DELETE FROM users")

	return db
}

type fixture struct {
	admin   response.Actor
	user    response.Actor
	paper   *entity.ResearchPaper
	request *entity.ApprovalRequest
}

func seedPendingRequest(t *testing.T, db *gorm.DB) fixture {
	admin := &entity.User{Email: "admin@spsu.ac.in", PasswordHash: "x", Name: "Admin", Role: entity.RoleAdmin}
	user := &entity.User{Email: "alice@spsu.ac.in", PasswordHash: "x", Name: "Alice", Role: entity.RoleUser}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	paper := &entity.ResearchPaper{
		Title: "Y", Authors: "Alice", Year: 2021,
		UserID: user.ID, Status: entity.StatusPending,
	}
	if err := db.Create(paper).Error; err != nil {
		t.Fatalf("seed paper: %v", err)
	}

	request := &entity.ApprovalRequest{
		PaperID:     paper.ID,
		UserID:      user.ID,
		RequestType: entity.RequestUpdate,
		Status:      entity.StatusPending,
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("seed request: %v", err)
	}

	return fixture{
		admin:   response.Actor{ID: admin.ID, Role: admin.Role},
		user:    response.Actor{ID: user.ID, Role: user.Role},
		paper:   paper,
		request: request,
	}
}

func TestReviewApprove(t *testing.T) {
	db := setupTestDB(t)
	fx := seedPendingRequest(t, db)
	svc := NewApprovalService(repository.NewApprovalRepository(db))

	resp, err := svc.Review(context.Background(), fx.admin, fx.request.ID, dto.ReviewInput{Action: "approve"})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if resp.Request.Status != entity.StatusApproved {
		t.Errorf("request status: expected approved, got %q", resp.Request.Status)
	}
	if resp.Request.ReviewedAt == nil || resp.Request.ReviewedBy == nil || *resp.Request.ReviewedBy != fx.admin.ID {
		t.Error("reviewed_at and reviewed_by must be stamped together")
	}

	var paper entity.ResearchPaper
	if err := db.First(&paper, "id = ?", fx.paper.ID).Error; err != nil {
		t.Fatalf("load paper: %v", err)
	}
	if paper.Status != entity.StatusApproved {
		t.Errorf("paper status must follow the outcome, got %q", paper.Status)
	}
}

func TestReviewRejectWithComment(t *testing.T) {
	db := setupTestDB(t)
	fx := seedPendingRequest(t, db)
	svc := NewApprovalService(repository.NewApprovalRepository(db))

	resp, err := svc.Review(context.Background(), fx.admin, fx.request.ID, dto.ReviewInput{
		Action:  "reject",
		Comment: "needs citations",
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if resp.Request.Status != entity.StatusRejected {
		t.Errorf("request status: expected rejected, got %q", resp.Request.Status)
	}
	if resp.Request.AdminComment != "needs citations" {
		t.Errorf("admin comment not stored: %q", resp.Request.AdminComment)
	}

	var paper entity.ResearchPaper
	db.First(&paper, "id = ?", fx.paper.ID)
	if paper.Status != entity.StatusRejected {
		t.Errorf("paper status: expected rejected, got %q", paper.Status)
	}
}

func TestReviewIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	fx := seedPendingRequest(t, db)
	svc := NewApprovalService(repository.NewApprovalRepository(db))

	if _, err := svc.Review(context.Background(), fx.admin, fx.request.ID, dto.ReviewInput{Action: "approve"}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	_, err := svc.Review(context.Background(), fx.admin, fx.request.ID, dto.ReviewInput{Action: "reject"})
	if !errors.Is(err, apperror.ErrInvalidAction) {
		t.Fatalf("re-review must fail, got %v", err)
	}

	// the first outcome stands
	var paper entity.ResearchPaper
	db.First(&paper, "id = ?", fx.paper.ID)
	if paper.Status != entity.StatusApproved {
		t.Errorf("paper status overwritten by rejected re-review: %q", paper.Status)
	}
}

func TestReviewAccessAndMissing(t *testing.T) {
	db := setupTestDB(t)
	fx := seedPendingRequest(t, db)
	svc := NewApprovalService(repository.NewApprovalRepository(db))

	if _, err := svc.Review(context.Background(), fx.user, fx.request.ID, dto.ReviewInput{Action: "approve"}); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("non-admin review: expected forbidden, got %v", err)
	}

	if _, err := svc.List(context.Background(), fx.user, ""); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("non-admin list: expected forbidden, got %v", err)
	}

	db.Delete(&entity.ApprovalRequest{}, "id = ?", fx.request.ID)
	if _, err := svc.Review(context.Background(), fx.admin, fx.request.ID, dto.ReviewInput{Action: "approve"}); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("missing request: expected not found, got %v", err)
	}
}

func TestListDefaultsToPending(t *testing.T) {
	db := setupTestDB(t)
	fx := seedPendingRequest(t, db)
	svc := NewApprovalService(repository.NewApprovalRepository(db))

	pending, err := svc.List(context.Background(), fx.admin, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending request, got %d", len(pending))
	}
	if pending[0].UserName != "Alice" {
		t.Errorf("requester name not resolved: %q", pending[0].UserName)
	}
	if pending[0].Paper == nil || pending[0].Paper.Title != "Y" {
		t.Error("linked paper must be embedded in the listing")
	}

	if _, err := svc.Review(context.Background(), fx.admin, fx.request.ID, dto.ReviewInput{Action: "approve"}); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	pending, err = svc.List(context.Background(), fx.admin, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("reviewed request must leave the pending queue, got %d", len(pending))
	}

	approved, err := svc.List(context.Background(), fx.admin, entity.StatusApproved)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(approved) != 1 {
		t.Errorf("expected 1 approved request, got %d", len(approved))
	}
}
