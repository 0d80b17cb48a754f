package service

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"paperdesk/internal/entity"
	approvalRepo "paperdesk/internal/modules/approval/repository"
	"paperdesk/internal/modules/stat/repository"
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

func TestSummary(t *testing.T) {
	db := setupTestDB(t)

	admin := &entity.User{Email: "admin@spsu.ac.in", PasswordHash: "x", Name: "Admin", Role: entity.RoleAdmin}
	alice := &entity.User{Email: "alice@spsu.ac.in", PasswordHash: "x", Name: "Alice", Role: entity.RoleUser}
	db.Create(admin)
	db.Create(alice)

	thisYear := time.Now().Year()
	papers := []*entity.ResearchPaper{
		{Title: "A", Authors: "Admin", Year: 2019, UserID: admin.ID, Status: entity.StatusApproved},
		{Title: "B", Authors: "Admin", Year: thisYear, UserID: admin.ID, Status: entity.StatusApproved},
		{Title: "C", Authors: "Alice", Year: thisYear, UserID: alice.ID, Status: entity.StatusPending},
		{Title: "D", Authors: "Alice", Year: 2019, UserID: alice.ID, Status: entity.StatusApproved},
	}
	for _, p := range papers {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed paper: %v", err)
		}
	}
	db.Create(&entity.ApprovalRequest{PaperID: papers[2].ID, UserID: alice.ID, RequestType: entity.RequestCreate, Status: entity.StatusPending})

	svc := NewStatService(repository.NewStatRepository(db), approvalRepo.NewApprovalRepository(db))

	adminSummary, err := svc.Summary(context.Background(), response.Actor{ID: admin.ID, Role: entity.RoleAdmin})
	if err != nil {
		t.Fatalf("admin summary failed: %v", err)
	}
	if adminSummary.TotalPapers != 4 {
		t.Errorf("admin total_papers: expected 4, got %d", adminSummary.TotalPapers)
	}
	if adminSummary.PendingPapers != 1 {
		t.Errorf("admin pending_papers: expected 1, got %d", adminSummary.PendingPapers)
	}
	if adminSummary.PendingApprovals != 1 {
		t.Errorf("admin pending_approvals: expected 1, got %d", adminSummary.PendingApprovals)
	}
	if adminSummary.MyPapersCount != 2 {
		t.Errorf("admin my_papers_count: expected 2, got %d", adminSummary.MyPapersCount)
	}
	if adminSummary.PapersThisYear != 1 {
		t.Errorf("papers_this_year counts approved only: expected 1, got %d", adminSummary.PapersThisYear)
	}

	// by-year groups approved papers in ascending year order
	if len(adminSummary.PapersByYear) != 2 {
		t.Fatalf("papers_by_year: expected 2 buckets, got %d", len(adminSummary.PapersByYear))
	}
	if adminSummary.PapersByYear[0].Year != 2019 || adminSummary.PapersByYear[0].Count != 2 {
		t.Errorf("first bucket: %+v", adminSummary.PapersByYear[0])
	}
	if adminSummary.PapersByYear[1].Year != thisYear || adminSummary.PapersByYear[1].Count != 1 {
		t.Errorf("second bucket: %+v", adminSummary.PapersByYear[1])
	}

	userSummary, err := svc.Summary(context.Background(), response.Actor{ID: alice.ID, Role: entity.RoleUser})
	if err != nil {
		t.Fatalf("user summary failed: %v", err)
	}
	if userSummary.TotalPapers != 3 {
		t.Errorf("user total_papers counts approved: expected 3, got %d", userSummary.TotalPapers)
	}
	if userSummary.PendingPapers != 0 {
		t.Errorf("user pending_papers is always 0, got %d", userSummary.PendingPapers)
	}
	if userSummary.MyPapersCount != 2 {
		t.Errorf("user my_papers_count includes pending: expected 2, got %d", userSummary.MyPapersCount)
	}
	if userSummary.PendingApprovals != 1 {
		t.Errorf("user sees own pending approvals: expected 1, got %d", userSummary.PendingApprovals)
	}
}
