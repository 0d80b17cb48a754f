package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestCreate = "create"
	RequestUpdate = "update"
	RequestDelete = "delete"
)

// ApprovalRequest is a queued proposal against a paper awaiting admin review.
// Once reviewed it is terminal: status, reviewed_at and reviewed_by are set
// together and never change again.
type ApprovalRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PaperID     uuid.UUID `gorm:"type:uuid;not null;index" json:"paper_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	RequestType string    `gorm:"size:20;not null" json:"request_type"`
	Status      string    `gorm:"size:20;not null;default:pending;index" json:"status"`

	AdminComment string     `gorm:"type:text" json:"admin_comment"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	ReviewedBy   *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`

	Paper     *ResearchPaper `gorm:"foreignKey:PaperID" json:"paper,omitempty"`
	Requester *User          `gorm:"foreignKey:UserID" json:"-"`
}

func (r *ApprovalRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Reviewed reports whether the request has reached a terminal state.
func (r *ApprovalRequest) Reviewed() bool {
	return r.Status != StatusPending
}

// RequesterName returns the display name of the requesting user when preloaded.
func (r *ApprovalRequest) RequesterName() string {
	if r.Requester == nil {
		return ""
	}
	return r.Requester.Name
}
