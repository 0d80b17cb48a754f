package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ResearchPaper is a bibliographic record with its BibTeX-style fields.
// Authors and keywords are stored comma-separated.
type ResearchPaper struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Title     string `gorm:"size:500;not null" json:"title"`
	Authors   string `gorm:"type:text;not null" json:"authors"`
	Year      int    `gorm:"not null;index" json:"year"`
	Month     string `gorm:"size:20" json:"month"`
	Journal   string `gorm:"size:200" json:"journal"`
	Volume    string `gorm:"size:50" json:"volume"`
	Number    string `gorm:"size:50" json:"number"`
	Pages     string `gorm:"size:50" json:"pages"`
	Publisher string `gorm:"size:200" json:"publisher"`
	DOI       string `gorm:"size:100" json:"doi"`
	ISBN      string `gorm:"size:50" json:"isbn"`
	ISSN      string `gorm:"size:50" json:"issn"`
	URL       string `gorm:"size:500" json:"url"`
	Abstract  string `gorm:"type:text" json:"abstract"`
	Keywords  string `gorm:"type:text" json:"keywords"`
	Note      string `gorm:"type:text" json:"note"`

	PDFFilename string `gorm:"size:255" json:"pdf_filename"`

	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Owner     *User     `gorm:"foreignKey:UserID" json:"-"`
	Status    string    `gorm:"size:20;not null;default:approved;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *ResearchPaper) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// OwnerName returns the display name of the uploading user when preloaded.
func (p *ResearchPaper) OwnerName() string {
	if p.Owner == nil {
		return ""
	}
	return p.Owner.Name
}
