package dto

import (
	"io"

	"paperdesk/internal/entity"
)

// CreatePaperInput carries the multipart form fields of a submission.
// Title, authors and year are the only required bibliographic fields.
type CreatePaperInput struct {
	Title     string `form:"title" binding:"required"`
	Authors   string `form:"authors" binding:"required"`
	Year      int    `form:"year" binding:"required"`
	Month     string `form:"month"`
	Journal   string `form:"journal"`
	Volume    string `form:"volume"`
	Number    string `form:"number"`
	Pages     string `form:"pages"`
	Publisher string `form:"publisher"`
	DOI       string `form:"doi"`
	ISBN      string `form:"isbn"`
	ISSN      string `form:"issn"`
	URL       string `form:"url"`
	Abstract  string `form:"abstract"`
	Keywords  string `form:"keywords"`
	Note      string `form:"note"`
}

// UpdatePaperInput is the partial-update patch: nil means the field was not
// supplied and the stored value stays untouched.
type UpdatePaperInput struct {
	Title     *string `form:"title"`
	Authors   *string `form:"authors"`
	Year      *int    `form:"year"`
	Month     *string `form:"month"`
	Journal   *string `form:"journal"`
	Volume    *string `form:"volume"`
	Number    *string `form:"number"`
	Pages     *string `form:"pages"`
	Publisher *string `form:"publisher"`
	DOI       *string `form:"doi"`
	ISBN      *string `form:"isbn"`
	ISSN      *string `form:"issn"`
	URL       *string `form:"url"`
	Abstract  *string `form:"abstract"`
	Keywords  *string `form:"keywords"`
	Note      *string `form:"note"`
}

// PaperFilter holds the optional list query parameters, AND-combined.
type PaperFilter struct {
	Year    *int   `form:"year"`
	Author  string `form:"author"`
	Journal string `form:"journal"`
	Keyword string `form:"keyword"`
	Search  string `form:"search"`
}

// Upload is an optional PDF attached to a create or update request.
type Upload struct {
	Filename string
	Reader   io.Reader
}

type PaperResponse struct {
	*entity.ResearchPaper
	AuthorName string `json:"author_name"`
}

type MessagePaperResponse struct {
	Message string        `json:"message"`
	Paper   PaperResponse `json:"paper"`
}

func NewPaperResponse(p *entity.ResearchPaper) PaperResponse {
	return PaperResponse{ResearchPaper: p, AuthorName: p.OwnerName()}
}

func NewPaperResponses(papers []*entity.ResearchPaper) []PaperResponse {
	out := make([]PaperResponse, 0, len(papers))
	for _, p := range papers {
		out = append(out, NewPaperResponse(p))
	}
	return out
}
