package dto

type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

type Summary struct {
	TotalPapers      int64       `json:"total_papers"`
	PendingPapers    int64       `json:"pending_papers"`
	PapersThisYear   int64       `json:"papers_this_year"`
	MyPapersCount    int64       `json:"my_papers_count"`
	PendingApprovals int64       `json:"pending_approvals"`
	PapersByYear     []YearCount `json:"papers_by_year"`
}
