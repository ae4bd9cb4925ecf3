package dto

import (
	"time"

	"github.com/yigit/campustrack/internal/app/models"
)

// UploadSummaryResponse is the dashboard view of one batch
type UploadSummaryResponse struct {
	ID            int64     `json:"id" example:"1"`
	Department    string    `json:"department" example:"CS"`
	UploadedCount int       `json:"uploadedCount" example:"7"`
	ErrorCount    int       `json:"errorCount" example:"3"`
	SourceFile    *string   `json:"sourceFile,omitempty"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

// UploadSummaryListResponse is one page of summaries
type UploadSummaryListResponse struct {
	Summaries  []UploadSummaryResponse `json:"summaries"`
	Pagination PaginationInfo          `json:"pagination"`
}

// FromUploadSummaries converts summaries for the dashboard
func FromUploadSummaries(summaries []*models.UploadSummary) []UploadSummaryResponse {
	out := make([]UploadSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, UploadSummaryResponse{
			ID:            s.ID,
			Department:    s.Department,
			UploadedCount: s.UploadedCount,
			ErrorCount:    s.ErrorCount,
			SourceFile:    s.SourceFile,
			UploadedAt:    s.UploadedAt,
		})
	}
	return out
}
