package models

import "time"

// UnknownDepartment is recorded when no row of a batch names a department
const UnknownDepartment = "Unknown"

// UploadSummary is written once per completed roster batch and never updated
type UploadSummary struct {
	ID            int64     `json:"id" db:"id" example:"1"`
	Department    string    `json:"department" db:"department" example:"CS"`
	UploadedCount int       `json:"uploadedCount" db:"uploaded_count" example:"7"`
	ErrorCount    int       `json:"errorCount" db:"error_count" example:"3"`
	SourceFile    *string   `json:"sourceFile,omitempty" db:"source_file" example:"rosters/2026/10/14/3f1c-cs.csv"`
	UploadedAt    time.Time `json:"uploadedAt" db:"uploaded_at" example:"2026-10-14T09:00:00Z"`
}

// SummaryFilter narrows summary listings
type SummaryFilter struct {
	Department string
	Offset     uint64
	Limit      uint64
}
