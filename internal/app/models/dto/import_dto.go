package dto

import (
	"github.com/yigit/campustrack/internal/app/importer"
)

// Import endpoint messages
const (
	MessageImportCompleted = "Bulk upload completed"
	MessageDryRunCompleted = "Bulk upload dry run completed"
	MessageNoFile          = "No file uploaded"
	MessageFileTooLarge    = "Uploaded file exceeds the maximum allowed size"
	MessageParseFailed     = "Error processing file"
)

// ImportResponse is the body of a completed roster batch
type ImportResponse struct {
	Message     string             `json:"message" example:"Bulk upload completed"`
	Total       int                `json:"total" example:"3"`
	Success     int                `json:"success" example:"2"`
	SuccessData []importer.Row     `json:"successData"`
	Errors      []importer.Failure `json:"errors"`
	DryRun      bool               `json:"dryRun,omitempty"`
	SummaryID   *int64             `json:"summaryId,omitempty"`
}

// ImportErrorResponse is the body of a rejected upload. Error carries the parser message.
type ImportErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewImportResponse converts an importer.Result
func NewImportResponse(res *importer.Result) ImportResponse {
	message := MessageImportCompleted
	if res.DryRun {
		message = MessageDryRunCompleted
	}

	resp := ImportResponse{
		Message:     message,
		Total:       res.Total,
		Success:     res.Success,
		SuccessData: res.Successes,
		Errors:      res.Failures,
		DryRun:      res.DryRun,
	}
	if resp.SuccessData == nil {
		resp.SuccessData = []importer.Row{}
	}
	if resp.Errors == nil {
		resp.Errors = []importer.Failure{}
	}
	if res.Summary != nil {
		id := res.Summary.ID
		resp.SummaryID = &id
	}
	return resp
}
