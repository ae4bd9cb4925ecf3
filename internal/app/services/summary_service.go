package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/campustrack/internal/app/models"
	"github.com/yigit/campustrack/internal/app/models/dto"
	"github.com/yigit/campustrack/internal/pkg/helpers"
)

// SummaryService backs the upload dashboard
type SummaryService interface {
	ListSummaries(ctx context.Context, department string, page, size int) ([]*models.UploadSummary, dto.PaginationInfo, error)
}

type summaryService struct {
	summaries SummaryLister
}

// NewSummaryService creates a SummaryService
func NewSummaryService(summaries SummaryLister) SummaryService {
	return &summaryService{summaries: summaries}
}

// ListSummaries returns summaries newest first, optionally for one department
func (s *summaryService) ListSummaries(ctx context.Context, department string, page, size int) ([]*models.UploadSummary, dto.PaginationInfo, error) {
	page, size = helpers.NormalizePage(page, size)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	summaries, total, err := s.summaries.ListSummaries(ctx, models.SummaryFilter{
		Department: strings.TrimSpace(department),
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to list upload summaries: %w", err)
	}
	return summaries, helpers.NewPaginationInfo(total, page, size), nil
}
