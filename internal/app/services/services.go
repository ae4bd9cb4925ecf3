// Package services holds the business operations behind the HTTP handlers and the admin CLI:
// ImportService runs roster batches, UserService serves account listings and credential
// resets, SummaryService serves the upload dashboard.
package services

import (
	"context"

	"github.com/yigit/campustrack/internal/app/models"
)

// UserStore is the subset of the user repository the services need
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, int64, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
}

// SummaryLister reads persisted upload summaries
type SummaryLister interface {
	ListSummaries(ctx context.Context, filter models.SummaryFilter) ([]*models.UploadSummary, int64, error)
}
