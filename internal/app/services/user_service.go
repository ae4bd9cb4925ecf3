package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/campustrack/internal/app/models"
	"github.com/yigit/campustrack/internal/app/models/dto"
	"github.com/yigit/campustrack/internal/pkg/apperrors"
	"github.com/yigit/campustrack/internal/pkg/helpers"
)

// PasswordHasher hashes credentials for storage
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// UserService exposes imported accounts to operators
type UserService interface {
	ListUsers(ctx context.Context, role, department string, page, size int) ([]*models.User, dto.PaginationInfo, error)
	ResetPassword(ctx context.Context, id int64) (*dto.ResetPasswordResponse, error)
}

type userService struct {
	users  UserStore
	hasher PasswordHasher
	logger zerolog.Logger
}

// NewUserService creates a UserService
func NewUserService(users UserStore, hasher PasswordHasher, logger zerolog.Logger) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		logger: logger.With().Str("component", "user_service").Logger(),
	}
}

// ListUsers returns one page of accounts. An empty role or department means any.
func (s *userService) ListUsers(ctx context.Context, role, department string, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	filter := models.UserFilter{Department: department}
	if role != "" {
		r, ok := models.ParseRole(role)
		if !ok {
			return nil, dto.PaginationInfo{}, apperrors.NewCustomError(apperrors.ErrInvalidRole, fmt.Sprintf("Unknown role: %q", role))
		}
		filter.Role = r
	}

	page, size = helpers.NormalizePage(page, size)
	filter.Offset, filter.Limit = helpers.CalculateOffsetLimit(page, size)

	users, total, err := s.users.ListUsers(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to list users: %w", err)
	}
	return users, helpers.NewPaginationInfo(total, page, size), nil
}

// ResetPassword sets the account's password back to its natural key and returns that
// plaintext so the operator can hand it over. The plaintext is never logged.
func (s *userService) ResetPassword(ctx context.Context, id int64) (*dto.ResetPasswordResponse, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("Invalid user ID")
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	defaultPassword := user.NaturalKey()
	if defaultPassword == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrConflict, "Account has no natural key to reset to")
	}

	hashed, err := s.hasher.Hash(defaultPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash default credential: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("Password reset to default credential")
	return &dto.ResetPasswordResponse{
		UserID:          user.ID,
		Role:            string(user.Role),
		DefaultPassword: defaultPassword,
	}, nil
}
