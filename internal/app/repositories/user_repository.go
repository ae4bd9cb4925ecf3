package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campustrack/internal/app/models"
	"github.com/yigit/campustrack/internal/pkg/apperrors"
	"github.com/yigit/campustrack/internal/pkg/dberrors"
	"github.com/yigit/campustrack/internal/pkg/logger"
)

// Partial unique indexes backing natural key uniqueness; see migrations/001_init.sql
const (
	rollNoConstraint    = "users_roll_no_key"
	teacherIDConstraint = "users_teacher_id_key"
)

var userColumns = []string{
	"id", "name", "email", "password", "role", "roll_no", "teacher_id", "department",
	"section", "year", "class_teacher", "assigned_section", "assigned_year", "created_at", "updated_at",
}

// UserRepository handles database operations for imported accounts
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func naturalKeyColumn(role models.Role) (string, error) {
	switch role {
	case models.RoleStudent:
		return "roll_no", nil
	case models.RoleTeacher:
		return "teacher_id", nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidRole, role)
	}
}

// NaturalKeyExists checks whether an account of role already holds key
func (r *UserRepository) NaturalKeyExists(ctx context.Context, role models.Role, key string) (bool, error) {
	column, err := naturalKeyColumn(role)
	if err != nil {
		return false, err
	}

	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{column: key}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build natural key exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("role", string(role)).Msg("Error checking natural key existence")
		return false, fmt.Errorf("error checking %s existence: %w", column, err)
	}
	return exists, nil
}

// CreateUser inserts user and fills in its ID and timestamps.
// A natural key rejected by the unique index is reported as apperrors.ErrIdentifierExists.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password", "role", "roll_no", "teacher_id", "department",
			"section", "year", "class_teacher", "assigned_section", "assigned_year").
		Values(user.Name, user.Email, user.Password, string(user.Role), user.RollNo, user.TeacherID, user.Department,
			user.Section, user.Year, user.ClassTeacher, user.AssignedSection, user.AssignedYear).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, rollNoConstraint) || dberrors.IsDuplicateConstraintError(err, teacherIDConstraint) {
			logger.Warn().Str("role", string(user.Role)).Msg("Natural key rejected by unique index")
			return fmt.Errorf("%w: %v", apperrors.ErrIdentifierExists, err)
		}
		return err
	}

	logger.Debug().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User created")
	return nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// ListUsers returns one page of users matching filter, newest first, and the total match count
func (r *UserRepository) ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, int64, error) {
	where := squirrel.And{}
	if filter.Role != "" {
		where = append(where, squirrel.Eq{"role": string(filter.Role)})
	}
	if filter.Department != "" {
		where = append(where, squirrel.Eq{"department": filter.Department})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("users").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count users query")
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	if total == 0 {
		return []*models.User{}, 0, nil
	}

	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0, filter.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", hashedPassword).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var role string
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &role, &user.RollNo, &user.TeacherID, &user.Department,
		&user.Section, &user.Year, &user.ClassTeacher, &user.AssignedSection, &user.AssignedYear,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	return &user, nil
}
