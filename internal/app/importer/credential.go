package importer

import (
	"fmt"
	"time"

	"github.com/yigit/campustrack/internal/app/models"
)

// PasswordHasher is the one-way hash applied to default credentials
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// DefaultCredential is the initial password of an imported account: its own natural key.
func DefaultCredential(c *Candidate) string {
	return c.NaturalKey()
}

// NewAccount builds the user record for c. Only the fields of c's role are set.
func NewAccount(c *Candidate, hashedPassword string, now time.Time) *models.User {
	u := &models.User{
		Name:       c.Name,
		Email:      c.Email,
		Password:   hashedPassword,
		Role:       c.Role,
		Department: c.Department,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	switch c.Role {
	case models.RoleStudent:
		rollNo := c.RollNo
		u.RollNo = &rollNo
		u.Section = nullIfBlank(c.Section)
		u.Year = nullIfBlank(c.Year)
	case models.RoleTeacher:
		teacherID := c.TeacherID
		u.TeacherID = &teacherID
		u.ClassTeacher = c.ClassTeacher
		u.AssignedSection = c.AssignedSection
		u.AssignedYear = c.AssignedYear
	}
	return u
}

func deriveCredential(h PasswordHasher, c *Candidate) (string, error) {
	hashed, err := h.Hash(DefaultCredential(c))
	if err != nil {
		return "", fmt.Errorf("failed to derive default credential: %w", err)
	}
	return hashed, nil
}
