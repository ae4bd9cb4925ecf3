package importer

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/campustrack/internal/app/models"
)

var validate = newValidator()

// newValidator reports field errors under their roster column names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("column")
	})
	return v
}

type studentRequired struct {
	Name   string `column:"name" validate:"required"`
	RollNo string `column:"rollNo" validate:"required"`
	Email  string `column:"email" validate:"required"`
}

type teacherRequired struct {
	Name      string `column:"name" validate:"required"`
	TeacherID string `column:"teacherId" validate:"required"`
	Email     string `column:"email" validate:"required"`
}

// Candidate is a validated row shaped for its role
type Candidate struct {
	Role       models.Role
	Name       string
	Email      string
	Department string

	// student
	RollNo  string
	Section string
	Year    string

	// teacher
	TeacherID       string
	ClassTeacher    bool
	AssignedSection *string
	AssignedYear    *string
}

// NaturalKey returns the roll number for students and the teacher ID for teachers
func (c *Candidate) NaturalKey() string {
	if c.Role == models.RoleTeacher {
		return c.TeacherID
	}
	return c.RollNo
}

// Validate checks the row against its role's required fields. It performs no I/O.
func Validate(row Row) (*Candidate, error) {
	rawRole := row.Get(FieldRole)
	role, ok := models.ParseRole(rawRole)
	if !ok {
		return nil, &UnknownRoleError{Value: rawRole}
	}

	c := &Candidate{
		Role:       role,
		Name:       row.Get(FieldName),
		Email:      row.Get(FieldEmail),
		Department: row.Get(FieldDepartment),
	}

	var required interface{}
	switch role {
	case models.RoleStudent:
		c.RollNo = row.Get(FieldRollNo)
		c.Section = row.Get(FieldSection)
		c.Year = row.Get(FieldYear)
		required = studentRequired{Name: c.Name, RollNo: c.RollNo, Email: c.Email}
	case models.RoleTeacher:
		c.TeacherID = row.Get(FieldTeacherID)
		c.ClassTeacher = strings.EqualFold(row.Get(FieldClassTeacher), "true")
		c.AssignedSection = nullIfBlank(row.Get(FieldAssignedSection))
		c.AssignedYear = nullIfBlank(row.Get(FieldAssignedYear))
		required = teacherRequired{Name: c.Name, TeacherID: c.TeacherID, Email: c.Email}
	}

	if missing := missingFields(required); len(missing) > 0 {
		return nil, &MissingFieldError{Role: role, Fields: missing}
	}
	return c, nil
}

func missingFields(s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func nullIfBlank(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
