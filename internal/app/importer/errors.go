package importer

import (
	"fmt"
	"strings"

	"github.com/yigit/campustrack/internal/app/models"
)

// MissingFieldError means required columns for the row's role were absent or empty
type MissingFieldError struct {
	Role   models.Role
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required fields for %s: %s", e.Role, strings.Join(e.Fields, ", "))
}

// UnknownRoleError carries the offending role value verbatim
type UnknownRoleError struct {
	Value string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("Unknown role: %q", e.Value)
}

// DuplicateIdentityError means an account already holds the row's natural key
type DuplicateIdentityError struct {
	Role models.Role
	Key  string
}

func (e *DuplicateIdentityError) Error() string {
	label := "Student"
	if e.Role == models.RoleTeacher {
		label = "Teacher"
	}
	return fmt.Sprintf("%s with %s %q already exists", label, e.Role.NaturalKeyField(), e.Key)
}

// PersistenceError wraps a store failure; its message is the store's own
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ParseError is fatal to the batch: the upload could not be read as a roster
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "failed to parse roster file: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
