package models

import (
	"strings"
	"time"
)

// Role is the account role stored on a user record
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Operator roles carried in access tokens. They never appear on user records.
const (
	RoleDepartmentAdmin = "admin"
	RoleSuperAdmin      = "superadmin"
)

// ParseRole lowercases s and returns the matching account role
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStudent, RoleTeacher:
		return r, true
	default:
		return r, false
	}
}

// IsValid reports whether r is an account role
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// NaturalKeyField returns the column name holding the role's natural key
func (r Role) NaturalKeyField() string {
	if r == RoleTeacher {
		return "teacherId"
	}
	return "rollNo"
}

// User defines the account model based on the 'users' table.
// Students carry RollNo, Section and Year; teachers carry TeacherID and the class-teacher fields.
type User struct {
	ID              int64     `json:"id" db:"id" example:"1"`
	Name            string    `json:"name" db:"name" example:"Ada Lovelace"`
	Email           string    `json:"email" db:"email" example:"ada@campus.edu"`
	Password        string    `json:"-" db:"password"`
	Role            Role      `json:"role" db:"role" example:"student"`
	RollNo          *string   `json:"rollNo,omitempty" db:"roll_no" example:"101"`
	TeacherID       *string   `json:"teacherId,omitempty" db:"teacher_id" example:"T1"`
	Department      string    `json:"department" db:"department" example:"CS"`
	Section         *string   `json:"section,omitempty" db:"section" example:"A"`
	Year            *string   `json:"year,omitempty" db:"year" example:"2"`
	ClassTeacher    bool      `json:"classTeacher" db:"class_teacher"`
	AssignedSection *string   `json:"assignedSection" db:"assigned_section"`
	AssignedYear    *string   `json:"assignedYear" db:"assigned_year"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// NaturalKey returns the roll number or teacher ID, whichever the role uses
func (u *User) NaturalKey() string {
	switch u.Role {
	case RoleStudent:
		if u.RollNo != nil {
			return *u.RollNo
		}
	case RoleTeacher:
		if u.TeacherID != nil {
			return *u.TeacherID
		}
	}
	return ""
}

// UserFilter narrows user listings
type UserFilter struct {
	Role       Role
	Department string
	Offset     uint64
	Limit      uint64
}
