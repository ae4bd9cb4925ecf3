package dto

import (
	"time"

	"github.com/yigit/campustrack/internal/app/models"
)

// UserResponse is the public view of an account. The password hash is never included.
type UserResponse struct {
	ID              int64     `json:"id" example:"1"`
	Name            string    `json:"name" example:"Ada"`
	Email           string    `json:"email" example:"ada@campus.edu"`
	Role            string    `json:"role" example:"student"`
	RollNo          *string   `json:"rollNo,omitempty" example:"101"`
	TeacherID       *string   `json:"teacherId,omitempty" example:"T1"`
	Department      string    `json:"department" example:"CS"`
	Section         *string   `json:"section,omitempty"`
	Year            *string   `json:"year,omitempty"`
	ClassTeacher    *bool     `json:"classTeacher,omitempty"`
	AssignedSection *string   `json:"assignedSection,omitempty"`
	AssignedYear    *string   `json:"assignedYear,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserListResponse is one page of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// ResetPasswordResponse returns the default credential exactly once
type ResetPasswordResponse struct {
	UserID          int64  `json:"userId"`
	Role            string `json:"role"`
	DefaultPassword string `json:"defaultPassword"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(u *models.User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}

	switch u.Role {
	case models.RoleStudent:
		resp.RollNo = u.RollNo
		resp.Section = u.Section
		resp.Year = u.Year
	case models.RoleTeacher:
		classTeacher := u.ClassTeacher
		resp.TeacherID = u.TeacherID
		resp.ClassTeacher = &classTeacher
		resp.AssignedSection = u.AssignedSection
		resp.AssignedYear = u.AssignedYear
	}
	return resp
}

// FromUsers converts a slice of users
func FromUsers(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}
