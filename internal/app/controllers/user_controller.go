package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campustrack/internal/app/models/dto"
	"github.com/yigit/campustrack/internal/app/services"
	"github.com/yigit/campustrack/internal/middleware"
	"github.com/yigit/campustrack/internal/pkg/apperrors"
)

// UserController handles user-related operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers returns imported accounts filtered by role and department
func (c *UserController) ListUsers(ctx *gin.Context) {
	var query dto.ListUsersQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.ValidationErrorDetail(err, "Invalid query parameters")))
		return
	}

	page, size := query.PageAndSize()
	users, pagination, err := c.userService.ListUsers(ctx.Request.Context(), query.Role, query.Department, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UserListResponse{
		Users:      dto.FromUsers(users),
		Pagination: pagination,
	}, ""))
}

// ResetPassword restores an account's default credential
func (c *UserController) ResetPassword(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid user ID"))
		return
	}

	resp, err := c.userService.ResetPassword(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Password reset to default credential"))
}
