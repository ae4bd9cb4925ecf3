package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campustrack/internal/app/models/dto"
	"github.com/yigit/campustrack/internal/app/services"
	"github.com/yigit/campustrack/internal/middleware"
)

// SummaryController serves the upload dashboard
type SummaryController struct {
	summaryService services.SummaryService
}

// NewSummaryController creates a new SummaryController
func NewSummaryController(summaryService services.SummaryService) *SummaryController {
	return &SummaryController{summaryService: summaryService}
}

// ListSummaries returns upload summaries, newest first
func (c *SummaryController) ListSummaries(ctx *gin.Context) {
	var query dto.ListSummariesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.ValidationErrorDetail(err, "Invalid query parameters")))
		return
	}

	page, size := query.PageAndSize()
	summaries, pagination, err := c.summaryService.ListSummaries(ctx.Request.Context(), query.Department, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UploadSummaryListResponse{
		Summaries:  dto.FromUploadSummaries(summaries),
		Pagination: pagination,
	}, ""))
}
