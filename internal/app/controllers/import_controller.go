package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campustrack/internal/app/importer"
	"github.com/yigit/campustrack/internal/app/models/dto"
	"github.com/yigit/campustrack/internal/app/services"
	"github.com/yigit/campustrack/internal/middleware"
	"github.com/yigit/campustrack/internal/pkg/logger"
)

// RosterFileField is the multipart field carrying the roster
const RosterFileField = "file"

// ImportController handles roster uploads. Its responses use the fixed
// {message,total,success,successData,errors} shape rather than dto.APIResponse.
type ImportController struct {
	importService services.ImportService
}

// NewImportController creates a new ImportController
func NewImportController(importService services.ImportService) *ImportController {
	return &ImportController{importService: importService}
}

// ImportUsers creates student and teacher accounts from an uploaded roster
func (c *ImportController) ImportUsers(ctx *gin.Context) {
	var query dto.ImportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid query parameters"})
		return
	}

	fileHeader, err := ctx.FormFile(RosterFileField)
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			ctx.JSON(http.StatusRequestEntityTooLarge, dto.MessageResponse{Message: dto.MessageFileTooLarge})
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.MessageResponse{Message: dto.MessageNoFile})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded roster")
		ctx.JSON(http.StatusInternalServerError, dto.ImportErrorResponse{Message: dto.MessageParseFailed, Error: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			ctx.JSON(http.StatusRequestEntityTooLarge, dto.MessageResponse{Message: dto.MessageFileTooLarge})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ImportErrorResponse{Message: dto.MessageParseFailed, Error: err.Error()})
		return
	}

	res, err := c.importService.Import(ctx.Request.Context(), services.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		DryRun:      query.DryRun,
	})
	if err != nil {
		var parseErr *importer.ParseError
		if !errors.As(err, &parseErr) {
			logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Roster import failed")
		}
		ctx.JSON(http.StatusInternalServerError, dto.ImportErrorResponse{Message: dto.MessageParseFailed, Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dto.NewImportResponse(res))
}
