package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campustrack/internal/app/models/dto"
)

// UploadLimit caps the request body at maxBytes. A declared Content-Length over the
// limit is rejected before the handler runs; bodies that only turn out to be too large
// while reading fail inside the handler with *http.MaxBytesError.
func UploadLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.MessageResponse{Message: dto.MessageFileTooLarge})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// IsBodyTooLarge reports whether err came from a body exceeding UploadLimit
func IsBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
