package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/campustrack/internal/app/models/dto"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		offset     uint64
		limit      uint64
	}{
		{name: "first page", page: 1, size: 20, offset: 0, limit: 20},
		{name: "third page", page: 3, size: 10, offset: 20, limit: 10},
		{name: "zero page", page: 0, size: 10, offset: 0, limit: 10},
		{name: "oversized page", page: 2, size: 1000, offset: 10, limit: DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	assert.Equal(t, dto.PaginationInfo{CurrentPage: 2, TotalPages: 3, PageSize: 10, TotalItems: 25}, NewPaginationInfo(25, 2, 10))
	assert.Equal(t, dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalItems: 0}, NewPaginationInfo(0, 1, 10))
	assert.Equal(t, 3, NewPaginationInfo(25, 9, 10).CurrentPage, "current page is clamped to the last page")
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("later", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("0s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("-5s", time.Minute))
}
