package helpers

import (
	"time"

	"github.com/yigit/campustrack/internal/pkg/logger"
)

// ParseDuration returns the positive duration in value, or fallback when value is empty,
// malformed or not positive. Only malformed and non-positive values are logged.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str("value", value).Dur("fallback", fallback).Msg("Unusable duration, using fallback")
		return fallback
	}
	return d
}
