package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/hirosato/ynab-mcp/internal/domain/errors"
)

var (
	// DateRegex validates ISO 8601 date strings (YYYY-MM-DD)
	DateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// MonthRegex validates month strings (YYYY-MM), optionally with a day
	MonthRegex = regexp.MustCompile(`^\d{4}-\d{2}(-\d{2})?$`)
)

// ValidateISODate validates an ISO 8601 date string (YYYY-MM-DD)
func ValidateISODate(date string) error {
	if !DateRegex.MatchString(date) {
		return errors.NewValidationError("invalid date format, should be YYYY-MM-DD")
	}

	// Parse the date to ensure it's valid
	_, err := time.Parse("2006-01-02", date)
	if err != nil {
		return errors.NewValidationError("invalid date value")
	}

	return nil
}

// NormalizeMonth accepts YYYY-MM or YYYY-MM-DD and returns the first day
// of that month as YYYY-MM-01, the form the budget API expects.
func NormalizeMonth(month string) (string, error) {
	month = strings.TrimSpace(month)
	if !MonthRegex.MatchString(month) {
		return "", errors.NewValidationError("invalid month format, should be YYYY-MM or YYYY-MM-DD")
	}
	t, err := time.Parse("2006-01", month[:7])
	if err != nil {
		return "", errors.NewValidationError("invalid month value")
	}
	if len(month) > 7 {
		if err := ValidateISODate(month); err != nil {
			return "", err
		}
	}
	return t.Format("2006-01") + "-01", nil
}
