package tools

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	apperrors "github.com/hirosato/ynab-mcp/internal/domain/errors"
	"github.com/hirosato/ynab-mcp/pkg/validator"
)

// errorText is the single place a Go error becomes the text a tool returns.
func (s *Toolset) errorText(toolName string, err error) string {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		return "YNAB API error: " + apiErr.Detail
	}

	var lookupErr *apperrors.LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Error()
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return "Cannot connect to YNAB API. Check your network connection."
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Request to YNAB timed out. Please try again."
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		lines := []string{fmt.Sprintf("Invalid data: %d validation error(s). Check your input.", len(verrs))}
		for _, fe := range verrs {
			lines = append(lines, fmt.Sprintf("- %s: %s", fe.Field, fe.Message))
		}
		return strings.Join(lines, "\n")
	}

	var appErr apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.CodeValidation {
		return appErr.Message
	}

	s.logger.Error("Unexpected tool error", "tool", toolName, "error", err)
	return fmt.Sprintf("Unexpected error: %T: %v", err, err)
}
