package middleware

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/events"
	"github.com/hirosato/ynab-mcp/internal/api/response"
	"github.com/hirosato/ynab-mcp/internal/domain/errors"
)

// RecoveryMiddleware is a middleware for recovering from panics
type RecoveryMiddleware struct{}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware() RecoveryMiddleware {
	return RecoveryMiddleware{}
}

// Handle handles the recovery middleware
func (m RecoveryMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
		requestID := request.RequestContext.RequestID

		defer func() {
			if r := recover(); r != nil {
				logger.Error("PANIC", "panic", fmt.Sprint(r), "requestId", requestID, "stack", string(debug.Stack()))
				resp = response.Error(errors.NewInternalError("An unexpected error occurred", nil), requestID)
				err = nil
			}
		}()

		resp, err = next(ctx, logger, request)
		if err != nil {
			// Convert the error to an AppError if it's not already
			var appErr errors.AppError
			if !stderrors.As(err, &appErr) {
				appErr = errors.NewInternalError("An unexpected error occurred", err)
			}
			logger.Error("ERROR", "code", appErr.Code, "error", appErr.Error(), "requestId", requestID)
			return response.Error(appErr, requestID), nil
		}
		return resp, nil
	}
}
