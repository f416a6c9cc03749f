package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// LoggingMiddleware is a middleware for logging requests and responses
type LoggingMiddleware struct {
	// logBodies also logs request and response bodies. Tool results carry
	// ledger data, so this is meant for dev only.
	logBodies bool
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logBodies bool) LoggingMiddleware {
	return LoggingMiddleware{logBodies: logBodies}
}

// Handle handles the logging middleware
func (m LoggingMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		startTime := time.Now()

		logger = logger.With("requestId", request.RequestContext.RequestID)
		m.logRequest(request, logger)

		response, err := next(ctx, logger, request)

		m.logResponse(response, err, time.Since(startTime), logger)
		return response, err
	}
}

func (m LoggingMiddleware) logRequest(request events.APIGatewayProxyRequest, logger *slog.Logger) {
	logger.Info("REQUEST",
		"method", request.HTTPMethod,
		"path", request.Path,
		"sourceIP", request.RequestContext.Identity.SourceIP,
		"headers", maskSensitiveHeaders(request.Headers))

	if m.logBodies && request.Body != "" {
		logger.Debug("REQUEST", "body", request.Body)
	}
}

func (m LoggingMiddleware) logResponse(response events.APIGatewayProxyResponse, err error, duration time.Duration, logger *slog.Logger) {
	if err != nil {
		logger.Warn("ERROR", "error", err)
	}

	logger.Info("RESPONSE",
		"status", response.StatusCode,
		"duration", duration,
	)

	if m.logBodies && response.Body != "" {
		logger.Debug("RESPONSE", "body", response.Body)
	}
}

// maskSensitiveHeaders masks sensitive headers
func maskSensitiveHeaders(headers map[string]string) map[string]string {
	maskedHeaders := make(map[string]string, len(headers))
	for k, v := range headers {
		maskedHeaders[k] = v
	}

	sensitiveHeaders := []string{
		"Authorization",
		"authorization",
		"X-Api-Key",
		"x-api-key",
		"Cookie",
		"cookie",
	}
	for _, header := range sensitiveHeaders {
		if _, ok := maskedHeaders[header]; ok {
			maskedHeaders[header] = "***"
		}
	}

	return maskedHeaders
}
