package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/hirosato/ynab-mcp/internal/api/response"
)

// AuthMiddleware checks a static bearer token on every non-preflight
// request. An empty token disables the check.
type AuthMiddleware struct {
	token string
	log   *zap.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(token string, log *zap.Logger) AuthMiddleware {
	if log == nil {
		log = zap.NewNop()
	}
	return AuthMiddleware{token: token, log: log}
}

// Handle handles the auth middleware
func (m AuthMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		if m.token == "" || request.HTTPMethod == "OPTIONS" {
			return next(ctx, logger, request)
		}

		requestID := request.RequestContext.RequestID
		authHeader := headerValue(request.Headers, "Authorization")
		if authHeader == "" {
			m.log.Info("Missing Authorization header", zap.String("requestId", requestID))
			return response.Unauthorized("Authorization header is required", requestID), nil
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			m.log.Info("Invalid Authorization header format", zap.String("requestId", requestID))
			return response.Unauthorized("Authorization header must be a Bearer token", requestID), nil
		}

		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(m.token)) != 1 {
			m.log.Warn("Token rejected",
				zap.String("requestId", requestID),
				zap.String("sourceIP", request.RequestContext.Identity.SourceIP))
			return response.Unauthorized("Invalid token", requestID), nil
		}

		return next(ctx, logger, request)
	}
}

// headerValue looks a header up case-insensitively. API Gateway passes
// headers through with whatever casing the client used.
func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
