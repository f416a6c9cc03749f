package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/ynab-mcp/internal/api/response"
	"github.com/hirosato/ynab-mcp/internal/domain/mcp"
)

// SessionHeader carries the session id issued on initialize.
const SessionHeader = "Mcp-Session-Id"

// RequestHandler is the part of mcp.Service the handler needs.
type RequestHandler interface {
	HandleRequest(ctx context.Context, request mcp.JSONRPCRequest) mcp.HTTPResponse
}

// MCPHandler serves JSON-RPC over API Gateway on the root path.
type MCPHandler struct {
	service RequestHandler
}

// NewMCPHandler creates a new MCP request handler
func NewMCPHandler(service RequestHandler) *MCPHandler {
	return &MCPHandler{service: service}
}

// Handle matches middleware.APIGatewayHandler.
func (h *MCPHandler) Handle(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// Handle CORS preflight
	if request.HTTPMethod == http.MethodOptions {
		return response.NoContent(), nil
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	logger.Debug("mcp - Memory Status", "MB", m.Alloc/1024/1024)

	if request.Path != "/" && request.Path != "" {
		return response.NotFound("Endpoint not found", request.RequestContext.RequestID), nil
	}
	if request.HTTPMethod != http.MethodPost {
		return jsonRPCMethodNotAllowed(), nil
	}

	var rpcRequest mcp.JSONRPCRequest
	if err := json.Unmarshal([]byte(request.Body), &rpcRequest); err != nil {
		logger.Warn("Failed to parse JSON-RPC request", "error", err)
		return jsonRPCError(json.RawMessage("null"), mcp.ParseError, "Parse error", err.Error()), nil
	}

	httpResponse := h.service.HandleRequest(ctx, rpcRequest)

	// Notifications have no id and get an empty 202.
	if len(rpcRequest.ID) == 0 {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusAccepted,
			Headers:    response.DefaultHeaders(),
		}, nil
	}

	body, err := json.Marshal(httpResponse.JSONRPCResponse)
	if err != nil {
		logger.Error("Failed to marshal JSON-RPC response", "error", err)
		return jsonRPCError(rpcRequest.ID, mcp.InternalError, "Internal error", "Failed to marshal response"), nil
	}

	headers := response.DefaultHeaders()
	if httpResponse.SessionID != "" {
		headers[SessionHeader] = httpResponse.SessionID
	}
	status := httpResponse.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func jsonRPCError(id json.RawMessage, code int, message string, data string) events.APIGatewayProxyResponse {
	resp := mcp.NewErrorHTTPResponse(id, code, message, data, http.StatusOK)
	// JSON-RPC errors still return 200
	return response.JSON(http.StatusOK, resp.JSONRPCResponse)
}

func jsonRPCMethodNotAllowed() events.APIGatewayProxyResponse {
	resp := mcp.NewErrorHTTPResponse(nil, mcp.MethodNotAllowed, "Method Not Allowed", nil, http.StatusMethodNotAllowed)
	out := response.JSON(http.StatusMethodNotAllowed, resp.JSONRPCResponse)
	out.Headers["Allow"] = "POST, OPTIONS"
	return out
}
