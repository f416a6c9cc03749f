package mcp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const (
	jsonRPCVersion  = "2.0"
	protocolVersion = "2024-11-05"

	ServerName    = "ynab-mcp-server"
	ServerVersion = "1.0.0"
)

// HTTPResponse encapsulates both JSON-RPC response and HTTP status code.
// SessionID is set only on initialize.
type HTTPResponse struct {
	JSONRPCResponse JSONRPCResponse
	StatusCode      int
	SessionID       string
}

// NewSuccessHTTPResponse creates a successful HTTP response with JSON-RPC result
func NewSuccessHTTPResponse(id json.RawMessage, result interface{}, statusCode int) HTTPResponse {
	return HTTPResponse{
		JSONRPCResponse: JSONRPCResponse{
			JSONRPC: jsonRPCVersion,
			ID:      id,
			Result:  result,
		},
		StatusCode: statusCode,
	}
}

// NewErrorHTTPResponse creates an error HTTP response with JSON-RPC error
func NewErrorHTTPResponse(id json.RawMessage, code int, message string, data interface{}, statusCode int) HTTPResponse {
	return HTTPResponse{
		JSONRPCResponse: JSONRPCResponse{
			JSONRPC: jsonRPCVersion,
			ID:      id,
			Error: &JSONRPCError{
				Code:    code,
				Message: message,
				Data:    data,
			},
		},
		StatusCode: statusCode,
	}
}

// Service handles MCP protocol operations
type Service struct {
	logger     *slog.Logger
	serverInfo ServerInfo
	registry   *HandlerRegistry
}

// NewService creates a new MCP service
func NewService(logger *slog.Logger, registry *HandlerRegistry) *Service {
	return &Service{
		logger: logger,
		serverInfo: ServerInfo{
			Name:    ServerName,
			Title:   "YNAB budgeting assistant",
			Version: ServerVersion,
		},
		registry: registry,
	}
}

// HandleRequest processes a JSON-RPC request
func (s *Service) HandleRequest(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	s.logger.Info("MCP request received", "method", request.Method)

	switch request.Method {
	case "initialize":
		return s.handleInitialize(ctx, request)
	case "initialized":
		return s.handleInitialized(ctx, request)
	case "notifications/initialized":
		return s.handleInitializedNotification(ctx, request)
	case "ping":
		return s.handlePing(ctx, request)
	case "resources/list":
		return s.handleListResources(ctx, request)
	case "resources/read":
		return s.handleReadResource(ctx, request)
	case "tools/list":
		return s.handleListTools(ctx, request)
	case "tools/call":
		return s.handleCallTool(ctx, request)
	case "prompts/list":
		return s.handleListPrompts(ctx, request)
	case "prompts/get":
		return s.handleGetPrompt(ctx, request)
	default:
		return NewErrorHTTPResponse(request.ID, MethodNotFound, fmt.Sprintf("Method not found: %s", request.Method), nil, http.StatusOK)
	}
}

func (s *Service) handleInitialize(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	var params InitializeParams
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return NewErrorHTTPResponse(request.ID, InvalidParams, "Invalid initialize params", err.Error(), http.StatusOK)
		}
	}

	result := InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: ServerCapability{
			Resources: ResourcesCapability{
				ListChanged: false,
				Subscribe:   false,
			},
			Tools: ToolsCapability{
				ListChanged: false,
				Subscribe:   false,
			},
			Prompts: PromptsCapability{ListChanged: false},
		},
		Instructions: "Use this MCP server to read and manage a YNAB budget. Amounts are in dollars; positive transaction amounts are outflows unless stated otherwise.",
		ServerInfo:   s.serverInfo,
	}

	sessionID := uuid.NewString()
	s.logger.Info("MCP session initialized", "session_id", sessionID, "client", params.ClientInfo.Name, "client_version", params.ClientInfo.Version)

	resp := NewSuccessHTTPResponse(request.ID, result, http.StatusOK)
	resp.SessionID = sessionID
	return resp
}

func (s *Service) handlePing(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	return NewSuccessHTTPResponse(request.ID, map[string]any{}, http.StatusOK)
}

func (s *Service) handleInitialized(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	return NewSuccessHTTPResponse(request.ID, map[string]any{}, http.StatusOK)
}

func (s *Service) handleInitializedNotification(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	return NewSuccessHTTPResponse(request.ID, map[string]any{}, http.StatusAccepted)
}

func (s *Service) handleListResources(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	resources := s.registry.ListResources()
	result := ListResourcesResult{
		Resources: resources,
	}

	return NewSuccessHTTPResponse(request.ID, result, http.StatusOK)
}

func (s *Service) handleReadResource(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	var params ReadResourceParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return NewErrorHTTPResponse(request.ID, InvalidParams, "Invalid read resource params", err.Error(), http.StatusOK)
	}

	handler, ok := s.registry.GetResource(params.URI)
	if !ok {
		return NewErrorHTTPResponse(request.ID, InvalidParams, fmt.Sprintf("Resource not found: %s", params.URI), nil, http.StatusOK)
	}

	result, err := handler.Read(ctx)
	if err != nil {
		s.logger.Error("Failed to read resource", "uri", params.URI, "error", err)
		return NewErrorHTTPResponse(request.ID, InternalError, "Failed to read resource", err.Error(), http.StatusOK)
	}

	return NewSuccessHTTPResponse(request.ID, result, http.StatusOK)
}

func (s *Service) handleListTools(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	tools := s.registry.ListTools()
	result := ListToolsResult{
		Tools: tools,
	}

	return NewSuccessHTTPResponse(request.ID, result, http.StatusOK)
}

func (s *Service) handleCallTool(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	var params CallToolParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return NewErrorHTTPResponse(request.ID, InvalidParams, "Invalid call tool params", err.Error(), http.StatusOK)
	}

	handler, ok := s.registry.GetTool(params.Name)
	if !ok {
		return NewErrorHTTPResponse(request.ID, InvalidParams, fmt.Sprintf("Tool not found: %s", params.Name), nil, http.StatusOK)
	}

	callID := ulid.MustNew(ulid.Now(), rand.Reader).String()
	logger := s.logger.With("call_id", callID, "tool", params.Name)
	logger.Info("Tool call started")
	start := time.Now()

	result, err := handler.Execute(ctx, params.Arguments)
	elapsed := time.Since(start).Milliseconds()
	switch {
	case err != nil:
		logger.Error("Failed to execute tool", "error", err, "duration_ms", elapsed)
		// Return error in tool result format
		result = ErrorResult(err.Error())
	case result != nil && result.IsError:
		logger.Warn("Tool call returned an error result", "duration_ms", elapsed)
	default:
		logger.Info("Tool call finished", "duration_ms", elapsed)
	}

	return NewSuccessHTTPResponse(request.ID, result, http.StatusOK)
}

func (s *Service) handleListPrompts(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	result := ListPromptsResult{
		Prompts: s.registry.ListPrompts(),
	}

	return NewSuccessHTTPResponse(request.ID, result, http.StatusOK)
}

func (s *Service) handleGetPrompt(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	var params GetPromptParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return NewErrorHTTPResponse(request.ID, InvalidParams, "Invalid get prompt params", err.Error(), http.StatusOK)
	}

	handler, ok := s.registry.GetPrompt(params.Name)
	if !ok {
		return NewErrorHTTPResponse(request.ID, InvalidParams, fmt.Sprintf("Prompt not found: %s", params.Name), nil, http.StatusOK)
	}

	for _, arg := range handler.GetArguments() {
		if v, _ := params.Arguments[arg.Name].(string); arg.Required && v == "" {
			return NewErrorHTTPResponse(request.ID, InvalidParams, fmt.Sprintf("Missing required argument: %s", arg.Name), nil, http.StatusOK)
		}
	}

	result, err := handler.GetPrompt(ctx, params.Arguments)
	if err != nil {
		s.logger.Error("Failed to render prompt", "prompt", params.Name, "error", err)
		return NewErrorHTTPResponse(request.ID, InternalError, "Failed to render prompt", err.Error(), http.StatusOK)
	}

	return NewSuccessHTTPResponse(request.ID, result, http.StatusOK)
}
