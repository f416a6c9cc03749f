package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock tool for testing
type mockTool struct {
	name        string
	description string
	schema      JSONSchema
	result      *CallToolResult
	err         error
}

func (m *mockTool) GetName() string            { return m.name }
func (m *mockTool) GetDescription() string     { return m.description }
func (m *mockTool) GetInputSchema() JSONSchema { return m.schema }
func (m *mockTool) Execute(ctx context.Context, arguments json.RawMessage) (*CallToolResult, error) {
	return m.result, m.err
}

// Mock resource for testing
type mockResource struct {
	uri         string
	name        string
	description string
	mimeType    string
	result      *ReadResourceResult
	err         error
}

func (m *mockResource) GetURI() string         { return m.uri }
func (m *mockResource) GetName() string        { return m.name }
func (m *mockResource) GetDescription() string { return m.description }
func (m *mockResource) GetMimeType() string    { return m.mimeType }
func (m *mockResource) Read(ctx context.Context) (*ReadResourceResult, error) {
	return m.result, m.err
}

// Mock prompt for testing
type mockPrompt struct {
	name string
	args []PromptArgument
}

func (m *mockPrompt) GetName() string                { return m.name }
func (m *mockPrompt) GetDescription() string         { return "Test prompt" }
func (m *mockPrompt) GetArguments() []PromptArgument { return m.args }
func (m *mockPrompt) GetPrompt(ctx context.Context, arguments map[string]interface{}) (*GetPromptResult, error) {
	month, _ := arguments["month"].(string)
	return &GetPromptResult{
		Messages: []PromptMessage{{Role: "user", Content: PromptContent{Type: "text", Text: "Review " + month}}},
	}, nil
}

func TestService_HandleInitialize(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	registry := NewHandlerRegistry()
	service := NewService(logger, registry)

	// Create initialize request
	params := InitializeParams{
		ProtocolVersion: "2024-11-05",
		Capabilities:    ClientCapability{},
		ClientInfo: ClientInfo{
			Name:    "test-client",
			Version: "1.0.0",
		},
	}
	paramsJSON, _ := json.Marshal(params)

	request := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`1`),
		Method:  "initialize",
		Params:  paramsJSON,
	}

	// Handle request
	httpResponse := service.HandleRequest(context.Background(), request)

	// Verify response
	assert.Nil(t, httpResponse.JSONRPCResponse.Error)
	assert.NotNil(t, httpResponse.JSONRPCResponse.Result)
	assert.Equal(t, 200, httpResponse.StatusCode)

	// Parse result
	resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
	var result InitializeResult
	err := json.Unmarshal(resultJSON, &result)
	require.NoError(t, err)

	assert.Equal(t, "2024-11-05", result.ProtocolVersion)
	assert.Equal(t, "ynab-mcp-server", result.ServerInfo.Name)
	assert.False(t, result.Capabilities.Resources.Subscribe)

	// Each initialize issues a fresh session id.
	_, err = uuid.Parse(httpResponse.SessionID)
	require.NoError(t, err)
	second := service.HandleRequest(context.Background(), request)
	assert.NotEqual(t, httpResponse.SessionID, second.SessionID)
}

func TestService_HandleListResources(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	registry := NewHandlerRegistry()

	// Register mock resources
	registry.RegisterResource(&mockResource{
		uri:         "test://resource1",
		name:        "Test Resource 1",
		description: "First test resource",
		mimeType:    "text/plain",
	})
	registry.RegisterResource(&mockResource{
		uri:         "test://resource2",
		name:        "Test Resource 2",
		description: "Second test resource",
		mimeType:    "application/json",
	})

	service := NewService(logger, registry)

	// Initialize first
	initParams := InitializeParams{
		ProtocolVersion: "2024-11-05",
		Capabilities:    ClientCapability{},
		ClientInfo: ClientInfo{
			Name:    "test-client",
			Version: "1.0.0",
		},
	}
	initParamsJSON, _ := json.Marshal(initParams)
	service.HandleRequest(context.Background(), JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`1`),
		Method:  "initialize",
		Params:  initParamsJSON,
	})

	// List resources
	request := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`2`),
		Method:  "resources/list",
	}

	httpResponse := service.HandleRequest(context.Background(), request)

	// Verify response
	assert.Nil(t, httpResponse.JSONRPCResponse.Error)
	assert.NotNil(t, httpResponse.JSONRPCResponse.Result)
	assert.Equal(t, 200, httpResponse.StatusCode)

	// Parse result
	resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
	var result ListResourcesResult
	err := json.Unmarshal(resultJSON, &result)
	require.NoError(t, err)

	assert.Len(t, result.Resources, 2)
}

func TestService_HandleListTools(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	registry := NewHandlerRegistry()

	// Register mock tools
	registry.RegisterTool(&mockTool{
		name:        "test_tool1",
		description: "First test tool",
		schema: JSONSchema{
			Type:     "object",
			Required: []string{"param1"},
		},
	})
	registry.RegisterTool(&mockTool{
		name:        "test_tool2",
		description: "Second test tool",
		schema: JSONSchema{
			Type:     "object",
			Required: []string{"param2"},
		},
	})

	service := NewService(logger, registry)

	// Initialize first
	initParams := InitializeParams{
		ProtocolVersion: "2024-11-05",
		Capabilities:    ClientCapability{},
		ClientInfo: ClientInfo{
			Name:    "test-client",
			Version: "1.0.0",
		},
	}
	initParamsJSON, _ := json.Marshal(initParams)
	service.HandleRequest(context.Background(), JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`1`),
		Method:  "initialize",
		Params:  initParamsJSON,
	})

	// List tools
	request := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`2`),
		Method:  "tools/list",
	}

	httpResponse := service.HandleRequest(context.Background(), request)

	// Verify response
	assert.Nil(t, httpResponse.JSONRPCResponse.Error)
	assert.NotNil(t, httpResponse.JSONRPCResponse.Result)
	assert.Equal(t, 200, httpResponse.StatusCode)

	// Parse result
	resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
	var result ListToolsResult
	err := json.Unmarshal(resultJSON, &result)
	require.NoError(t, err)

	require.Len(t, result.Tools, 2)
	assert.Equal(t, "test_tool1", result.Tools[0].Name)
	assert.Equal(t, "test_tool2", result.Tools[1].Name)
}

func TestService_NotInitialized(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	registry := NewHandlerRegistry()
	service := NewService(logger, registry)

	// Try to list resources without initializing
	request := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`1`),
		Method:  "resources/list",
	}

	httpResponse := service.HandleRequest(context.Background(), request)

	// Should return successful response (no initialization check in current implementation)
	assert.Nil(t, httpResponse.JSONRPCResponse.Error)
	assert.NotNil(t, httpResponse.JSONRPCResponse.Result)
	assert.Equal(t, 200, httpResponse.StatusCode)
}

func TestService_CallTool(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	registry := NewHandlerRegistry()

	// Register mock tool
	expectedResult := &CallToolResult{
		Content: []ToolResultContent{
			{
				Type: "text",
				Text: "Tool executed successfully",
			},
		},
		IsError: false,
	}

	registry.RegisterTool(&mockTool{
		name:        "test_tool",
		description: "Test tool",
		schema:      JSONSchema{Type: "object"},
		result:      expectedResult,
		err:         nil,
	})

	service := NewService(logger, registry)

	// Initialize first
	initParams := InitializeParams{
		ProtocolVersion: "2024-11-05",
		Capabilities:    ClientCapability{},
		ClientInfo: ClientInfo{
			Name:    "test-client",
			Version: "1.0.0",
		},
	}
	initParamsJSON, _ := json.Marshal(initParams)
	service.HandleRequest(context.Background(), JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`1`),
		Method:  "initialize",
		Params:  initParamsJSON,
	})

	// Call tool
	callParams := CallToolParams{
		Name:      "test_tool",
		Arguments: json.RawMessage(`{"param": "value"}`),
	}
	callParamsJSON, _ := json.Marshal(callParams)

	request := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`2`),
		Method:  "tools/call",
		Params:  callParamsJSON,
	}

	httpResponse := service.HandleRequest(context.Background(), request)

	// Verify response
	assert.Nil(t, httpResponse.JSONRPCResponse.Error)
	assert.NotNil(t, httpResponse.JSONRPCResponse.Result)
	assert.Equal(t, 200, httpResponse.StatusCode)

	// Parse result
	resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
	var result CallToolResult
	err := json.Unmarshal(resultJSON, &result)
	require.NoError(t, err)

	assert.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.Equal(t, "Tool executed successfully", result.Content[0].Text)
	assert.False(t, result.IsError)
}

func TestService_CallToolError(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	registry := NewHandlerRegistry()
	registry.RegisterTool(&mockTool{name: "failing", schema: JSONSchema{Type: "object"}, err: errors.New("boom")})
	service := NewService(logger, registry)

	params, _ := json.Marshal(CallToolParams{Name: "failing"})
	httpResponse := service.HandleRequest(context.Background(), JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`3`),
		Method:  "tools/call",
		Params:  params,
	})

	// A failing tool is reported inside the result, never as a JSON-RPC error.
	require.Nil(t, httpResponse.JSONRPCResponse.Error)
	result, ok := httpResponse.JSONRPCResponse.Result.(*CallToolResult)
	require.True(t, ok)
	assert.True(t, result.IsError)
	assert.Equal(t, "boom", result.Content[0].Text)

	params, _ = json.Marshal(CallToolParams{Name: "missing"})
	httpResponse = service.HandleRequest(context.Background(), JSONRPCRequest{JSONRPC: "2.0", ID: json.RawMessage(`4`), Method: "tools/call", Params: params})
	require.NotNil(t, httpResponse.JSONRPCResponse.Error)
	assert.Equal(t, InvalidParams, httpResponse.JSONRPCResponse.Error.Code)
}

func TestService_Prompts(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	registry := NewHandlerRegistry()
	registry.RegisterPrompt(&mockPrompt{
		name: "review",
		args: []PromptArgument{{Name: "month", Required: true}},
	})
	service := NewService(logger, registry)

	listResponse := service.HandleRequest(context.Background(), JSONRPCRequest{JSONRPC: "2.0", ID: json.RawMessage(`1`), Method: "prompts/list"})
	require.Nil(t, listResponse.JSONRPCResponse.Error)
	list, ok := listResponse.JSONRPCResponse.Result.(ListPromptsResult)
	require.True(t, ok)
	require.Len(t, list.Prompts, 1)
	assert.Equal(t, "review", list.Prompts[0].Name)

	params, _ := json.Marshal(GetPromptParams{Name: "review", Arguments: map[string]interface{}{"month": "2025-03"}})
	getResponse := service.HandleRequest(context.Background(), JSONRPCRequest{JSONRPC: "2.0", ID: json.RawMessage(`2`), Method: "prompts/get", Params: params})
	require.Nil(t, getResponse.JSONRPCResponse.Error)
	rendered, ok := getResponse.JSONRPCResponse.Result.(*GetPromptResult)
	require.True(t, ok)
	assert.Equal(t, "Review 2025-03", rendered.Messages[0].Content.Text)

	params, _ = json.Marshal(GetPromptParams{Name: "review"})
	missing := service.HandleRequest(context.Background(), JSONRPCRequest{JSONRPC: "2.0", ID: json.RawMessage(`3`), Method: "prompts/get", Params: params})
	require.NotNil(t, missing.JSONRPCResponse.Error)
	assert.Contains(t, missing.JSONRPCResponse.Error.Message, "month")
}

func TestService_UnknownMethod(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	service := NewService(logger, NewHandlerRegistry())

	httpResponse := service.HandleRequest(context.Background(), JSONRPCRequest{JSONRPC: "2.0", ID: json.RawMessage(`9`), Method: "sampling/createMessage"})
	require.NotNil(t, httpResponse.JSONRPCResponse.Error)
	assert.Equal(t, MethodNotFound, httpResponse.JSONRPCResponse.Error.Code)
}
