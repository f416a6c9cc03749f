// Package tools exposes budget operations as MCP tools. Every handler
// returns text: failures are converted by errorText and flagged isError.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/domain/events"
	"github.com/hirosato/ynab-mcp/internal/domain/mcp"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
	"github.com/hirosato/ynab-mcp/pkg/validator"
)

// Deps are the collaborators shared by every tool.
type Deps struct {
	Repo        ynab.Repository
	Categorizer *categorizer.Service
	Publisher   events.Publisher
	Logger      *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Toolset holds the dependencies and implements each tool as a method.
type Toolset struct {
	repo        ynab.Repository
	categorizer *categorizer.Service
	publisher   events.Publisher
	logger      *slog.Logger
	now         func() time.Time
	validate    validator.Validator
}

func NewToolset(d Deps) *Toolset {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Publisher == nil {
		d.Publisher = events.NopPublisher{}
	}
	return &Toolset{
		repo:        d.Repo,
		categorizer: d.Categorizer,
		publisher:   d.Publisher,
		logger:      d.Logger,
		now:         d.Now,
		validate:    validator.New(),
	}
}

type mcpTool = mcp.ToolHandler

// tool adapts a typed run function to mcp.ToolHandler.
type tool[A any] struct {
	set         *Toolset
	name        string
	description string
	schema      mcp.JSONSchema
	run         func(ctx context.Context, args A) (string, error)
}

func newTool[A any](set *Toolset, name, description string, schema mcp.JSONSchema, run func(context.Context, A) (string, error)) *tool[A] {
	return &tool[A]{set: set, name: name, description: description, schema: schema, run: run}
}

func (t *tool[A]) GetName() string                { return t.name }
func (t *tool[A]) GetDescription() string         { return t.description }
func (t *tool[A]) GetInputSchema() mcp.JSONSchema { return t.schema }

func (t *tool[A]) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args A
	if len(arguments) > 0 && string(arguments) != "null" {
		if err := json.Unmarshal(arguments, &args); err != nil {
			return mcp.ErrorResult(fmt.Sprintf("Error parsing arguments: %v", err)), nil
		}
	}
	if err := t.set.validate.Validate(args); err != nil {
		return mcp.ErrorResult(t.set.errorText(t.name, err)), nil
	}

	text, err := t.run(ctx, args)
	if err != nil {
		return mcp.ErrorResult(t.set.errorText(t.name, err)), nil
	}
	return mcp.TextResult(text), nil
}

// noArgs is the argument type of tools without parameters.
type noArgs struct{}

// publish emits a change event. Failures are logged, never returned.
func (s *Toolset) publish(ctx context.Context, eventType events.Type, entityID, summary string) {
	evt := events.New(eventType, s.repo.BudgetID(), entityID, summary)
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("Failed to publish change event", "type", eventType, "entity_id", entityID, "error", err)
	}
}

func (s *Toolset) today() time.Time {
	return s.now()
}

func (s *Toolset) todayISO() string {
	return s.now().Format("2006-01-02")
}

func (s *Toolset) currentMonth() string {
	return s.now().Format("2006-01") + "-01"
}

// All returns every tool, ready to register.
func (s *Toolset) All() []mcpTool {
	var out []mcpTool
	out = append(out, s.readTools()...)
	out = append(out, s.budgetTools()...)
	out = append(out, s.transactionTools()...)
	out = append(out, s.categorizerTools()...)
	out = append(out, s.metadataTools()...)
	out = append(out, s.scheduledTools()...)
	out = append(out, s.analysisTools()...)
	return out
}

// Register adds every tool to the registry.
func Register(registry *mcp.HandlerRegistry, d Deps) {
	for _, t := range NewToolset(d).All() {
		registry.RegisterTool(t)
	}
}

// Schema helpers.

func object(props map[string]interface{}, required ...string) mcp.JSONSchema {
	return mcp.JSONSchema{Type: "object", Properties: props, Required: required}
}

func str(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func date(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"pattern":     "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
	}
}

func month(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"pattern":     "^[0-9]{4}-[0-9]{2}(-[0-9]{2})?$",
	}
}

func number(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

func positive(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description, "exclusiveMinimum": 0}
}

func integer(description string, minimum, maximum, def int) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"minimum":     minimum,
		"maximum":     maximum,
		"default":     def,
	}
}

func boolean(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description}
}

func enum[T ~string](description string, values []T) map[string]interface{} {
	vals := make([]string, len(values))
	for i, v := range values {
		vals[i] = string(v)
	}
	return map[string]interface{}{"type": "string", "description": description, "enum": vals}
}

func ptrOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
