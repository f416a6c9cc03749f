package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/domain/mcp"
)

// MappingsURI addresses the learned mappings.
const MappingsURI = "ynab://categorizer/mappings"

type MappingLister interface {
	Mappings() []categorizer.Mapping
}

// MappingsResource serves the learned payee mappings in insertion order.
type MappingsResource struct {
	categorizer MappingLister
}

func NewMappingsResource(c MappingLister) *MappingsResource {
	return &MappingsResource{categorizer: c}
}

type mappingView struct {
	Payee        string `json:"payee"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int    `json:"count"`
}

func (r *MappingsResource) GetURI() string {
	return MappingsURI
}

func (r *MappingsResource) GetName() string {
	return "Learned Category Mappings"
}

func (r *MappingsResource) GetDescription() string {
	return "Payee to category mappings used for auto-categorization"
}

func (r *MappingsResource) GetMimeType() string {
	return jsonMime
}

func (r *MappingsResource) Read(ctx context.Context) (*mcp.ReadResourceResult, error) {
	mappings := r.categorizer.Mappings()
	views := make([]mappingView, len(mappings))
	for i, m := range mappings {
		views[i] = mappingView{Payee: m.Payee, CategoryID: m.CategoryID, CategoryName: m.CategoryName, Count: m.Count}
	}

	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mappings: %w", err)
	}
	return textResult(r.GetURI(), string(data)), nil
}
