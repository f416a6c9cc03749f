package ynabapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

func (c *Client) GetCategories(ctx context.Context) ([]ynab.CategoryGroup, error) {
	return c.cache.categories.sync(ctx, func(ctx context.Context, since *int64) ([]ynab.CategoryGroup, *int64, error) {
		var data struct {
			CategoryGroups  []ynab.CategoryGroup `json:"category_groups"`
			ServerKnowledge *int64               `json:"server_knowledge"`
		}
		err := c.do(ctx, http.MethodGet, c.budgetPath("/categories"), knowledgeQuery(since), nil, &data)
		return data.CategoryGroups, data.ServerKnowledge, err
	})
}

func (c *Client) GetCategory(ctx context.Context, categoryID string) (*ynab.Category, error) {
	var data struct {
		Category ynab.Category `json:"category"`
	}
	if err := c.do(ctx, http.MethodGet, c.budgetPath("/categories/%s", url.PathEscape(categoryID)), nil, nil, &data); err != nil {
		return nil, err
	}
	return &data.Category, nil
}

// UpdateCategory patches name, note or goal fields. Nil payload values are
// sent as JSON null.
func (c *Client) UpdateCategory(ctx context.Context, categoryID string, payload ynab.Payload) (*ynab.Category, error) {
	body := map[string]any{"category": payload}
	var data struct {
		Category ynab.Category `json:"category"`
	}
	if err := c.do(ctx, http.MethodPatch, c.budgetPath("/categories/%s", url.PathEscape(categoryID)), nil, body, &data); err != nil {
		return nil, err
	}
	return &data.Category, nil
}

func (c *Client) UpdateCategoryBudget(ctx context.Context, month, categoryID string, budgeted money.Milliunits) (*ynab.Category, error) {
	body := map[string]any{"category": map[string]any{"budgeted": budgeted}}
	var data struct {
		Category ynab.Category `json:"category"`
	}
	path := c.budgetPath("/months/%s/categories/%s", url.PathEscape(month), url.PathEscape(categoryID))
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &data); err != nil {
		return nil, err
	}
	return &data.Category, nil
}
