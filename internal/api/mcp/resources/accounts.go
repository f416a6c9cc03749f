// Package resources exposes read-only budget snapshots as MCP resources.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hirosato/ynab-mcp/internal/domain/mcp"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

const jsonMime = "application/json"

type AccountLister interface {
	GetAccounts(ctx context.Context) ([]ynab.Account, error)
}

// AccountsResource serves the open accounts of the active budget.
type AccountsResource struct {
	repo AccountLister
}

func NewAccountsResource(repo AccountLister) *AccountsResource {
	return &AccountsResource{repo: repo}
}

func (r *AccountsResource) GetURI() string {
	return "ynab://accounts"
}

func (r *AccountsResource) GetName() string {
	return "Accounts"
}

func (r *AccountsResource) GetDescription() string {
	return "Open accounts in the active budget with balances in milliunits"
}

func (r *AccountsResource) GetMimeType() string {
	return jsonMime
}

func (r *AccountsResource) Read(ctx context.Context) (*mcp.ReadResourceResult, error) {
	accounts, err := r.repo.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	open := make([]ynab.Account, 0, len(accounts))
	for _, a := range accounts {
		if !a.Closed && !a.Deleted {
			open = append(open, a)
		}
	}

	data, err := json.MarshalIndent(open, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal accounts: %w", err)
	}
	return textResult(r.GetURI(), string(data)), nil
}

func textResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []mcp.ResourceContent{
			{URI: uri, MimeType: jsonMime, Text: text},
		},
	}
}
