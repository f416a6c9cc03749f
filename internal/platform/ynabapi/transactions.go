package ynabapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

type transactionResponse struct {
	Transaction ynab.Transaction `json:"transaction"`
}

// GetTransactions serves unfiltered listings from the delta cache. Scoped
// queries always hit the server and leave the cache alone.
func (c *Client) GetTransactions(ctx context.Context, q ynab.TransactionQuery) ([]ynab.Transaction, error) {
	if !q.Scoped() {
		return c.cache.transactions.sync(ctx,
			func(t ynab.Transaction) string { return t.ID },
			func(t ynab.Transaction) bool { return t.Deleted },
			func(ctx context.Context, since *int64) ([]ynab.Transaction, *int64, error) {
				var data struct {
					Transactions    []ynab.Transaction `json:"transactions"`
					ServerKnowledge *int64             `json:"server_knowledge"`
				}
				err := c.do(ctx, http.MethodGet, c.budgetPath("/transactions"), knowledgeQuery(since), nil, &data)
				return data.Transactions, data.ServerKnowledge, err
			})
	}

	path := c.budgetPath("/transactions")
	switch {
	case q.AccountID != "":
		path = c.budgetPath("/accounts/%s/transactions", url.PathEscape(q.AccountID))
	case q.CategoryID != "":
		path = c.budgetPath("/categories/%s/transactions", url.PathEscape(q.CategoryID))
	case q.PayeeID != "":
		path = c.budgetPath("/payees/%s/transactions", url.PathEscape(q.PayeeID))
	}
	var query url.Values
	if q.SinceDate != "" {
		query = url.Values{"since_date": []string{q.SinceDate}}
	}

	var data struct {
		Transactions []ynab.Transaction `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &data); err != nil {
		return nil, err
	}
	return data.Transactions, nil
}

func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*ynab.Transaction, error) {
	var data transactionResponse
	if err := c.do(ctx, http.MethodGet, c.budgetPath("/transactions/%s", url.PathEscape(transactionID)), nil, nil, &data); err != nil {
		return nil, err
	}
	return &data.Transaction, nil
}

func (c *Client) CreateTransaction(ctx context.Context, txn ynab.NewTransaction) (*ynab.Transaction, error) {
	body := map[string]any{"transaction": txn}
	var data transactionResponse
	if err := c.do(ctx, http.MethodPost, c.budgetPath("/transactions"), nil, body, &data); err != nil {
		return nil, err
	}
	return &data.Transaction, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, transactionID string, payload ynab.Payload) (*ynab.Transaction, error) {
	body := map[string]any{"transaction": payload}
	var data transactionResponse
	if err := c.do(ctx, http.MethodPatch, c.budgetPath("/transactions/%s", url.PathEscape(transactionID)), nil, body, &data); err != nil {
		return nil, err
	}
	return &data.Transaction, nil
}

// UpdateTransactions patches many transactions at once. Each payload must
// carry an "id" key.
func (c *Client) UpdateTransactions(ctx context.Context, payloads []ynab.Payload) ([]ynab.Transaction, error) {
	for i, p := range payloads {
		if _, ok := p["id"]; !ok {
			return nil, fmt.Errorf("payload %d has no id", i)
		}
	}
	body := map[string]any{"transactions": payloads}
	var data struct {
		Transactions []ynab.Transaction `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodPatch, c.budgetPath("/transactions"), nil, body, &data); err != nil {
		return nil, err
	}
	return data.Transactions, nil
}

// DeleteTransaction removes the transaction and evicts it from the cache.
func (c *Client) DeleteTransaction(ctx context.Context, transactionID string) (*ynab.Transaction, error) {
	var data transactionResponse
	if err := c.do(ctx, http.MethodDelete, c.budgetPath("/transactions/%s", url.PathEscape(transactionID)), nil, nil, &data); err != nil {
		return nil, err
	}
	c.cache.transactions.evict(transactionID)
	return &data.Transaction, nil
}

// ImportTransactions triggers a linked-account import and returns the new ids.
func (c *Client) ImportTransactions(ctx context.Context) ([]string, error) {
	var data struct {
		TransactionIDs []string `json:"transaction_ids"`
	}
	if err := c.do(ctx, http.MethodPost, c.budgetPath("/transactions/import"), nil, nil, &data); err != nil {
		return nil, err
	}
	return data.TransactionIDs, nil
}
