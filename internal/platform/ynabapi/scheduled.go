package ynabapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

type scheduledResponse struct {
	ScheduledTransaction ynab.ScheduledTransaction `json:"scheduled_transaction"`
}

func (c *Client) GetScheduledTransactions(ctx context.Context) ([]ynab.ScheduledTransaction, error) {
	var data struct {
		ScheduledTransactions []ynab.ScheduledTransaction `json:"scheduled_transactions"`
	}
	if err := c.do(ctx, http.MethodGet, c.budgetPath("/scheduled_transactions"), nil, nil, &data); err != nil {
		return nil, err
	}
	return data.ScheduledTransactions, nil
}

func (c *Client) GetScheduledTransaction(ctx context.Context, id string) (*ynab.ScheduledTransaction, error) {
	var data scheduledResponse
	if err := c.do(ctx, http.MethodGet, c.budgetPath("/scheduled_transactions/%s", url.PathEscape(id)), nil, nil, &data); err != nil {
		return nil, err
	}
	return &data.ScheduledTransaction, nil
}

func (c *Client) CreateScheduledTransaction(ctx context.Context, st ynab.NewScheduledTransaction) (*ynab.ScheduledTransaction, error) {
	body := map[string]any{"scheduled_transaction": st}
	var data scheduledResponse
	if err := c.do(ctx, http.MethodPost, c.budgetPath("/scheduled_transactions"), nil, body, &data); err != nil {
		return nil, err
	}
	return &data.ScheduledTransaction, nil
}

// UpdateScheduledTransaction replaces the record. The server only accepts
// full records, so the current one is fetched and overlaid with payload.
func (c *Client) UpdateScheduledTransaction(ctx context.Context, id string, payload ynab.Payload) (*ynab.ScheduledTransaction, error) {
	current, err := c.GetScheduledTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	record := ynab.Payload{
		"account_id":  current.AccountID,
		"date":        current.DateNext,
		"amount":      int64(current.Amount),
		"frequency":   string(current.Frequency),
		"payee_id":    current.PayeeID,
		"category_id": current.CategoryID,
		"memo":        current.Memo,
		"flag_color":  current.FlagColor,
	}
	for k, v := range payload {
		record[k] = v
	}
	// A payee name replaces the payee id.
	if _, ok := payload["payee_name"]; ok {
		delete(record, "payee_id")
	}

	body := map[string]any{"scheduled_transaction": record}
	var data scheduledResponse
	if err := c.do(ctx, http.MethodPut, c.budgetPath("/scheduled_transactions/%s", url.PathEscape(id)), nil, body, &data); err != nil {
		return nil, err
	}
	return &data.ScheduledTransaction, nil
}

func (c *Client) DeleteScheduledTransaction(ctx context.Context, id string) (*ynab.ScheduledTransaction, error) {
	var data scheduledResponse
	if err := c.do(ctx, http.MethodDelete, c.budgetPath("/scheduled_transactions/%s", url.PathEscape(id)), nil, nil, &data); err != nil {
		return nil, err
	}
	return &data.ScheduledTransaction, nil
}
