package ynabapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

func knowledgeQuery(since *int64) url.Values {
	if since == nil {
		return nil
	}
	return url.Values{"last_knowledge_of_server": []string{strconv.FormatInt(*since, 10)}}
}

func (c *Client) GetBudgets(ctx context.Context) ([]ynab.Budget, error) {
	var data struct {
		Budgets []ynab.Budget `json:"budgets"`
	}
	if err := c.do(ctx, http.MethodGet, "/budgets", nil, nil, &data); err != nil {
		return nil, err
	}
	return data.Budgets, nil
}

func (c *Client) GetBudgetSettings(ctx context.Context) (*ynab.BudgetSettings, error) {
	var data struct {
		Settings ynab.BudgetSettings `json:"settings"`
	}
	if err := c.do(ctx, http.MethodGet, c.budgetPath("/settings"), nil, nil, &data); err != nil {
		return nil, err
	}
	return &data.Settings, nil
}

func (c *Client) GetUser(ctx context.Context) (*ynab.User, error) {
	var data struct {
		User ynab.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

func (c *Client) GetAccounts(ctx context.Context) ([]ynab.Account, error) {
	return c.cache.accounts.sync(ctx,
		func(a ynab.Account) string { return a.ID },
		func(a ynab.Account) bool { return a.Deleted },
		func(ctx context.Context, since *int64) ([]ynab.Account, *int64, error) {
			var data struct {
				Accounts        []ynab.Account `json:"accounts"`
				ServerKnowledge *int64         `json:"server_knowledge"`
			}
			err := c.do(ctx, http.MethodGet, c.budgetPath("/accounts"), knowledgeQuery(since), nil, &data)
			return data.Accounts, data.ServerKnowledge, err
		})
}

func (c *Client) CreateAccount(ctx context.Context, account ynab.NewAccount) (*ynab.Account, error) {
	body := map[string]any{"account": account}
	var data struct {
		Account ynab.Account `json:"account"`
	}
	if err := c.do(ctx, http.MethodPost, c.budgetPath("/accounts"), nil, body, &data); err != nil {
		return nil, err
	}
	return &data.Account, nil
}

func (c *Client) GetPayees(ctx context.Context) ([]ynab.Payee, error) {
	return c.cache.payees.sync(ctx,
		func(p ynab.Payee) string { return p.ID },
		func(p ynab.Payee) bool { return p.Deleted },
		func(ctx context.Context, since *int64) ([]ynab.Payee, *int64, error) {
			var data struct {
				Payees          []ynab.Payee `json:"payees"`
				ServerKnowledge *int64       `json:"server_knowledge"`
			}
			err := c.do(ctx, http.MethodGet, c.budgetPath("/payees"), knowledgeQuery(since), nil, &data)
			return data.Payees, data.ServerKnowledge, err
		})
}

func (c *Client) UpdatePayee(ctx context.Context, payeeID, name string) (*ynab.Payee, error) {
	body := map[string]any{"payee": map[string]string{"name": name}}
	var data struct {
		Payee ynab.Payee `json:"payee"`
	}
	if err := c.do(ctx, http.MethodPatch, c.budgetPath("/payees/%s", url.PathEscape(payeeID)), nil, body, &data); err != nil {
		return nil, err
	}
	return &data.Payee, nil
}

func (c *Client) GetPayeeLocations(ctx context.Context) ([]ynab.PayeeLocation, error) {
	var data struct {
		PayeeLocations []ynab.PayeeLocation `json:"payee_locations"`
	}
	if err := c.do(ctx, http.MethodGet, c.budgetPath("/payee_locations"), nil, nil, &data); err != nil {
		return nil, err
	}
	return data.PayeeLocations, nil
}

func (c *Client) GetMonths(ctx context.Context) ([]ynab.MonthSummary, error) {
	return c.cache.months.sync(ctx,
		func(m ynab.MonthSummary) string { return m.Month },
		func(m ynab.MonthSummary) bool { return m.Deleted },
		func(ctx context.Context, since *int64) ([]ynab.MonthSummary, *int64, error) {
			var data struct {
				Months          []ynab.MonthSummary `json:"months"`
				ServerKnowledge *int64              `json:"server_knowledge"`
			}
			err := c.do(ctx, http.MethodGet, c.budgetPath("/months"), knowledgeQuery(since), nil, &data)
			return data.Months, data.ServerKnowledge, err
		})
}

func (c *Client) GetMonth(ctx context.Context, month string) (*ynab.MonthDetail, error) {
	var data struct {
		Month ynab.MonthDetail `json:"month"`
	}
	if err := c.do(ctx, http.MethodGet, c.budgetPath("/months/%s", url.PathEscape(month)), nil, nil, &data); err != nil {
		return nil, err
	}
	return &data.Month, nil
}
