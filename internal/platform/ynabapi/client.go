// Package ynabapi talks to the YNAB REST API. Whole-collection reads go
// through a delta-sync cache so repeat calls only transfer changes.
package ynabapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/hirosato/ynab-mcp/internal/domain/errors"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

const (
	DefaultBaseURL  = "https://api.ynab.com/v1"
	DefaultTimeout  = 30 * time.Second
	DefaultBudgetID = "default"
)

// Config holds the connection settings for a Client.
type Config struct {
	Token    string
	BaseURL  string
	BudgetID string
	Timeout  time.Duration
}

// Client implements ynab.Repository against the remote service.
type Client struct {
	http     *http.Client
	baseURL  string
	token    string
	budgetID string
	logger   *slog.Logger
	cache    *deltaCache
}

var _ ynab.Repository = (*Client)(nil)

// New creates a client. Empty config fields take their defaults.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.BudgetID == "" {
		cfg.BudgetID = DefaultBudgetID
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		http:     &http.Client{Timeout: cfg.Timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		budgetID: cfg.BudgetID,
		logger:   logger,
		cache:    newDeltaCache(),
	}
}

// BudgetID returns the budget every budget-scoped call targets.
func (c *Client) BudgetID() string {
	return c.budgetID
}

// ResolveDefaultBudget replaces the "default" budget id with the first
// budget on the account. It must run before the client is shared.
func (c *Client) ResolveDefaultBudget(ctx context.Context) (string, error) {
	if c.budgetID != DefaultBudgetID {
		return c.budgetID, nil
	}
	budgets, err := c.GetBudgets(ctx)
	if err != nil {
		return "", err
	}
	if len(budgets) > 0 {
		c.budgetID = budgets[0].ID
		c.logger.Info("Resolved default budget", "budget_id", c.budgetID, "name", budgets[0].Name)
	}
	return c.budgetID, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) budgetPath(format string, args ...any) string {
	return "/budgets/" + url.PathEscape(c.budgetID) + fmt.Sprintf(format, args...)
}

type errorEnvelope struct {
	Error struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Detail string `json:"detail"`
	} `json:"error"`
}

// do sends one request and decodes the "data" envelope into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			c.logger.Warn("YNAB request timed out", "method", method, "path", path)
			return apperrors.NewTimeoutError()
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	c.logger.Debug("YNAB request", "method", method, "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) *apperrors.APIError {
	apiErr := &apperrors.APIError{
		StatusCode: status,
		ID:         strconv.Itoa(status),
		Name:       "unknown_error",
		Detail:     http.StatusText(status),
	}
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Error.ID != "" {
			apiErr.ID = env.Error.ID
		}
		if env.Error.Name != "" {
			apiErr.Name = env.Error.Name
		}
		if env.Error.Detail != "" {
			apiErr.Detail = env.Error.Detail
		}
	} else if len(raw) > 0 {
		apiErr.Detail = strings.TrimSpace(string(raw))
	}
	return apiErr
}
