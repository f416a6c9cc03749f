package resources

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab/ynabtest"
)

type stubAccounts struct {
	accounts []ynab.Account
	err      error
}

func (s stubAccounts) GetAccounts(context.Context) ([]ynab.Account, error) {
	return s.accounts, s.err
}

type stubMappings []categorizer.Mapping

func (s stubMappings) Mappings() []categorizer.Mapping { return s }

func TestAccountsResource(t *testing.T) {
	closed := ynabtest.Account("Old Card", ynab.AccountTypeCreditCard, 0)
	closed.Closed = true
	r := NewAccountsResource(stubAccounts{accounts: []ynab.Account{
		ynabtest.Account("Checking", ynab.AccountTypeChecking, 125000),
		closed,
	}})

	res, err := r.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "ynab://accounts", res.Contents[0].URI)
	assert.Equal(t, "application/json", res.Contents[0].MimeType)

	var accounts []ynab.Account
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, "Checking", accounts[0].Name)
	assert.EqualValues(t, 125000, accounts[0].Balance)

	_, err = NewAccountsResource(stubAccounts{err: errors.New("offline")}).Read(context.Background())
	assert.ErrorContains(t, err, "offline")
}

func TestMappingsResource_KeepsOrder(t *testing.T) {
	r := NewMappingsResource(stubMappings{
		{Payee: "zaxby's", CategoryID: "cat-dining", CategoryName: "Dining Out", Count: 3},
		{Payee: "aldi", CategoryID: "cat-groceries", CategoryName: "Groceries", Count: 1},
	})

	res, err := r.Read(context.Background())
	require.NoError(t, err)

	var views []mappingView
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &views))
	assert.Equal(t, []mappingView{
		{Payee: "zaxby's", CategoryID: "cat-dining", CategoryName: "Dining Out", Count: 3},
		{Payee: "aldi", CategoryID: "cat-groceries", CategoryName: "Groceries", Count: 1},
	}, views)
}
