package tools

import (
	"context"
	"errors"
	"sync"

	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/domain/events"
	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

type budgetWrite struct {
	Month      string
	CategoryID string
	Budgeted   money.Milliunits
}

// fakeRepo serves fixed snapshots and records writes.
type fakeRepo struct {
	mu sync.Mutex

	accounts     []ynab.Account
	groups       []ynab.CategoryGroup
	transactions []ynab.Transaction
	scheduled    []ynab.ScheduledTransaction
	payees       []ynab.Payee
	months       map[string]*ynab.MonthDetail
	importIDs    []string

	// err, when set, fails every read.
	err error

	queries        []ynab.TransactionQuery
	created        []ynab.NewTransaction
	createdSched   []ynab.NewScheduledTransaction
	updates        map[string]ynab.Payload
	bulk           []ynab.Payload
	deleted        []string
	budgetWrites   []budgetWrite
	categoryWrites map[string]ynab.Payload
	payeeRenames   map[string]string
	newAccounts    []ynab.NewAccount
}

var _ ynab.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		months:         make(map[string]*ynab.MonthDetail),
		updates:        make(map[string]ynab.Payload),
		categoryWrites: make(map[string]ynab.Payload),
		payeeRenames:   make(map[string]string),
	}
}

func (f *fakeRepo) BudgetID() string { return "budget-1" }

func (f *fakeRepo) GetBudgets(context.Context) ([]ynab.Budget, error) {
	return []ynab.Budget{{ID: "budget-1", Name: "Household"}}, f.err
}

func (f *fakeRepo) GetBudgetSettings(context.Context) (*ynab.BudgetSettings, error) {
	return &ynab.BudgetSettings{}, f.err
}

func (f *fakeRepo) GetUser(context.Context) (*ynab.User, error) {
	return &ynab.User{ID: "user-1"}, f.err
}

func (f *fakeRepo) GetAccounts(context.Context) ([]ynab.Account, error) {
	return f.accounts, f.err
}

func (f *fakeRepo) CreateAccount(_ context.Context, a ynab.NewAccount) (*ynab.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newAccounts = append(f.newAccounts, a)
	return &ynab.Account{ID: "acc-new", Name: a.Name, Type: a.Type, Balance: a.Balance, OnBudget: true}, nil
}

func (f *fakeRepo) GetCategories(context.Context) ([]ynab.CategoryGroup, error) {
	return f.groups, f.err
}

func (f *fakeRepo) GetCategory(_ context.Context, id string) (*ynab.Category, error) {
	for _, g := range f.groups {
		for _, c := range g.Categories {
			if c.ID == id {
				return &c, nil
			}
		}
	}
	return nil, errors.New("category not found")
}

func (f *fakeRepo) UpdateCategory(_ context.Context, id string, payload ynab.Payload) (*ynab.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryWrites[id] = payload
	return &ynab.Category{ID: id}, nil
}

func (f *fakeRepo) UpdateCategoryBudget(_ context.Context, month, id string, budgeted money.Milliunits) (*ynab.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.budgetWrites = append(f.budgetWrites, budgetWrite{Month: month, CategoryID: id, Budgeted: budgeted})
	return &ynab.Category{ID: id, Budgeted: budgeted}, nil
}

func (f *fakeRepo) GetTransactions(_ context.Context, q ynab.TransactionQuery) ([]ynab.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.transactions, f.err
}

func (f *fakeRepo) GetTransaction(_ context.Context, id string) (*ynab.Transaction, error) {
	for _, t := range f.transactions {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, errors.New("transaction not found")
}

func (f *fakeRepo) CreateTransaction(_ context.Context, t ynab.NewTransaction) (*ynab.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, t)
	return &ynab.Transaction{
		ID:          "txn-new",
		Date:        t.Date,
		Amount:      t.Amount,
		AccountID:   t.AccountID,
		AccountName: "Checking",
		PayeeName:   &t.PayeeName,
	}, nil
}

func (f *fakeRepo) UpdateTransaction(_ context.Context, id string, payload ynab.Payload) (*ynab.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = payload
	return &ynab.Transaction{ID: id}, nil
}

func (f *fakeRepo) UpdateTransactions(_ context.Context, payloads []ynab.Payload) ([]ynab.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bulk = append(f.bulk, payloads...)
	out := make([]ynab.Transaction, len(payloads))
	for i, p := range payloads {
		out[i].ID, _ = p["id"].(string)
	}
	return out, nil
}

func (f *fakeRepo) DeleteTransaction(_ context.Context, id string) (*ynab.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return &ynab.Transaction{ID: id, Deleted: true}, nil
}

func (f *fakeRepo) ImportTransactions(context.Context) ([]string, error) {
	return f.importIDs, f.err
}

func (f *fakeRepo) GetPayees(context.Context) ([]ynab.Payee, error) {
	return f.payees, f.err
}

func (f *fakeRepo) UpdatePayee(_ context.Context, id, name string) (*ynab.Payee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payeeRenames[id] = name
	return &ynab.Payee{ID: id, Name: name}, nil
}

func (f *fakeRepo) GetPayeeLocations(context.Context) ([]ynab.PayeeLocation, error) {
	return nil, f.err
}

func (f *fakeRepo) GetMonths(context.Context) ([]ynab.MonthSummary, error) {
	var out []ynab.MonthSummary
	for _, m := range f.months {
		out = append(out, m.MonthSummary)
	}
	return out, f.err
}

func (f *fakeRepo) GetMonth(_ context.Context, month string) (*ynab.MonthDetail, error) {
	if m, ok := f.months[month]; ok {
		return m, nil
	}
	return &ynab.MonthDetail{MonthSummary: ynab.MonthSummary{Month: month}}, f.err
}

func (f *fakeRepo) GetScheduledTransactions(context.Context) ([]ynab.ScheduledTransaction, error) {
	return f.scheduled, f.err
}

func (f *fakeRepo) GetScheduledTransaction(_ context.Context, id string) (*ynab.ScheduledTransaction, error) {
	for _, st := range f.scheduled {
		if st.ID == id {
			return &st, nil
		}
	}
	return nil, errors.New("scheduled transaction not found")
}

func (f *fakeRepo) CreateScheduledTransaction(_ context.Context, st ynab.NewScheduledTransaction) (*ynab.ScheduledTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdSched = append(f.createdSched, st)
	return &ynab.ScheduledTransaction{
		ID:        "st-new",
		DateFirst: st.Date,
		DateNext:  st.Date,
		Frequency: st.Frequency,
		Amount:    st.Amount,
	}, nil
}

func (f *fakeRepo) UpdateScheduledTransaction(_ context.Context, id string, payload ynab.Payload) (*ynab.ScheduledTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = payload
	return &ynab.ScheduledTransaction{ID: id}, nil
}

func (f *fakeRepo) DeleteScheduledTransaction(_ context.Context, id string) (*ynab.ScheduledTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return &ynab.ScheduledTransaction{ID: id, Deleted: true}, nil
}

// memoryMappings keeps saved category mappings in memory.
type memoryMappings struct {
	mu    sync.Mutex
	saved []categorizer.Mapping
	saves int
}

func (m *memoryMappings) Load(context.Context) ([]categorizer.Mapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]categorizer.Mapping(nil), m.saved...), nil
}

func (m *memoryMappings) Save(_ context.Context, mappings []categorizer.Mapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append([]categorizer.Mapping(nil), mappings...)
	m.saves++
	return nil
}

// recordingPublisher keeps published events, or fails when err is set.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ChangeEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
