// Package events describes ledger changes made through the tool server.
package events

import (
	"context"
	"crypto/rand"
	"time"

	ulid "github.com/oklog/ulid/v2"
)

// Type names what changed.
type Type string

const (
	TransactionCreated          Type = "transaction.created"
	TransactionUpdated          Type = "transaction.updated"
	TransactionDeleted          Type = "transaction.deleted"
	TransactionsImported        Type = "transactions.imported"
	CategoryBudgeted            Type = "category.budgeted"
	CategoryUpdated             Type = "category.updated"
	PayeeUpdated                Type = "payee.updated"
	AccountCreated              Type = "account.created"
	ScheduledTransactionCreated Type = "scheduled_transaction.created"
	ScheduledTransactionUpdated Type = "scheduled_transaction.updated"
	ScheduledTransactionDeleted Type = "scheduled_transaction.deleted"
)

// ChangeEvent is emitted after a successful write.
type ChangeEvent struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	BudgetID   string    `json:"budget_id"`
	EntityID   string    `json:"entity_id,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New stamps an event with a fresh ULID and the current time.
func New(eventType Type, budgetID, entityID, summary string) ChangeEvent {
	now := time.Now().UTC()
	return ChangeEvent{
		ID:         ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Type:       eventType,
		BudgetID:   budgetID,
		EntityID:   entityID,
		Summary:    summary,
		OccurredAt: now,
	}
}

// Publisher delivers change events.
type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
	Close() error
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ChangeEvent) error { return nil }
func (NopPublisher) Close() error                              { return nil }
