package events

import (
	"context"
	"testing"
	"time"

	ulid "github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	e := New(TransactionCreated, "budget-1", "txn-1", "HEB $45.00")

	id, err := ulid.ParseStrict(e.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, e.OccurredAt, ulid.Time(id.Time()), time.Millisecond)
	assert.True(t, e.OccurredAt.After(before))
	assert.Equal(t, TransactionCreated, e.Type)
	assert.Equal(t, "budget-1", e.BudgetID)

	other := New(TransactionCreated, "budget-1", "txn-1", "")
	assert.NotEqual(t, e.ID, other.ID)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), New(PayeeUpdated, "b", "p", "")))
	assert.NoError(t, p.Close())
}
