package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab/ynabtest"
)

func TestComputeTransactionUpdates(t *testing.T) {
	base := ynabtest.Transaction("HEB", -45000, "Groceries", "2025-01-15")
	withMemo := func(memo *string) ynab.Transaction {
		txn := base
		txn.Memo = memo
		return txn
	}

	tests := []struct {
		name    string
		txn     ynab.Transaction
		update  TransactionUpdate
		payload ynab.Payload
		changes []FieldChange
	}{
		{
			name:    "memo replaced",
			txn:     withMemo(ynabtest.Ptr("old memo")),
			update:  TransactionUpdate{Memo: ynabtest.Ptr("new memo")},
			payload: ynab.Payload{"memo": "new memo"},
			changes: []FieldChange{{"Memo", "old memo", "new memo"}},
		},
		{
			name:    "memo cleared with empty string",
			txn:     withMemo(ynabtest.Ptr("some memo")),
			update:  TransactionUpdate{Memo: ynabtest.Ptr("")},
			payload: ynab.Payload{"memo": ""},
			changes: []FieldChange{{"Memo", "some memo", "(cleared)"}},
		},
		{
			name:    "memo added",
			txn:     withMemo(nil),
			update:  TransactionUpdate{Memo: ynabtest.Ptr("new note")},
			payload: ynab.Payload{"memo": "new note"},
			changes: []FieldChange{{"Memo", "(none)", "new note"}},
		},
		{
			name:    "category",
			txn:     base,
			update:  TransactionUpdate{CategoryID: ynabtest.Ptr("cat-dining"), CategoryName: "Dining"},
			payload: ynab.Payload{"category_id": "cat-dining"},
			changes: []FieldChange{{"Category", "Groceries", "Dining"}},
		},
		{
			name:    "payee",
			txn:     base,
			update:  TransactionUpdate{PayeeName: ynabtest.Ptr("Costco")},
			payload: ynab.Payload{"payee_name": "Costco"},
			changes: []FieldChange{{"Payee", "HEB", "Costco"}},
		},
		{
			name:    "date",
			txn:     base,
			update:  TransactionUpdate{Date: ynabtest.Ptr("2025-01-20")},
			payload: ynab.Payload{"date": "2025-01-20"},
			changes: []FieldChange{{"Date", "2025-01-15", "2025-01-20"}},
		},
		{
			name:    "flag",
			txn:     base,
			update:  TransactionUpdate{FlagColor: ynabtest.Ptr(ynab.FlagRed)},
			payload: ynab.Payload{"flag_color": "red"},
			changes: []FieldChange{{"Flag", "(none)", "red"}},
		},
		{
			name:    "cleared",
			txn:     base,
			update:  TransactionUpdate{Cleared: ynabtest.Ptr(ynab.Cleared)},
			payload: ynab.Payload{"cleared": "cleared"},
			changes: []FieldChange{{"Cleared", "uncleared", "cleared"}},
		},
		{
			name:    "approved",
			txn:     base,
			update:  TransactionUpdate{Approved: ynabtest.Ptr(false)},
			payload: ynab.Payload{"approved": false},
			changes: []FieldChange{{"Approved", "true", "false"}},
		},
		{
			name:    "unchanged values are skipped",
			txn:     withMemo(ynabtest.Ptr("same memo")),
			update:  TransactionUpdate{Memo: ynabtest.Ptr("same memo"), PayeeName: ynabtest.Ptr("HEB")},
			payload: ynab.Payload{},
			changes: []FieldChange{},
		},
		{
			name:    "nothing supplied",
			txn:     base,
			payload: ynab.Payload{},
			changes: []FieldChange{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, changes := ComputeTransactionUpdates(tt.txn, tt.update)
			assert.Equal(t, tt.payload, payload)
			assert.Equal(t, tt.changes, changes)
		})
	}
}

func TestComputeTransactionUpdates_Amount(t *testing.T) {
	txn := ynabtest.Transaction("HEB", -45000, "Groceries", "2025-01-15")
	amount := money.Milliunits(-60000)

	payload, changes := ComputeTransactionUpdates(txn, TransactionUpdate{Amount: &amount})

	assert.Equal(t, ynab.Payload{"amount": int64(-60000)}, payload)
	require.Len(t, changes, 1)
	assert.Equal(t, "Amount", changes[0].FieldName)
	assert.Contains(t, changes[0].OldValue, "$45.00")
	assert.Contains(t, changes[0].NewValue, "$60.00")
}

func TestComputeTransactionUpdates_Multiple(t *testing.T) {
	txn := ynabtest.Transaction("HEB", -45000, "Groceries", "2025-01-15")
	payload, changes := ComputeTransactionUpdates(txn, TransactionUpdate{
		Memo:      ynabtest.Ptr("new note"),
		PayeeName: ynabtest.Ptr("Costco"),
		Date:      ynabtest.Ptr("2025-02-01"),
	})
	assert.Len(t, payload, 3)
	assert.Equal(t, []string{"Memo", "Payee", "Date"}, []string{changes[0].FieldName, changes[1].FieldName, changes[2].FieldName})
}

func TestComputeScheduledUpdates(t *testing.T) {
	st := ynabtest.Scheduled("Netflix", -15990, "Subscriptions", "2025-02-01")
	st.Memo = ynabtest.Ptr("old note")

	t.Run("date compares against next occurrence", func(t *testing.T) {
		payload, changes := ComputeScheduledUpdates(st, ScheduledUpdate{Date: ynabtest.Ptr("2025-03-01")})
		assert.Equal(t, ynab.Payload{"date": "2025-03-01"}, payload)
		assert.Equal(t, []FieldChange{{"Date", "2025-02-01", "2025-03-01"}}, changes)
	})

	t.Run("frequency", func(t *testing.T) {
		payload, changes := ComputeScheduledUpdates(st, ScheduledUpdate{Frequency: ynabtest.Ptr(ynab.FrequencyWeekly)})
		assert.Equal(t, ynab.Payload{"frequency": "weekly"}, payload)
		assert.Equal(t, []FieldChange{{"Frequency", "monthly", "weekly"}}, changes)
	})

	t.Run("amount", func(t *testing.T) {
		amount := OutflowAmount(20)
		payload, changes := ComputeScheduledUpdates(st, ScheduledUpdate{Amount: &amount})
		assert.Equal(t, ynab.Payload{"amount": int64(-20000)}, payload)
		assert.Contains(t, changes[0].OldValue, "$15.99")
		assert.Contains(t, changes[0].NewValue, "$20.00")
	})

	t.Run("payee category and memo", func(t *testing.T) {
		payload, changes := ComputeScheduledUpdates(st, ScheduledUpdate{
			PayeeName:    ynabtest.Ptr("Hulu"),
			CategoryID:   ynabtest.Ptr("cat-entertainment"),
			CategoryName: "Entertainment",
			Memo:         ynabtest.Ptr(""),
		})
		assert.Equal(t, ynab.Payload{"payee_name": "Hulu", "category_id": "cat-entertainment", "memo": ""}, payload)
		assert.Equal(t, []FieldChange{
			{"Memo", "old note", "(cleared)"},
			{"Category", "Subscriptions", "Entertainment"},
			{"Payee", "Netflix", "Hulu"},
		}, changes)
	})

	t.Run("nothing supplied", func(t *testing.T) {
		payload, changes := ComputeScheduledUpdates(st, ScheduledUpdate{})
		assert.Empty(t, payload)
		assert.Empty(t, changes)
	})
}

func TestComputeBulkTransactionUpdates(t *testing.T) {
	txns := []ynab.Transaction{
		ynabtest.Transaction("HEB", -45000, "Groceries", "2025-01-15"),
		ynabtest.Transaction("Costco", -120000, "Groceries", "2025-01-16"),
	}
	groups := []ynab.CategoryGroup{ynabtest.Group("Food", ynabtest.Category("Dining", 0, 0, 0))}

	t.Run("resolves category by name", func(t *testing.T) {
		payloads, errs := ComputeBulkTransactionUpdates(txns, groups, []BulkUpdate{{Description: "HEB", CategoryName: "Dining"}})
		assert.Empty(t, errs)
		require.Len(t, payloads, 1)
		assert.Equal(t, ynab.Payload{"id": "txn-heb-2025-01-15", "category_id": "cat-dining"}, payloads[0])
	})

	t.Run("collects unmatched descriptions", func(t *testing.T) {
		payloads, errs := ComputeBulkTransactionUpdates(txns, groups, []BulkUpdate{
			{Description: "Nonexistent", Memo: ynabtest.Ptr("test")},
			{Description: "Costco", CategoryName: "Travel"},
			{Description: "costco", Memo: ynabtest.Ptr("bulk")},
		})
		require.Len(t, errs, 2)
		assert.Contains(t, errs[0], "Nonexistent")
		assert.Contains(t, errs[1], "Costco")
		require.Len(t, payloads, 1)
		assert.Equal(t, "bulk", payloads[0]["memo"])
	})

	t.Run("later updates win per field", func(t *testing.T) {
		payloads, errs := ComputeBulkTransactionUpdates(txns, groups, []BulkUpdate{
			{Description: "HEB", Memo: ynabtest.Ptr("first"), FlagColor: ynabtest.Ptr(ynab.FlagRed)},
			{Description: "Costco", Approved: ynabtest.Ptr(false)},
			{Description: "HEB", Memo: ynabtest.Ptr("second"), Amount: ynabtest.Ptr(50.0)},
		})
		assert.Empty(t, errs)
		require.Len(t, payloads, 2)
		assert.Equal(t, ynab.Payload{
			"id":         "txn-heb-2025-01-15",
			"memo":       "second",
			"flag_color": "red",
			"amount":     int64(-50000),
		}, payloads[0])
		assert.Equal(t, false, payloads[1]["approved"])
	})

	t.Run("updates that change nothing are reported", func(t *testing.T) {
		payloads, errs := ComputeBulkTransactionUpdates(txns, groups, []BulkUpdate{
			{Description: "HEB", Approved: ynabtest.Ptr(true)},
			{Description: "Costco", Memo: ynabtest.Ptr("bulk")},
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "No changes to apply for 'HEB'.", errs[0])
		require.Len(t, payloads, 1)
		assert.Equal(t, ynab.Payload{"id": "txn-costco-2025-01-16", "memo": "bulk"}, payloads[0])
	})
}
