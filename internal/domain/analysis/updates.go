package analysis

import (
	"fmt"
	"strconv"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/resolver"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

const (
	noneLabel    = "(none)"
	clearedLabel = "(cleared)"
)

// TransactionUpdate holds candidate field values. Nil fields are left alone;
// an empty Memo clears the memo.
type TransactionUpdate struct {
	Memo         *string
	CategoryID   *string
	CategoryName string // display name for CategoryID
	PayeeName    *string
	Date         *string
	Amount       *money.Milliunits
	FlagColor    *ynab.FlagColor
	Cleared      *ynab.ClearedStatus
	Approved     *bool
}

// ScheduledUpdate holds candidate values for a scheduled transaction.
type ScheduledUpdate struct {
	Memo         *string
	CategoryID   *string
	CategoryName string
	PayeeName    *string
	Date         *string
	Amount       *money.Milliunits
	FlagColor    *ynab.FlagColor
	Frequency    *ynab.Frequency
}

// BulkUpdate is one entry of a bulk edit. Amount is in major units with
// positive values meaning an outflow.
type BulkUpdate struct {
	Description  string
	CategoryName string
	Memo         *string
	PayeeName    *string
	Date         *string
	Amount       *float64
	FlagColor    *ynab.FlagColor
	Cleared      *ynab.ClearedStatus
	Approved     *bool
}

// OutflowAmount converts a user amount, positive for money leaving the
// account, into signed milliunits.
func OutflowAmount(amount float64) money.Milliunits {
	return money.FromMajor(-amount)
}

type diff struct {
	payload ynab.Payload
	changes []FieldChange
}

func newDiff() *diff {
	return &diff{payload: ynab.Payload{}, changes: []FieldChange{}}
}

func (d *diff) add(field, key string, value any, oldValue, newValue string) {
	d.payload[key] = value
	d.changes = append(d.changes, FieldChange{FieldName: field, OldValue: oldValue, NewValue: newValue})
}

func orNone(s string) string {
	if s == "" {
		return noneLabel
	}
	return s
}

func flagText(f *ynab.FlagColor) string {
	if f == nil {
		return ""
	}
	return string(*f)
}

func ptrText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (d *diff) memo(oldMemo *string, memo *string) {
	if memo == nil || *memo == ptrText(oldMemo) {
		return
	}
	shown := *memo
	if shown == "" {
		shown = clearedLabel
	}
	d.add("Memo", "memo", *memo, orNone(ptrText(oldMemo)), shown)
}

func (d *diff) category(oldID *string, oldName string, id *string, name string) {
	if id == nil || *id == ptrText(oldID) {
		return
	}
	if name == "" {
		name = *id
	}
	d.add("Category", "category_id", *id, orNone(oldName), name)
}

func (d *diff) text(field, key, old string, value *string) {
	if value == nil || *value == old {
		return
	}
	d.add(field, key, *value, orNone(old), *value)
}

func (d *diff) amount(old money.Milliunits, value *money.Milliunits) {
	if value == nil || *value == old {
		return
	}
	d.add("Amount", "amount", int64(*value), old.String(), value.String())
}

func (d *diff) flag(old *ynab.FlagColor, value *ynab.FlagColor) {
	if value == nil || *value == ynab.FlagColor(flagText(old)) {
		return
	}
	d.add("Flag", "flag_color", string(*value), orNone(flagText(old)), string(*value))
}

// ComputeTransactionUpdates returns the write payload and the list of field
// changes needed to bring txn to the values in u.
func ComputeTransactionUpdates(txn ynab.Transaction, u TransactionUpdate) (ynab.Payload, []FieldChange) {
	d := newDiff()
	d.memo(txn.Memo, u.Memo)
	d.category(txn.CategoryID, txn.Category(), u.CategoryID, u.CategoryName)
	d.text("Payee", "payee_name", txn.Payee(), u.PayeeName)
	d.text("Date", "date", txn.Date, u.Date)
	d.amount(txn.Amount, u.Amount)
	d.flag(txn.FlagColor, u.FlagColor)
	if u.Cleared != nil && *u.Cleared != txn.Cleared {
		d.add("Cleared", "cleared", string(*u.Cleared), orNone(string(txn.Cleared)), string(*u.Cleared))
	}
	if u.Approved != nil && *u.Approved != txn.Approved {
		d.add("Approved", "approved", *u.Approved, strconv.FormatBool(txn.Approved), strconv.FormatBool(*u.Approved))
	}
	return d.payload, d.changes
}

// ComputeScheduledUpdates is ComputeTransactionUpdates for a scheduled
// transaction. Date is compared against the next occurrence.
func ComputeScheduledUpdates(st ynab.ScheduledTransaction, u ScheduledUpdate) (ynab.Payload, []FieldChange) {
	d := newDiff()
	d.memo(st.Memo, u.Memo)
	d.category(st.CategoryID, st.Category(), u.CategoryID, u.CategoryName)
	d.text("Payee", "payee_name", st.Payee(), u.PayeeName)
	d.text("Date", "date", st.DateNext, u.Date)
	d.amount(st.Amount, u.Amount)
	d.flag(st.FlagColor, u.FlagColor)
	if u.Frequency != nil && *u.Frequency != st.Frequency {
		d.add("Frequency", "frequency", string(*u.Frequency), orNone(string(st.Frequency)), string(*u.Frequency))
	}
	return d.payload, d.changes
}

// ComputeBulkTransactionUpdates resolves every update to a transaction and
// builds one payload per transaction, each carrying its id. Later updates to
// the same transaction overwrite earlier fields. Failures are collected as
// messages naming the description.
func ComputeBulkTransactionUpdates(txns []ynab.Transaction, groups []ynab.CategoryGroup, updates []BulkUpdate) ([]ynab.Payload, []string) {
	var (
		order  []string
		merged = make(map[string]ynab.Payload)
		errs   []string
	)

	for _, u := range updates {
		txn := FindTransactionByDescription(txns, u.Description)
		if txn == nil {
			errs = append(errs, fmt.Sprintf("No transaction found matching '%s'.", u.Description))
			continue
		}

		tu := TransactionUpdate{
			Memo:      u.Memo,
			PayeeName: u.PayeeName,
			Date:      u.Date,
			FlagColor: u.FlagColor,
			Cleared:   u.Cleared,
			Approved:  u.Approved,
		}
		if u.CategoryName != "" {
			cat, err := resolver.ResolveCategoryOrInflow(groups, u.CategoryName)
			if err != nil {
				errs = append(errs, fmt.Sprintf("'%s': %v", u.Description, err))
				continue
			}
			tu.CategoryID, tu.CategoryName = &cat.ID, cat.Name
		}
		if u.Amount != nil {
			amt := OutflowAmount(*u.Amount)
			tu.Amount = &amt
		}

		payload, _ := ComputeTransactionUpdates(*txn, tu)
		if len(payload) == 0 {
			errs = append(errs, fmt.Sprintf("No changes to apply for '%s'.", u.Description))
			continue
		}
		existing, seen := merged[txn.ID]
		if !seen {
			existing = ynab.Payload{"id": txn.ID}
			merged[txn.ID] = existing
			order = append(order, txn.ID)
		}
		for k, v := range payload {
			existing[k] = v
		}
	}

	out := make([]ynab.Payload, 0, len(order))
	for _, id := range order {
		out = append(out, merged[id])
	}
	return out, errs
}
