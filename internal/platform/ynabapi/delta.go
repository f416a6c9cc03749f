package ynabapi

import (
	"context"
	"sync"

	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

// table is one delta-synced collection. The lock is held across fetch and
// merge, so concurrent readers never apply an older delta over a newer one.
type table[T any] struct {
	mu        sync.Mutex
	knowledge *int64
	keys      []string
	items     map[string]T
}

func newTable[T any]() *table[T] {
	return &table[T]{items: make(map[string]T)}
}

// fetchFunc performs one request. since is nil on the first sync. A nil
// serverKnowledge means the response carried no token.
type fetchFunc[T any] func(ctx context.Context, since *int64) (records []T, serverKnowledge *int64, err error)

// sync fetches the changes since the last successful call, merges them and
// returns the full collection in first-seen order. On failure nothing is
// changed.
func (t *table[T]) sync(ctx context.Context, id func(T) string, deleted func(T) bool, fetch fetchFunc[T]) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, knowledge, err := fetch(ctx, t.knowledge)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		t.put(id(r), r, deleted(r))
	}
	if knowledge != nil {
		t.knowledge = knowledge
	}
	return t.snapshot(), nil
}

func (t *table[T]) put(key string, v T, deleted bool) {
	if key == "" {
		return
	}
	_, exists := t.items[key]
	if deleted {
		if exists {
			delete(t.items, key)
			t.removeKey(key)
		}
		return
	}
	if !exists {
		t.keys = append(t.keys, key)
	}
	t.items[key] = v
}

func (t *table[T]) removeKey(key string) {
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			return
		}
	}
}

// evict drops one record without touching the knowledge token.
func (t *table[T]) evict(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(key)
}

func (t *table[T]) removeLocked(key string) {
	if _, ok := t.items[key]; ok {
		delete(t.items, key)
		t.removeKey(key)
	}
}

func (t *table[T]) snapshot() []T {
	out := make([]T, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.items[k])
	}
	return out
}

// categoryTable merges groups and their categories as two levels. A
// category delta may arrive inside a group record that carries only the
// changed categories. groupOf maps each cached category to the group that
// currently holds it, so a category appears under one group only.
type categoryTable struct {
	mu         sync.Mutex
	knowledge  *int64
	groupKeys  []string
	groups     map[string]ynab.CategoryGroup
	categories map[string]*table[ynab.Category]
	groupOf    map[string]string
}

func newCategoryTable() *categoryTable {
	return &categoryTable{
		groups:     make(map[string]ynab.CategoryGroup),
		categories: make(map[string]*table[ynab.Category]),
		groupOf:    make(map[string]string),
	}
}

func (t *categoryTable) sync(ctx context.Context, fetch fetchFunc[ynab.CategoryGroup]) ([]ynab.CategoryGroup, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	groups, knowledge, err := fetch(ctx, t.knowledge)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		t.merge(g)
	}
	if knowledge != nil {
		t.knowledge = knowledge
	}

	out := make([]ynab.CategoryGroup, 0, len(t.groupKeys))
	for _, key := range t.groupKeys {
		g := t.groups[key]
		g.Categories = t.categories[key].snapshot()
		out = append(out, g)
	}
	return out, nil
}

func (t *categoryTable) merge(g ynab.CategoryGroup) {
	if g.Deleted {
		if _, ok := t.groups[g.ID]; ok {
			for _, c := range t.categories[g.ID].snapshot() {
				delete(t.groupOf, c.ID)
			}
			delete(t.groups, g.ID)
			delete(t.categories, g.ID)
			for i, k := range t.groupKeys {
				if k == g.ID {
					t.groupKeys = append(t.groupKeys[:i], t.groupKeys[i+1:]...)
					break
				}
			}
		}
		return
	}

	cats, ok := t.categories[g.ID]
	if !ok {
		cats = newTable[ynab.Category]()
		t.categories[g.ID] = cats
		t.groupKeys = append(t.groupKeys, g.ID)
	}
	for _, c := range g.Categories {
		if c.ID == "" {
			continue
		}
		if prev, ok := t.groupOf[c.ID]; ok && (prev != g.ID || c.Deleted) {
			if old, ok := t.categories[prev]; ok {
				old.removeLocked(c.ID)
			}
			delete(t.groupOf, c.ID)
		}
		if c.Deleted {
			continue
		}
		cats.put(c.ID, c, false)
		t.groupOf[c.ID] = g.ID
	}
	g.Categories = nil
	t.groups[g.ID] = g
}

// deltaCache holds every delta-synced collection of one budget.
type deltaCache struct {
	accounts     *table[ynab.Account]
	payees       *table[ynab.Payee]
	months       *table[ynab.MonthSummary]
	transactions *table[ynab.Transaction]
	categories   *categoryTable
}

func newDeltaCache() *deltaCache {
	return &deltaCache{
		accounts:     newTable[ynab.Account](),
		payees:       newTable[ynab.Payee](),
		months:       newTable[ynab.MonthSummary](),
		transactions: newTable[ynab.Transaction](),
		categories:   newCategoryTable(),
	}
}
