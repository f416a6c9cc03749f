package categorizer

import "context"

// Repository persists the mapping table. Mappings are handed over in
// insertion order and must come back in that order.
type Repository interface {
	Load(ctx context.Context) ([]Mapping, error)
	Save(ctx context.Context, mappings []Mapping) error
}
