package categorizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Service learns payee to category mappings and suggests categories.
// It is safe for concurrent use; every mutation is saved before returning.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu       sync.Mutex
	keys     []string
	mappings map[string]*Mapping
}

// NewService loads the stored mappings. A repository that cannot be read
// yields an empty table rather than an error.
func NewService(ctx context.Context, repo Repository, logger *slog.Logger) *Service {
	s := &Service{
		repo:     repo,
		logger:   logger,
		mappings: make(map[string]*Mapping),
	}

	stored, err := repo.Load(ctx)
	if err != nil {
		logger.Warn("Failed to load category mappings, starting empty", "error", err)
		return s
	}
	for _, m := range stored {
		key := Key(m.Payee)
		if key == "" {
			continue
		}
		if _, seen := s.mappings[key]; !seen {
			s.keys = append(s.keys, key)
		}
		m.Payee = key
		s.mappings[key] = &m
	}
	return s
}

// Learn applies each observation in order and saves once. Observations
// without a payee or category are skipped. Callers must not feed the lines
// of one split transaction through Learn.
func (s *Service) Learn(ctx context.Context, observations []Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range observations {
		key := Key(o.PayeeName)
		if key == "" || o.CategoryID == "" {
			continue
		}
		existing, ok := s.mappings[key]
		if !ok {
			existing = &Mapping{Payee: key, CategoryID: o.CategoryID, CategoryName: o.CategoryName}
			s.mappings[key] = existing
			s.keys = append(s.keys, key)
		}

		if existing.CategoryID == o.CategoryID {
			existing.Count++
			continue
		}
		existing.Count--
		if existing.Count <= 0 {
			*existing = Mapping{Payee: key, CategoryID: o.CategoryID, CategoryName: o.CategoryName, Count: 1}
		}
	}
	return s.save(ctx)
}

// Suggest returns the mapping for an exact key match, else the first learned
// key that contains or is contained in the payee name.
func (s *Service) Suggest(payee string) (Suggestion, bool) {
	key := Key(payee)
	if key == "" {
		return Suggestion{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.mappings[key]; ok {
		return Suggestion{CategoryID: m.CategoryID, CategoryName: m.CategoryName}, true
	}
	for _, known := range s.keys {
		if strings.Contains(key, known) || strings.Contains(known, key) {
			m := s.mappings[known]
			return Suggestion{CategoryID: m.CategoryID, CategoryName: m.CategoryName}, true
		}
	}
	return Suggestion{}, false
}

// SetManual overwrites the mapping for payee with a pinned vote count.
func (s *Service) SetManual(ctx context.Context, payee, categoryID, categoryName string) error {
	key := Key(payee)
	if key == "" {
		return fmt.Errorf("payee name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.mappings[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.mappings[key] = &Mapping{Payee: key, CategoryID: categoryID, CategoryName: categoryName, Count: ManualVoteCount}
	return s.save(ctx)
}

// Clear removes every mapping and returns how many there were.
func (s *Service) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.keys)
	s.keys = nil
	s.mappings = make(map[string]*Mapping)
	return n, s.save(ctx)
}

// Mappings returns a copy of the table in insertion order.
func (s *Service) Mappings() []Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Service) snapshot() []Mapping {
	out := make([]Mapping, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, *s.mappings[k])
	}
	return out
}

func (s *Service) save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.snapshot()); err != nil {
		s.logger.Error("Failed to save category mappings", "error", err)
		return fmt.Errorf("failed to save category mappings: %w", err)
	}
	return nil
}
