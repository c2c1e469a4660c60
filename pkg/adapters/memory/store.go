package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/statusmap/pkg/domain"
)

// Store implements ports.DefinitionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Definition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Definition),
	}
}

// Save persists the definition in memory.
func (s *Store) Save(ctx context.Context, def domain.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[def.Name] = clone(def)
	return nil
}

// Load retrieves the definition from memory.
func (s *Store) Load(ctx context.Context, name string) (domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[name]
	if !ok {
		return domain.Definition{}, domain.ErrDefinitionNotFound
	}

	// Copy on read so callers can't mutate stored rules through shared slices
	return clone(def), nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func clone(def domain.Definition) domain.Definition {
	rules := make(domain.Transitions, len(def.Transitions))
	for i, r := range def.Transitions {
		rules[i] = domain.Rule{From: r.From, To: append([]string(nil), r.To...)}
	}
	def.Transitions = rules
	return def
}
