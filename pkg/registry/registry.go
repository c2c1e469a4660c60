// Package registry keeps compiled status maps by name.
//
// Maps can be registered directly or resolved lazily from a
// ports.DefinitionStore. Concurrent resolutions of the same name share one
// store read and one compilation.
package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/ports"
)

// MapOptions returns the build options for the map with the given name.
type MapOptions func(name string) []statusmap.Option

// Registry manages the available maps.
type Registry struct {
	mu     sync.RWMutex
	maps   map[string]*statusmap.Map
	group  singleflight.Group
	store  ports.DefinitionStore
	opts   MapOptions
	logger *slog.Logger
}

// Option configures the Registry.
type Option func(*Registry)

// WithStore backs the registry with a definition store.
func WithStore(store ports.DefinitionStore) Option {
	return func(r *Registry) {
		r.store = store
	}
}

// WithMapOptions sets the options applied when compiling definitions.
func WithMapOptions(fn MapOptions) Option {
	return func(r *Registry) {
		r.opts = fn
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates a new empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		maps:   make(map[string]*statusmap.Map),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a compiled map under its name.
// If a map with the same name exists, it is overwritten.
func (r *Registry) Register(m *statusmap.Map) error {
	if m.Name() == "" {
		return domain.ErrUnnamedDefinition
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maps[m.Name()] = m
	return nil
}

// Get returns the registered map, without consulting the store.
func (r *Registry) Get(name string) (*statusmap.Map, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.maps[name]
	return m, ok
}

// Names returns registered and stored names in ascending order.
func (r *Registry) Names(ctx context.Context) ([]string, error) {
	set := make(map[string]struct{})

	r.mu.RLock()
	for name := range r.maps {
		set[name] = struct{}{}
	}
	r.mu.RUnlock()

	if r.store != nil {
		stored, err := r.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list stored definitions: %w", err)
		}
		for _, name := range stored {
			set[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Remove drops a compiled map. It reports whether the name was registered.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.maps[name]
	delete(r.maps, name)
	r.group.Forget(name)
	return ok
}

// Resolve returns the named map, compiling it from the store on a miss.
// Returns domain.ErrDefinitionNotFound when neither has it.
func (r *Registry) Resolve(ctx context.Context, name string) (*statusmap.Map, error) {
	if m, ok := r.Get(name); ok {
		return m, nil
	}
	if r.store == nil {
		return nil, domain.ErrDefinitionNotFound
	}

	v, err, shared := r.group.Do(name, func() (any, error) {
		def, err := r.store.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		m, err := r.compile(def)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		// A concurrent Put wins over a definition read before it.
		if existing, ok := r.maps[name]; ok {
			return existing, nil
		}
		r.maps[name] = m
		return m, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("map resolved from store", "map", name, "shared", shared)
	return v.(*statusmap.Map), nil
}

// Put saves the definition to the store, when one is configured, and
// replaces the compiled map. The definition is compiled first so invalid
// definitions are never stored.
func (r *Registry) Put(ctx context.Context, def domain.Definition) (*statusmap.Map, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	m, err := r.compile(def)
	if err != nil {
		return nil, err
	}

	if r.store != nil {
		if err := r.store.Save(ctx, def); err != nil {
			return nil, fmt.Errorf("failed to store definition %q: %w", def.Name, err)
		}
	}

	r.mu.Lock()
	prev, replaced := r.maps[def.Name]
	r.maps[def.Name] = m
	r.group.Forget(def.Name)
	r.mu.Unlock()

	if !replaced {
		r.logger.Info("map registered", "map", def.Name, "statuses", m.Len())
		return m, nil
	}
	if diff := domain.Diff(prev.Definition(), def); diff != nil {
		r.logger.Info("map updated", "map", def.Name, "statuses", m.Len(),
			"added", diff.Added, "removed", diff.Removed, "changed", diff.Changed)
	}
	return m, nil
}

// Delete removes the map from the registry and the store.
func (r *Registry) Delete(ctx context.Context, name string) error {
	r.Remove(name)
	if r.store == nil {
		return nil
	}
	if err := r.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete definition %q: %w", name, err)
	}
	return nil
}

func (r *Registry) compile(def domain.Definition) (*statusmap.Map, error) {
	opts := []statusmap.Option{statusmap.WithLogger(r.logger)}
	if r.opts != nil {
		opts = append(opts, r.opts(def.Name)...)
	}
	return statusmap.FromDefinition(def, opts...)
}
