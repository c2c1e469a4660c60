// Package loam reads status maps from a Loam document vault, one status per document.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/statusmap/pkg/domain"
)

// Loader adapts the Loam library to the ports.DefinitionLoader interface.
type Loader struct {
	Repo        *loam.TypedRepository[StatusMetadata]
	name        string
	description string
}

// Option configures the Loader.
type Option func(*Loader)

// WithName sets the definition name.
func WithName(name string) Option {
	return func(l *Loader) {
		l.name = name
	}
}

// WithDescription sets the definition description.
func WithDescription(description string) Option {
	return func(l *Loader) {
		l.description = description
	}
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[StatusMetadata], opts ...Option) *Loader {
	l := &Loader{Repo: repo}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open initializes a Loam repository at dir without versioning and wraps it.
// The definition is named after the directory unless WithName is given.
func Open(dir string, opts ...Option) (*Loader, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	repo, err := loam.Init(abs, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to open loam vault %s: %w", abs, err)
	}

	opts = append([]Option{WithName(filepath.Base(abs))}, opts...)
	return New(loam.NewTypedRepository[StatusMetadata](repo), opts...), nil
}

type entry struct {
	name  string
	order int
	next  []string
}

// Load implements ports.DefinitionLoader.
// Documents are ordered by their "order" field, then by name.
func (l *Loader) Load(ctx context.Context) (domain.Definition, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	entries := make([]entry, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		name := trimExtension(rawID)

		if existingPath, ok := seen[name]; ok {
			return domain.Definition{}, fmt.Errorf("collision detected: status '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID

		next, err := decodeNext(doc.Data.Next)
		if err != nil {
			return domain.Definition{}, fmt.Errorf("invalid next in %s: %w", doc.ID, err)
		}
		entries = append(entries, entry{name: name, order: doc.Data.Order, next: next})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].order != entries[j].order {
			return entries[i].order < entries[j].order
		}
		return entries[i].name < entries[j].name
	})

	rules := make(domain.Transitions, 0, len(entries))
	for _, e := range entries {
		rules = append(rules, domain.Rule{From: e.name, To: e.next})
	}

	def := domain.Definition{
		Name:        l.name,
		Description: l.description,
		Transitions: rules,
	}
	if len(rules) == 0 {
		return def, fmt.Errorf("loam vault has no status documents: %w", domain.ErrEmptyTransitions)
	}
	return def, nil
}

// decodeNext accepts a list, a single name, or nothing.
func decodeNext(raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	var next []string
	if err := mapstructure.WeakDecode(raw, &next); err != nil {
		return nil, err
	}
	return next, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				// Loam debounces; coalesce further by dropping signals while one is pending.
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch, nil
}
