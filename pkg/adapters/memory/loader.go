package memory

import (
	"context"

	"github.com/aretw0/statusmap/pkg/domain"
)

// Loader implements ports.DefinitionLoader for a definition held in memory.
type Loader struct {
	def domain.Definition
}

// NewLoader creates a loader that always returns a copy of def.
func NewLoader(def domain.Definition) *Loader {
	return &Loader{def: clone(def)}
}

// NewLoaderFromMap creates a loader from an unordered mapping.
func NewLoaderFromMap(name string, transitions map[string][]string) *Loader {
	return NewLoader(domain.Definition{
		Name:        name,
		Transitions: domain.TransitionsFromMap(transitions),
	})
}

// Load returns the held definition.
func (l *Loader) Load(ctx context.Context) (domain.Definition, error) {
	if err := ctx.Err(); err != nil {
		return domain.Definition{}, err
	}
	return clone(l.def), nil
}
