package ports

import (
	"context"

	"github.com/aretw0/statusmap/pkg/domain"
)

// DefinitionStore defines the interface for persisting named definitions.
// Stores hold configuration only, never the state of running workflows.
type DefinitionStore interface {
	// Save persists the definition under def.Name, replacing any previous one.
	Save(ctx context.Context, def domain.Definition) error

	// Load retrieves the definition with the given name.
	// Returns domain.ErrDefinitionNotFound if it does not exist.
	Load(ctx context.Context, name string) (domain.Definition, error)

	// Delete removes the definition. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
}
