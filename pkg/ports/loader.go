package ports

import (
	"context"

	"github.com/aretw0/statusmap/pkg/domain"
)

// DefinitionLoader defines how a single definition is read from its source.
type DefinitionLoader interface {
	// Load parses the source and returns the definition in declaration order.
	Load(ctx context.Context) (domain.Definition, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload in the serve command.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying source changes.
	// It abstracts away the specific event details, signaling only that a reload is required.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
