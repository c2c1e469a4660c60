package dsl

import (
	"fmt"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/pkg/domain"
)

// Builder manages the status map construction.
type Builder struct {
	name        string
	description string
	order       []string
	statuses    map[string]*StatusBuilder
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{
		statuses: make(map[string]*StatusBuilder),
	}
}

// Named sets the definition name.
func (b *Builder) Named(name string) *Builder {
	b.name = name
	return b
}

// Describe sets the definition description.
func (b *Builder) Describe(description string) *Builder {
	b.description = description
	return b
}

// Status declares a status, or returns the existing builder if it was
// declared before.
func (b *Builder) Status(name string) *StatusBuilder {
	if sb, ok := b.statuses[name]; ok {
		return sb
	}
	sb := &StatusBuilder{name: name, builder: b}
	b.statuses[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Terminal declares a status without successors.
func (b *Builder) Terminal(name string) *Builder {
	b.Status(name)
	return b
}

// Chain declares the linear path names[0] -> names[1] -> ... .
func (b *Builder) Chain(names ...string) *Builder {
	for i, name := range names {
		sb := b.Status(name)
		if i+1 < len(names) {
			sb.To(names[i+1])
		}
	}
	return b
}

// Rules returns the declared rules in declaration order.
func (b *Builder) Rules() domain.Transitions {
	rules := make(domain.Transitions, 0, len(b.order))
	for _, name := range b.order {
		sb := b.statuses[name]
		rules = append(rules, domain.Rule{From: name, To: append([]string{}, sb.next...)})
	}
	return rules
}

// Definition compiles the declarations into a named definition.
func (b *Builder) Definition() domain.Definition {
	return domain.Definition{
		Name:        b.name,
		Description: b.description,
		Transitions: b.Rules(),
	}
}

// Build compiles the declarations into a status map.
func (b *Builder) Build(opts ...statusmap.Option) (*statusmap.Map, error) {
	m, err := statusmap.FromDefinition(b.Definition(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build status map %q: %w", b.name, err)
	}
	return m, nil
}
