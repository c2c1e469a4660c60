package statusmap

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/statusmap/pkg/classifier"
	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/graph"
)

// Version is the library version.
const Version = "0.4.0"

// Map is the high-level entry point of the library. It validates transitions
// between the statuses of one immutable transition graph.
// It is safe for concurrent use.
type Map struct {
	name        string
	description string
	graph       *graph.Graph
	classifier  *classifier.Classifier
	classOpts   []classifier.Option
	hooks       domain.Hooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Map.
type Option func(*Map)

// WithName labels the map, e.g. "orders". The name shows up in logs and metrics.
func WithName(name string) Option {
	return func(m *Map) {
		m.name = name
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Map) {
		m.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(m *Map) {
		m.hooks = hooks
	}
}

// WithCacheSize sets the number of memoized reachability sets per query kind.
func WithCacheSize(size int) Option {
	return func(m *Map) {
		m.classOpts = append(m.classOpts, classifier.WithCacheSize(size))
	}
}

// WithoutCache disables reachability memoization.
func WithoutCache() Option {
	return func(m *Map) {
		m.classOpts = append(m.classOpts, classifier.WithoutCache())
	}
}

// New builds a map from a status -> next statuses mapping.
// It fails with domain.ErrEmptyTransitions when the mapping is empty.
func New(transitions map[string][]string, opts ...Option) (*Map, error) {
	return FromRules(domain.TransitionsFromMap(transitions), opts...)
}

// FromDefinition builds a map from a named definition. Options are applied
// after the definition, so WithName overrides the definition name.
func FromDefinition(def domain.Definition, opts ...Option) (*Map, error) {
	opts = append([]Option{WithName(def.Name), withDescription(def.Description)}, opts...)
	return FromRules(def.Transitions, opts...)
}

func withDescription(description string) Option {
	return func(m *Map) {
		m.description = description
	}
}

// FromRules builds a map from ordered rules. Rule order is kept as the
// status enumeration order.
func FromRules(rules domain.Transitions, opts ...Option) (*Map, error) {
	m := &Map{}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.name != "" {
		m.logger = m.logger.With("map", m.name)
	}

	g, err := graph.BuildRules(rules)
	if err != nil {
		return nil, err
	}
	m.graph = g

	classOpts := append([]classifier.Option{
		classifier.WithLogger(m.logger),
		classifier.WithHooks(m.hooks),
	}, m.classOpts...)

	c, err := classifier.New(g, classOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}
	m.classifier = c

	m.logger.Debug("status map built",
		"statuses", g.Len(),
		"edges", g.EdgeCount(),
		"cyclic", g.HasCycle(),
	)

	return m, nil
}

// Name returns the map name, possibly empty.
func (m *Map) Name() string {
	return m.name
}

// Description returns the definition description, possibly empty.
func (m *Map) Description() string {
	return m.description
}

// Graph returns the underlying immutable graph.
func (m *Map) Graph() *graph.Graph {
	return m.graph
}

// Classify classifies the move from one status to another. It never fails.
func (m *Map) Classify(from, to string) domain.Verdict {
	return m.classifier.Classify(domain.NewStatus(from), domain.NewStatus(to))
}

// Validate returns nil when the move is legal, a *domain.StatusNotFoundError
// when a status is unknown and a *domain.TransitionError otherwise.
func (m *Map) Validate(from, to string) error {
	return m.Classify(from, to).Err()
}

// SequenceError reports the first illegal step of a status history.
type SequenceError struct {
	// Index is the position of the step's target in the history.
	Index int
	Err   error
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Index, e.Err)
}

func (e *SequenceError) Unwrap() error {
	return e.Err
}

// ValidateSequence validates every consecutive pair of a status history.
// Repeated statuses are same-status moves and therefore legal. A history of
// a single status only checks that the status exists.
func (m *Map) ValidateSequence(statuses ...string) error {
	if len(statuses) == 1 && !m.Contains(statuses[0]) {
		return &SequenceError{Index: 0, Err: &domain.StatusNotFoundError{Role: domain.RoleFrom, Status: domain.NewStatus(statuses[0])}}
	}
	for i := 1; i < len(statuses); i++ {
		if err := m.Validate(statuses[i-1], statuses[i]); err != nil {
			return &SequenceError{Index: i, Err: err}
		}
	}
	return nil
}

// Statuses returns every status name in construction order.
func (m *Map) Statuses() []string {
	return domain.Names(m.graph.Statuses())
}

// Len returns the number of statuses.
func (m *Map) Len() int {
	return m.graph.Len()
}

// Contains reports whether name is a status of the map.
func (m *Map) Contains(name string) bool {
	return m.graph.HasNode(domain.NewStatus(name))
}

// Next returns the statuses directly reachable from name.
func (m *Map) Next(name string) []string {
	return domain.Names(m.graph.Successors(domain.NewStatus(name)))
}

// Previous returns every status that can lead to name, sorted.
func (m *Map) Previous(name string) []string {
	return m.classifier.Ancestors(domain.NewStatus(name)).Names()
}

// Upcoming returns every status reachable from name, sorted.
func (m *Map) Upcoming(name string) []string {
	return m.classifier.Descendants(domain.NewStatus(name)).Names()
}

// HasCycle reports whether statuses can loop back onto themselves.
func (m *Map) HasCycle() bool {
	return m.graph.HasCycle()
}

// Terminals returns the statuses with no way out.
func (m *Map) Terminals() []string {
	return domain.Names(m.graph.Terminals())
}

// Initials returns the statuses nothing leads to.
func (m *Map) Initials() []string {
	return domain.Names(m.graph.Initials())
}

// Definition converts the map back into a named definition.
func (m *Map) Definition() domain.Definition {
	return domain.Definition{
		Name:        m.name,
		Description: m.description,
		Transitions: m.graph.Rules(),
	}
}

// CacheStats returns the reachability cache counters.
func (m *Map) CacheStats() classifier.CacheStats {
	return m.classifier.Stats()
}

// ClearCache drops every memoized reachability set.
func (m *Map) ClearCache() {
	m.classifier.ClearCache()
}

func (m *Map) String() string {
	quoted := make([]string, 0, m.graph.Len())
	for _, s := range m.Statuses() {
		quoted = append(quoted, fmt.Sprintf("%q", s))
	}
	return fmt.Sprintf("StatusMap(statuses=(%s))", strings.Join(quoted, ", "))
}
