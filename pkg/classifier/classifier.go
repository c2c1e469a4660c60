package classifier

import (
	"io"
	"log/slog"

	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/graph"
)

// Classifier answers classification queries against one graph.
type Classifier struct {
	graph     *graph.Graph
	cache     *ReachCache
	cacheSize int
	noCache   bool
	hooks     domain.Hooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Classifier.
type Option func(*Classifier)

// WithCacheSize sets the number of cached entries per query kind.
func WithCacheSize(size int) Option {
	return func(c *Classifier) {
		c.cacheSize = size
	}
}

// WithoutCache disables memoization. Every query traverses the graph.
func WithoutCache() Option {
	return func(c *Classifier) {
		c.noCache = true
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *Classifier) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// New creates a classifier for g. It only fails on an invalid cache size.
func New(g *graph.Graph, opts ...Option) (*Classifier, error) {
	c := &Classifier{
		graph:     g,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if !c.noCache {
		cache, err := NewReachCache(c.cacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}

	return c, nil
}

// Graph returns the classified graph.
func (c *Classifier) Graph() *graph.Graph {
	return c.graph
}

// Classify decides the outcome of moving from one status to another.
// It never fails: unknown statuses are reported as NotFound outcomes.
func (c *Classifier) Classify(from, to domain.Status) domain.Verdict {
	v := domain.Verdict{Outcome: c.decide(from, to), From: from, To: to}

	c.logger.Debug("transition classified",
		"from", from.Name(),
		"to", to.Name(),
		"outcome", v.Outcome.String(),
	)
	c.hooks.Classified(v)
	return v
}

func (c *Classifier) decide(from, to domain.Status) domain.Outcome {
	if !c.graph.HasNode(from) {
		return domain.NotFoundFrom
	}
	if !c.graph.HasNode(to) {
		return domain.NotFoundTo
	}
	if from == to {
		return domain.Valid
	}
	if c.graph.HasEdge(from, to) {
		return domain.Valid
	}

	isPast := c.Ancestors(from).Has(to)
	isFuture := c.Descendants(from).Has(to)

	switch {
	case isPast && isFuture:
		return domain.Ambiguous
	case isFuture:
		return domain.Future
	case isPast:
		return domain.Past
	default:
		return domain.NotRelated
	}
}

// Ancestors returns the (possibly cached) ancestors of s.
func (c *Classifier) Ancestors(s domain.Status) graph.Set {
	return c.query(domain.QueryAncestors, s, c.graph.Ancestors)
}

// Descendants returns the (possibly cached) descendants of s.
func (c *Classifier) Descendants(s domain.Status) graph.Set {
	return c.query(domain.QueryDescendants, s, c.graph.Descendants)
}

func (c *Classifier) query(kind domain.QueryKind, s domain.Status, compute func(domain.Status) graph.Set) graph.Set {
	if c.cache == nil {
		return compute(s)
	}
	set, hit := c.cache.Lookup(kind, s, compute)
	c.hooks.CacheLookup(kind, hit)
	return set
}

// Stats returns the cache counters. It is the zero value when caching is disabled.
func (c *Classifier) Stats() CacheStats {
	if c.cache == nil {
		return CacheStats{}
	}
	return c.cache.Stats()
}

// ClearCache drops every memoized set.
func (c *Classifier) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
		c.logger.Debug("reachability cache cleared")
	}
}
