package classifier_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/statusmap/internal/testutils"
	"github.com/aretw0/statusmap/pkg/classifier"
	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/graph"
)

func s(name string) domain.Status { return domain.NewStatus(name) }

func newClassifier(t *testing.T, m map[string][]string, opts ...classifier.Option) *classifier.Classifier {
	t.Helper()
	g, err := graph.Build(m)
	require.NoError(t, err)
	c, err := classifier.New(g, opts...)
	require.NoError(t, err)
	return c
}

func TestClassify_Acyclic(t *testing.T) {
	c := newClassifier(t, testutils.OrderTransitions())

	tests := []struct {
		from, to string
		want     domain.Outcome
	}{
		{"pending", "processing", domain.Valid},
		{"processing", "approved", domain.Valid},
		{"processing", "rejected", domain.Valid},
		{"approved", "processed", domain.Valid},
		{"approved", "pending", domain.Past},
		{"processing", "pending", domain.Past},
		{"processed", "pending", domain.Past},
		{"processed", "processing", domain.Past},
		{"processed", "approved", domain.Past},
		{"pending", "approved", domain.Future},
		{"pending", "processed", domain.Future},
		{"rejected", "processed", domain.NotRelated},
		{"processed", "rejected", domain.NotRelated},
		{"does-not-exists", "pending", domain.NotFoundFrom},
		{"pending", "does-not-exists", domain.NotFoundTo},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			v := c.Classify(s(tt.from), s(tt.to))
			assert.Equal(t, tt.want, v.Outcome)
			assert.Equal(t, tt.from, v.From.Name())
			assert.Equal(t, tt.to, v.To.Name())
		})
	}
}

func TestClassify_Cycle(t *testing.T) {
	c := newClassifier(t, testutils.CycleTransitions())

	assert.Equal(t, domain.Ambiguous, c.Classify(s("rejected"), s("processing")).Outcome)
	assert.Equal(t, domain.Ambiguous, c.Classify(s("processing"), s("pending")).Outcome)
	assert.Equal(t, domain.Past, c.Classify(s("processed"), s("pending")).Outcome)
	assert.Equal(t, domain.Valid, c.Classify(s("rejected"), s("pending")).Outcome)
	assert.Equal(t, domain.Future, c.Classify(s("rejected"), s("processed")).Outcome)
}

func TestClassify_NotFoundPrecedence(t *testing.T) {
	c := newClassifier(t, testutils.OrderTransitions())

	// The source is checked first, even when both are unknown.
	assert.Equal(t, domain.NotFoundFrom, c.Classify(s("ghost"), s("phantom")).Outcome)
	// The same unknown status on both sides is not a no-op.
	assert.Equal(t, domain.NotFoundFrom, c.Classify(s("ghost"), s("ghost")).Outcome)
}

func fixtures() map[string]map[string][]string {
	return map[string]map[string][]string{
		"order":      testutils.OrderTransitions(),
		"cycle":      testutils.CycleTransitions(),
		"shipping":   testutils.ShippingTransitions(),
		"publishing": testutils.PublishingTransitions(),
	}
}

func TestClassify_Properties(t *testing.T) {
	for name, m := range fixtures() {
		t.Run(name, func(t *testing.T) {
			c := newClassifier(t, m)
			g := c.Graph()

			for _, st := range g.Statuses() {
				assert.Equal(t, domain.Valid, c.Classify(st, st).Outcome, "reflexive %s", st)
				assert.Equal(t, domain.NotFoundFrom, c.Classify(s("missing"), st).Outcome)
				assert.Equal(t, domain.NotFoundTo, c.Classify(st, s("missing")).Outcome)
			}
			for _, e := range g.Edges() {
				assert.Equal(t, domain.Valid, c.Classify(e.From, e.To).Outcome, "edge %s->%s", e.From, e.To)
			}

			// Ambiguity only shows up on cyclic graphs.
			if !g.HasCycle() {
				for _, from := range g.Statuses() {
					for _, to := range g.Statuses() {
						assert.NotEqual(t, domain.Ambiguous, c.Classify(from, to).Outcome)
					}
				}
			}
		})
	}
}

func TestClassify_SelfLoopIsNeutral(t *testing.T) {
	plain := newClassifier(t, map[string][]string{"a": {"b"}, "b": {"c"}, "c": {}})
	looped := newClassifier(t, map[string][]string{"a": {"a", "b"}, "b": {"b", "c"}, "c": {"c"}})

	for _, from := range []string{"a", "b", "c"} {
		for _, to := range []string{"a", "b", "c"} {
			assert.Equal(t,
				plain.Classify(s(from), s(to)).Outcome,
				looped.Classify(s(from), s(to)).Outcome,
				"%s->%s", from, to)
		}
	}
}

func TestClassify_CacheTransparency(t *testing.T) {
	for name, m := range fixtures() {
		t.Run(name, func(t *testing.T) {
			uncached := newClassifier(t, m, classifier.WithoutCache())
			tiny := newClassifier(t, m, classifier.WithCacheSize(1))
			cleared := newClassifier(t, m)
			warm := newClassifier(t, m)

			statuses := uncached.Graph().Statuses()
			// Warm up in reverse order.
			for i := len(statuses) - 1; i >= 0; i-- {
				warm.Descendants(statuses[i])
				warm.Ancestors(statuses[i])
			}

			for _, from := range statuses {
				for _, to := range statuses {
					want := uncached.Classify(from, to)
					assert.Equal(t, want, tiny.Classify(from, to))
					assert.Equal(t, want, warm.Classify(from, to))
					cleared.ClearCache()
					assert.Equal(t, want, cleared.Classify(from, to))
				}
			}

			assert.Equal(t, classifier.CacheStats{}, uncached.Stats())
			assert.Greater(t, tiny.Stats().Ancestors.Evictions, uint64(0))
		})
	}
}

func TestReachCache_Counters(t *testing.T) {
	c := newClassifier(t, testutils.OrderTransitions())

	c.Classify(s("pending"), s("approved"))
	stats := c.Stats()
	assert.Equal(t, uint64(0), stats.Hits())
	assert.Equal(t, uint64(1), stats.Ancestors.Misses)
	assert.Equal(t, uint64(1), stats.Descendants.Misses)

	c.Classify(s("pending"), s("approved"))
	c.Classify(s("pending"), s("processed"))
	stats = c.Stats()
	assert.Equal(t, uint64(2), stats.Ancestors.Hits)
	assert.Equal(t, uint64(2), stats.Descendants.Hits)
	assert.Equal(t, uint64(2), stats.Misses())

	// Same-status, direct edges and unknown statuses never touch the cache.
	c.Classify(s("pending"), s("pending"))
	c.Classify(s("pending"), s("processing"))
	c.Classify(s("ghost"), s("pending"))
	assert.Equal(t, stats, c.Stats())

	c.Classify(s("approved"), s("pending"))
	stats = c.Stats()
	assert.Equal(t, uint64(2), stats.Ancestors.Misses)
	assert.Equal(t, 2, stats.Ancestors.Len)
	assert.Equal(t, classifier.DefaultCacheSize, stats.Ancestors.Capacity)
	assert.Equal(t, uint64(0), stats.Ancestors.Evictions)

	c.ClearCache()
	stats = c.Stats()
	assert.Equal(t, 0, stats.Ancestors.Len)
	assert.Equal(t, 0, stats.Descendants.Len)
	assert.Equal(t, uint64(2), stats.Ancestors.Hits, "clearing keeps counters")

	c.Classify(s("pending"), s("approved"))
	assert.Equal(t, uint64(3), c.Stats().Ancestors.Misses)
}

func TestReachCache_Eviction(t *testing.T) {
	c := newClassifier(t, testutils.OrderTransitions(), classifier.WithCacheSize(1))

	assert.Equal(t, domain.Future, c.Classify(s("pending"), s("approved")).Outcome)
	assert.Equal(t, domain.Past, c.Classify(s("approved"), s("pending")).Outcome)
	assert.Equal(t, domain.Future, c.Classify(s("pending"), s("approved")).Outcome)

	stats := c.Stats()
	assert.Equal(t, uint64(0), stats.Hits())
	assert.Equal(t, uint64(3), stats.Ancestors.Misses)
	assert.Equal(t, uint64(3), stats.Descendants.Misses)
	assert.Equal(t, uint64(2), stats.Ancestors.Evictions)
	assert.Equal(t, uint64(2), stats.Descendants.Evictions)
	assert.Equal(t, 1, stats.Ancestors.Len)
}

func TestNew_InvalidCacheSize(t *testing.T) {
	g, err := graph.Build(testutils.OrderTransitions())
	require.NoError(t, err)

	_, err = classifier.New(g, classifier.WithCacheSize(0))
	assert.Error(t, err)

	// Size is ignored when the cache is disabled.
	_, err = classifier.New(g, classifier.WithCacheSize(0), classifier.WithoutCache())
	assert.NoError(t, err)
}

func TestClassify_Hooks(t *testing.T) {
	var verdicts []domain.Verdict
	lookups := map[bool]int{}

	c := newClassifier(t, testutils.OrderTransitions(), classifier.WithHooks(domain.Hooks{
		OnClassify:    func(v domain.Verdict) { verdicts = append(verdicts, v) },
		OnCacheLookup: func(_ domain.QueryKind, hit bool) { lookups[hit]++ },
	}))

	c.Classify(s("pending"), s("processed"))
	c.Classify(s("pending"), s("processed"))

	require.Len(t, verdicts, 2)
	assert.Equal(t, domain.Future, verdicts[1].Outcome)
	assert.Equal(t, 2, lookups[false])
	assert.Equal(t, 2, lookups[true])
}

func TestClassify_Concurrent(t *testing.T) {
	c := newClassifier(t, testutils.ShippingTransitions(), classifier.WithCacheSize(2))
	reference := newClassifier(t, testutils.ShippingTransitions(), classifier.WithoutCache())
	statuses := reference.Graph().Statuses()

	var wg sync.WaitGroup
	errs := make(chan string, len(statuses)*len(statuses))
	for _, from := range statuses {
		wg.Add(1)
		go func(from domain.Status) {
			defer wg.Done()
			for _, to := range statuses {
				if got, want := c.Classify(from, to), reference.Classify(from, to); got != want {
					errs <- fmt.Sprintf("%s: got %s want %s", got, got.Outcome, want.Outcome)
				}
			}
		}(from)
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
