package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/statusmap/pkg/domain"
)

const namespace = "statusmap"

// Metrics holds the Prometheus collectors for classifier activity.
type Metrics struct {
	Classifications *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "classifications_total",
				Help:      "Total number of transition classifications by outcome.",
			},
			[]string{"map", "outcome"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reachability_cache_lookups_total",
				Help:      "Total number of reachability cache lookups by query kind and result.",
			},
			[]string{"map", "kind", "result"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Classifications, m.CacheLookups} {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("failed to register collector: %w", err)
			}
		}
	}

	return m, nil
}

// Hooks returns lifecycle hooks recording activity of the named map.
func (m *Metrics) Hooks(mapName string) domain.Hooks {
	return domain.Hooks{
		OnClassify: func(v domain.Verdict) {
			m.Classifications.WithLabelValues(mapName, v.Outcome.String()).Inc()
		},
		OnCacheLookup: func(kind domain.QueryKind, hit bool) {
			result := "miss"
			if hit {
				result = "hit"
			}
			m.CacheLookups.WithLabelValues(mapName, string(kind), result).Inc()
		},
	}
}

// Forget drops every series of the named map, e.g. after it was removed.
func (m *Metrics) Forget(mapName string) {
	m.Classifications.DeletePartialMatch(prometheus.Labels{"map": mapName})
	m.CacheLookups.DeletePartialMatch(prometheus.Labels{"map": mapName})
}
