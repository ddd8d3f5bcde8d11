package observability

import (
	"context"

	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the importer collectors.
type Metrics struct {
	registry  *prometheus.Registry
	replaced  *prometheus.CounterVec
	skipped   *prometheus.CounterVec
	saveSteps *prometheus.CounterVec
	imports   *prometheus.CounterVec
}

// NewMetrics registers the importer collectors on reg, or on a fresh
// registry when reg is nil.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: reg,
		replaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sceneswap_nodes_replaced_total",
				Help: "Total number of collision volumes replaced by trigger volumes",
			},
			[]string{"from_kind", "to_kind"},
		),
		skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sceneswap_nodes_skipped_total",
				Help: "Total number of tagged nodes left untouched",
			},
			[]string{"kind"},
		),
		saveSteps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sceneswap_save_steps_total",
				Help: "Persistence steps by outcome",
			},
			[]string{"step", "outcome"},
		),
		imports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sceneswap_imports_total",
				Help: "Post-import runs by outcome",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.replaced, m.skipped, m.saveSteps, m.imports)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeReplaced: func(ctx context.Context, e *domain.ReplaceEvent) {
			m.replaced.WithLabelValues(string(e.FromKind), string(e.ToKind)).Inc()
		},
		OnNodeSkipped: func(ctx context.Context, e *domain.WarningEvent) {
			m.skipped.WithLabelValues(string(e.Warning.Kind)).Inc()
		},
		OnSaveStep: func(ctx context.Context, e *domain.SaveEvent) {
			m.saveSteps.WithLabelValues(string(e.Step), outcome(e.Err)).Inc()
		},
	}
}

// ObserveImport counts one finished import.
func (m *Metrics) ObserveImport(err error) {
	m.imports.WithLabelValues(outcome(err)).Inc()
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
