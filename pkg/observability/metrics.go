package observability

import (
	"context"
	"slices"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/aretw0/skylark/pkg/monday"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for skylark_tool_calls_total.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ToolOther labels operations the Monday.com server does not publish.
const ToolOther = "other"

func toolLabel(name string) string {
	if slices.Contains(monday.Operations, name) {
		return name
	}
	return ToolOther
}

// Metrics holds the Prometheus collectors for chat turns.
type Metrics struct {
	Steps        *prometheus.HistogramVec
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec
	Cursors      prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skylark_turn_steps",
				Help:    "Model steps taken per turn, by final finish reason",
				Buckets: []float64{1, 2, 3, 4, 5, 8},
			},
			[]string{"finish_reason"},
		),
		ToolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skylark_tool_calls_total",
				Help: "Total number of business-data tool calls",
			},
			[]string{"tool", "outcome"},
		),
		ToolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "skylark_tool_duration_seconds",
				Help: "Duration of business-data tool calls",
			},
			[]string{"tool"},
		),
		Cursors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skylark_hallucinated_cursor_total",
			Help: "Placeholder pagination cursors stripped from model arguments",
		}),
	}
	reg.MustRegister(m.Steps, m.ToolCalls, m.ToolDuration, m.Cursors)
	return m
}

// Hooks records metrics for step, tool and cursor events.
// Only the step that ends a turn is observed on the steps histogram.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepFinish: func(_ context.Context, e *domain.StepEvent) {
			if e.Final {
				m.Steps.WithLabelValues(e.FinishReason).Observe(float64(e.Step))
			}
		},
		OnToolReturn: func(_ context.Context, e *domain.ToolEvent) {
			outcome := OutcomeOK
			if e.IsError {
				outcome = OutcomeError
			}
			tool := toolLabel(e.ToolName)
			m.ToolCalls.WithLabelValues(tool, outcome).Inc()
			m.ToolDuration.WithLabelValues(tool).Observe(e.Duration.Seconds())
		},
		OnCursorStrip: func(context.Context, string) {
			m.Cursors.Inc()
		},
	}
}
