package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/berfenger/luxtronik2mqtt/internal/core/service"
	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "luxtronik"

// Metrics collects bridge metrics on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	wireDuration *prometheus.HistogramVec
	tickFailures prometheus.Counter

	statsMu sync.RWMutex
	stats   func() service.ConnectionStats
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		wireDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wire_operation_duration_seconds",
			Help:      "Duration of controller operations.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"operation"}),
		tickFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_update_failures_total",
			Help:      "Entity update rounds that failed to refresh the controller data.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.wireDuration,
		m.tickFailures,
		m.statsCounter("reads_total", "Reads performed against the controller.",
			func(s service.ConnectionStats) uint64 { return s.Reads }),
		m.statsCounter("coalesced_refreshes_total", "Refresh calls skipped inside the update window.",
			func(s service.ConnectionStats) uint64 { return s.Coalesced }),
		m.statsCounter("read_failures_total", "Controller reads that failed.",
			func(s service.ConnectionStats) uint64 { return s.Failures }),
	)
	return m
}

func (m *Metrics) statsCounter(name, help string, pick func(service.ConnectionStats) uint64) prometheus.CounterFunc {
	return prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, func() float64 {
		m.statsMu.RLock()
		defer m.statsMu.RUnlock()
		if m.stats == nil {
			return 0
		}
		return float64(pick(m.stats()))
	})
}

// Instrument times every wire operation of a heatpump reader.
func (m *Metrics) Instrument() *luxtronik.Instrument {
	if m == nil {
		return nil
	}
	return &luxtronik.Instrument{
		RecordTime: func(fnName string, d time.Duration) {
			m.wireDuration.WithLabelValues(fnName).Observe(d.Seconds())
		},
	}
}

// BindConnectionStats exposes the counters of a connection manager. A later
// call replaces the previous source, as happens when the owning actor restarts.
func (m *Metrics) BindConnectionStats(stats func() service.ConnectionStats) {
	if m == nil {
		return
	}
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	m.stats = stats
}

func (m *Metrics) TickFailed() {
	if m == nil {
		return
	}
	m.tickFailures.Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
