// Package metrics provides Prometheus instrumentation for the cube engine.
//
// Metrics are registered on a caller-supplied registry so several engines
// (and tests) never collide on the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cubestate"

// Reconstruction results.
const (
	ResultVerified   = "verified"
	ResultBestEffort = "best_effort"
)

// Metrics holds the engine's counters and gauges.
type Metrics struct {
	// MovesEnqueued counts primitive moves accepted into the queue.
	MovesEnqueued prometheus.Counter

	// MovesCommitted counts committed moves. Labels: axis (x, y, z)
	MovesCommitted *prometheus.CounterVec

	// IdleCommits counts commit signals that arrived with no active rotation.
	IdleCommits prometheus.Counter

	// QueueDepth is the number of pending moves.
	QueueDepth prometheus.Gauge

	// Rotating is 1 while a rotation is in flight.
	Rotating prometheus.Gauge

	// Resets counts state resets.
	Resets prometheus.Counter

	// ScramblesGenerated counts generated scrambles.
	ScramblesGenerated prometheus.Counter

	// Reconstructions counts reconstruct calls. Labels: result (verified, best_effort)
	Reconstructions *prometheus.CounterVec
}

// New creates and registers the metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MovesEnqueued: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sequencer",
			Name:      "moves_enqueued_total",
			Help:      "Primitive moves accepted into the queue.",
		}),
		MovesCommitted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sequencer",
			Name:      "moves_committed_total",
			Help:      "Moves applied to the cube, by axis.",
		}, []string{"axis"}),
		IdleCommits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sequencer",
			Name:      "idle_commits_total",
			Help:      "Commit signals received with no active rotation.",
		}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sequencer",
			Name:      "queue_depth",
			Help:      "Moves waiting to start.",
		}),
		Rotating: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sequencer",
			Name:      "rotating",
			Help:      "1 while a rotation is in progress.",
		}),
		Resets: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sequencer",
			Name:      "resets_total",
			Help:      "Resets to the solved state.",
		}),
		ScramblesGenerated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scramble",
			Name:      "generated_total",
			Help:      "Scrambles generated.",
		}),
		Reconstructions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "reconstructions_total",
			Help:      "Solutions produced, by result.",
		}, []string{"result"}),
	}
}

// ObserveQueue records the sequencer's externally visible state.
func (m *Metrics) ObserveQueue(depth int, rotating bool) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(depth))
	if rotating {
		m.Rotating.Set(1)
	} else {
		m.Rotating.Set(0)
	}
}

// RecordEnqueued adds n accepted moves.
func (m *Metrics) RecordEnqueued(n int) {
	if m == nil {
		return
	}
	m.MovesEnqueued.Add(float64(n))
}

// RecordCommit counts a committed move on the axis.
func (m *Metrics) RecordCommit(axis string) {
	if m == nil {
		return
	}
	m.MovesCommitted.WithLabelValues(axis).Inc()
}

// RecordIdleCommit counts a commit that found nothing to commit.
func (m *Metrics) RecordIdleCommit() {
	if m == nil {
		return
	}
	m.IdleCommits.Inc()
}

// RecordReset counts a reset.
func (m *Metrics) RecordReset() {
	if m == nil {
		return
	}
	m.Resets.Inc()
}

// RecordScramble counts a generated scramble.
func (m *Metrics) RecordScramble() {
	if m == nil {
		return
	}
	m.ScramblesGenerated.Inc()
}

// RecordReconstruction counts a reconstruct call.
func (m *Metrics) RecordReconstruction(bestEffort bool) {
	if m == nil {
		return
	}
	if bestEffort {
		m.Reconstructions.WithLabelValues(ResultBestEffort).Inc()
	} else {
		m.Reconstructions.WithLabelValues(ResultVerified).Inc()
	}
}
