// Package metrics records what a generation run produced as Prometheus metrics.
//
// The generator is a batch job with no network surface, so metrics are not
// served; they are written once per run in text exposition format, suitable
// for the node_exporter textfile collector.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Status label values for visualgen_artifacts_total.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Fallback reasons for visualgen_fallbacks_total.
const (
	ReasonSyntheticData = "synthetic_data"
	ReasonFallbackFont  = "fallback_font"
)

var defaultBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Recorder owns a private registry and the run's collectors.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	artifacts *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// New creates a Recorder with its own registry.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		namespace: "visualgen",
		buckets:   defaultBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.artifacts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "artifacts_total",
		Help:      "Artifacts attempted, by kind and outcome.",
	}, []string{"kind", "status"})
	r.fallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "fallbacks_total",
		Help:      "Recoverable substitutions made while generating artifacts.",
	}, []string{"reason"})
	r.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "render_seconds",
		Help:      "Wall time spent producing one artifact.",
		Buckets:   r.buckets,
	}, []string{"kind"})

	for _, c := range []prometheus.Collector{r.artifacts, r.fallbacks, r.duration} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegister, err)
		}
	}
	return r, nil
}

// Artifact counts one attempted artifact of the given kind.
func (r *Recorder) Artifact(kind string, err error) {
	if r == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusFailed
	}
	r.artifacts.WithLabelValues(kind, status).Inc()
}

// Fallback counts one recoverable substitution.
func (r *Recorder) Fallback(reason string) {
	if r == nil {
		return
	}
	r.fallbacks.WithLabelValues(reason).Inc()
}

// Observe records how long an artifact of the given kind took, in seconds.
func (r *Recorder) Observe(kind string, seconds float64) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(kind).Observe(seconds)
}

// Gatherer exposes the private registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current values to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return errors.New("metrics: nil recorder")
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
