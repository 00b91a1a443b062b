package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics tracks the content generation pipeline and cache.
type PipelineMetrics struct {
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	cacheReads  *prometheus.CounterVec
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_generations_total",
		Help: "Content generation attempts by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_generation_duration_seconds",
		Help:    "End-to-end duration of the generation pipeline.",
		Buckets: []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
	}, []string{"stage"})
	cacheReads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_cache_reads_total",
		Help: "Cache lookups by result (hit, miss, expired).",
	}, []string{"result"})
	reg.MustRegister(generations, duration, cacheReads)
	return &PipelineMetrics{
		generations: generations,
		duration:    duration,
		cacheReads:  cacheReads,
	}
}

// ObserveStage records how long a pipeline stage took.
func (p *PipelineMetrics) ObserveStage(stage string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(stage)).Observe(duration.Seconds())
}

// IncGeneration counts one pipeline run with the given outcome.
func (p *PipelineMetrics) IncGeneration(outcome string) {
	if p == nil || p.generations == nil {
		return
	}
	p.generations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCacheRead counts one cache lookup result.
func (p *PipelineMetrics) IncCacheRead(result string) {
	if p == nil || p.cacheReads == nil {
		return
	}
	p.cacheReads.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
