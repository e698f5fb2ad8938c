package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Divas-Gupta30/mixrag-agent/internal/workflow"
)

// Prometheus metrics
var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rag_queries_total",
			Help: "Total number of answered queries",
		},
		[]string{"path", "status"},
	)
	nodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "rag_node_duration_seconds",
			Help: "Duration of workflow node executions",
		},
		[]string{"node"},
	)
	rewritesPerRun = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rag_rewrites_per_run",
			Help:    "Query rewrites consumed per run",
			Buckets: []float64{0, 1, 2, 3},
		},
	)
	chunksRetrieved = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rag_chunks_retrieved",
			Help:    "Chunks retrieved per run",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)
	chunksRelevant = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rag_chunks_relevant",
			Help:    "Chunks graded relevant per run",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)
)

func init() {
	prometheus.MustRegister(queriesTotal)
	prometheus.MustRegister(nodeDuration)
	prometheus.MustRegister(rewritesPerRun)
	prometheus.MustRegister(chunksRetrieved)
	prometheus.MustRegister(chunksRelevant)
}

// Analytics adapts the workflow's per-run metrics hook onto Prometheus.
func Analytics() workflow.AnalyticsFunc {
	return func(m workflow.RunMetrics) {
		path := "adaptive"
		if m.UsedFallback {
			path = "fallback"
		}
		status := "success"
		if m.Failed {
			status = "failure"
		}
		queriesTotal.WithLabelValues(path, status).Inc()

		for node, d := range m.NodeLatency {
			nodeDuration.WithLabelValues(node).Observe(d.Seconds())
		}
		rewritesPerRun.Observe(float64(m.RewriteCount))
		chunksRetrieved.Observe(float64(m.ChunksRetrieved))
		chunksRelevant.Observe(float64(m.ChunksRelevant))
	}
}
