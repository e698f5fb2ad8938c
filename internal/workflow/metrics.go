package workflow

import "time"

// Node names as reported in RunMetrics.NodeLatency.
const (
	NodeQueryOrRespond = "generate_query_or_respond"
	NodeRetrieve       = "retrieve_documents"
	NodeGrade          = "grade_documents"
	NodeRewrite        = "rewrite_question"
	NodeAnswer         = "generate_answer"
	NodeFallback       = "fallback"
)

// RunMetrics summarizes one run for external aggregation. The core emits it
// through the configured AnalyticsFunc and keeps nothing itself.
type RunMetrics struct {
	NodeLatency     map[string]time.Duration
	Total           time.Duration
	RewriteCount    int
	ChunksRetrieved int
	ChunksRelevant  int
	UsedFallback    bool
	Failed          bool
}

// AnalyticsFunc receives RunMetrics after every run, including failed ones.
type AnalyticsFunc func(RunMetrics)

func newRunMetrics() *RunMetrics {
	return &RunMetrics{NodeLatency: make(map[string]time.Duration)}
}
