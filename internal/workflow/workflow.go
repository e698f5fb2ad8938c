// Package workflow implements the agentic question-answering graph: a small
// state machine that decides per query whether to retrieve context, grades
// what came back, rewrites the query a bounded number of times, and produces
// a final answer — degrading to a single-pass retrieve-then-generate
// pipeline when the adaptive path hits an unrecoverable capability error.
package workflow

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Defaults applied by New when Config leaves them zero.
const (
	DefaultMaxRewrites = 2
	DefaultRetrieveK   = 5
)

// route is a node's tagged decision about where the run goes next. Keeping
// the set closed means there is no such thing as an unknown edge at runtime.
type route int

const (
	routeStart route = iota // generate_query_or_respond, the entry node
	routeRetrieve
	routeGrade
	routeRewrite
	routeAnswer
	routeDone
)

// Config tunes a Graph.
type Config struct {
	// MaxRewrites bounds the rewrite loop. Zero means DefaultMaxRewrites.
	MaxRewrites int
	// RetrieveK is how many chunks each retrieval asks for. Zero means
	// DefaultRetrieveK.
	RetrieveK int
	// Analytics, when set, receives RunMetrics after every run.
	Analytics AnalyticsFunc
}

// Graph executes the workflow. It holds no per-run state; a single Graph is
// safe for concurrent runs as long as each run owns its own State.
type Graph struct {
	caps Capabilities
	cfg  Config
}

func New(caps Capabilities, cfg Config) *Graph {
	if cfg.MaxRewrites <= 0 {
		cfg.MaxRewrites = DefaultMaxRewrites
	}
	if cfg.RetrieveK <= 0 {
		cfg.RetrieveK = DefaultRetrieveK
	}
	return &Graph{caps: caps, cfg: cfg}
}

// Run executes one query against the graph. The conversation is caller-owned
// session memory; Run never mutates it. When emit is non-nil the final
// answer is also streamed through it fragment by fragment.
//
// Run returns an error only when the fallback pipeline itself fails; every
// other failure mode still yields an answer.
func (g *Graph) Run(ctx context.Context, conversation []Turn, query string, emit FragmentFunc) (*Result, error) {
	s := newState(conversation, query)
	m := newRunMetrics()
	started := time.Now()

	next := routeStart
	for s.Terminal == nil {
		var (
			name string
			r    route
			err  error
		)
		stepStart := time.Now()
		switch next {
		case routeStart:
			name = NodeQueryOrRespond
			r, err = g.decideNode(ctx, s)
		case routeRetrieve:
			name = NodeRetrieve
			r, err = g.retrieveNode(ctx, s)
		case routeGrade:
			name = NodeGrade
			r, err = g.gradeNode(ctx, s)
		case routeRewrite:
			name = NodeRewrite
			r, err = g.rewriteNode(ctx, s)
		case routeAnswer:
			name = NodeAnswer
			r, err = g.answerNode(ctx, s, emit)
		default:
			return nil, fmt.Errorf("workflow: invalid route %d", next)
		}
		m.NodeLatency[name] += time.Since(stepStart)

		if err != nil {
			log.Printf("node %s failed, switching to fallback: %v", name, err)
			if ferr := g.fallback(ctx, s, emit, m); ferr != nil {
				g.finish(s, m, started, true)
				return nil, ferr
			}
			break
		}
		next = r
	}

	g.finish(s, m, started, false)
	return &Result{
		AnswerText:   s.Terminal.Text,
		Citations:    s.Terminal.Citations,
		UsedFallback: s.UsedFallback,
		RewriteCount: s.RewriteCount,
	}, nil
}

// fallback is the non-adaptive pipeline: retrieve once, generate once. It is
// entered at most once per run and never falls back further; a generation
// failure here ends the run with ErrFallbackFailed.
func (g *Graph) fallback(ctx context.Context, s *State, emit FragmentFunc, m *RunMetrics) error {
	s.UsedFallback = true
	start := time.Now()
	defer func() { m.NodeLatency[NodeFallback] += time.Since(start) }()

	chunks, err := g.caps.Retriever.Retrieve(ctx, s.Query, g.cfg.RetrieveK)
	if err != nil {
		log.Printf("fallback retrieval failed, generating without context: %v", err)
		chunks = nil
	}
	s.Chunks = chunks

	text, err := g.caps.Generator.Generate(ctx, s.Conversation, s.Query, chunks, emit)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFallbackFailed, err)
	}
	s.Terminal = &Answer{
		Text:      text,
		Citations: citations(chunks),
	}
	return nil
}

func (g *Graph) finish(s *State, m *RunMetrics, started time.Time, failed bool) {
	if g.cfg.Analytics == nil {
		return
	}
	m.Total = time.Since(started)
	m.RewriteCount = s.RewriteCount
	m.ChunksRetrieved = len(s.Chunks)
	m.ChunksRelevant = len(s.relevant())
	m.UsedFallback = s.UsedFallback
	m.Failed = failed
	g.cfg.Analytics(*m)
}
