package workflow

import (
	"context"
	"log"
)

// gradeNode assigns a binary relevance verdict to every retrieved chunk and
// picks the next step. One relevant chunk is enough to generate an answer.
// With zero relevant chunks the query is rewritten, unless the rewrite
// budget is spent, in which case we answer with whatever we have so the run
// always terminates.
//
// A failed grading call leaves that chunk irrelevant rather than aborting
// the run.
func (g *Graph) gradeNode(ctx context.Context, s *State) (route, error) {
	anyRelevant := false
	for i := range s.Chunks {
		ok, err := g.caps.Grader.GradeRelevance(ctx, s.Query, s.Chunks[i].Text)
		if err != nil {
			log.Printf("grading chunk %d from %s failed, treating as irrelevant: %v", s.Chunks[i].Index, s.Chunks[i].Source, err)
			s.Chunks[i].Verdict = VerdictIrrelevant
			continue
		}
		if ok {
			s.Chunks[i].Verdict = VerdictRelevant
			anyRelevant = true
		} else {
			s.Chunks[i].Verdict = VerdictIrrelevant
		}
	}

	if anyRelevant || s.RewriteCount >= g.cfg.MaxRewrites {
		return routeAnswer, nil
	}
	return routeRewrite, nil
}
