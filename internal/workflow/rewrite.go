package workflow

import (
	"context"
	"log"
	"strings"
)

// rewriteNode reformulates the query and loops back to retrieval. A failed
// rewrite call reuses the query unchanged; the counter still advances so the
// loop bound holds either way.
func (g *Graph) rewriteNode(ctx context.Context, s *State) (route, error) {
	rewritten, err := g.caps.Rewriter.Rewrite(ctx, s.Conversation, s.Query)
	if err != nil {
		log.Printf("rewrite failed, reusing query unchanged: %v", err)
	} else if q := strings.TrimSpace(rewritten); q != "" {
		s.Query = q
	}
	s.RewriteCount++
	return routeRetrieve, nil
}
