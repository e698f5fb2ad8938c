package workflow

import "context"

// retrieveNode fetches candidate context for the current query. The previous
// run's chunks are always replaced, never appended to. A retrieval error on
// the adaptive path is unrecoverable and is handed to the orchestrator.
func (g *Graph) retrieveNode(ctx context.Context, s *State) (route, error) {
	chunks, err := g.caps.Retriever.Retrieve(ctx, s.Query, g.cfg.RetrieveK)
	if err != nil {
		return 0, capabilityErr("retrieve", err)
	}
	s.Chunks = chunks
	return routeGrade, nil
}
