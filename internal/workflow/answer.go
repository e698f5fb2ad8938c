package workflow

import "context"

// answerNode produces the final answer from the relevant chunk subset,
// streaming fragments to emit when the caller asked for them. When grading
// left nothing relevant (budget spent), whatever chunks exist are used as
// best-effort context. A generation error here is unrecoverable; the
// orchestrator turns it into a fallback run.
func (g *Graph) answerNode(ctx context.Context, s *State, emit FragmentFunc) (route, error) {
	chunks := s.relevant()
	if len(chunks) == 0 {
		chunks = s.Chunks
	}

	text, err := g.caps.Generator.Generate(ctx, s.Conversation, s.Query, chunks, emit)
	if err != nil {
		return 0, capabilityErr("generate", err)
	}

	s.Terminal = &Answer{
		Text:      text,
		Citations: citations(chunks),
	}
	return routeDone, nil
}
