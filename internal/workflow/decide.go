package workflow

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	answerPrefix   = "ANSWER:"
	retrieveSignal = "RETRIEVE"
)

const decideInstruction = `Decide how to handle the user's question below.
If it can be answered from the conversation alone (a greeting, small talk, or
something already discussed), reply with:
ANSWER: <your answer>
If answering it needs information from the indexed documents, reply with the
single word:
RETRIEVE

Question: %s`

// decideNode asks the model whether the question needs document retrieval or
// can be answered directly. A failed or unparseable call defaults to
// retrieval: grounding the answer is safer than guessing.
func (g *Graph) decideNode(ctx context.Context, s *State) (route, error) {
	prompt := fmt.Sprintf(decideInstruction, s.Query)
	reply, err := g.caps.Generator.Complete(ctx, s.Conversation, prompt)
	if err != nil {
		log.Printf("query-or-respond call failed, defaulting to retrieval: %v", err)
		return routeRetrieve, nil
	}

	reply = strings.TrimSpace(reply)
	switch {
	case strings.HasPrefix(reply, answerPrefix):
		text := strings.TrimSpace(strings.TrimPrefix(reply, answerPrefix))
		if text == "" {
			return routeRetrieve, nil
		}
		s.Terminal = &Answer{Text: text}
		return routeDone, nil
	case strings.EqualFold(strings.TrimSuffix(reply, "."), retrieveSignal):
		return routeRetrieve, nil
	default:
		// Unparseable routing signal.
		return routeRetrieve, nil
	}
}
