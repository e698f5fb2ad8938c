package workflow

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the session conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Verdict is the relevance grade assigned to a retrieved chunk.
type Verdict int

const (
	VerdictUnset Verdict = iota
	VerdictRelevant
	VerdictIrrelevant
)

// Chunk is one retrieved span of source text. Source identifies the
// originating document or URL; Index is the chunk's position within it.
type Chunk struct {
	Text    string
	Source  string
	Index   int
	Verdict Verdict
}

// Answer is the terminal output of a run.
type Answer struct {
	Text      string
	Citations []string
}

// State is threaded through the graph for a single run. Only Conversation
// survives across runs; everything else is reinitialized per query.
type State struct {
	Conversation []Turn
	Query        string
	Chunks       []Chunk
	RewriteCount int
	UsedFallback bool
	Terminal     *Answer
}

func newState(conversation []Turn, query string) *State {
	return &State{
		Conversation: conversation,
		Query:        query,
	}
}

// relevant returns the chunks graded relevant, in retrieval order.
func (s *State) relevant() []Chunk {
	var out []Chunk
	for _, c := range s.Chunks {
		if c.Verdict == VerdictRelevant {
			out = append(out, c)
		}
	}
	return out
}

// citations collects the distinct source identifiers of the given chunks,
// preserving first-seen order.
func citations(chunks []Chunk) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range chunks {
		if c.Source == "" || seen[c.Source] {
			continue
		}
		seen[c.Source] = true
		out = append(out, c.Source)
	}
	return out
}

// Result is what a completed run hands back to the caller.
type Result struct {
	AnswerText   string   `json:"answer"`
	Citations    []string `json:"citations"`
	UsedFallback bool     `json:"used_fallback"`
	RewriteCount int      `json:"rewrite_count"`
}
