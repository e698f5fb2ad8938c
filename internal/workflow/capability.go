package workflow

import "context"

// FragmentFunc receives incremental fragments of an answer as the
// generation capability produces them. Callers pass nil when they do not
// want streaming delivery.
type FragmentFunc func(fragment string)

// Retriever fetches the top-k context chunks for a query. It must be a pure
// query: no side effects on the underlying index. An empty result is valid.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Chunk, error)
}

// Grader decides whether a single chunk of text is relevant to the query.
type Grader interface {
	GradeRelevance(ctx context.Context, query, chunk string) (bool, error)
}

// Rewriter reformulates a query to improve retrieval recall.
type Rewriter interface {
	Rewrite(ctx context.Context, conversation []Turn, query string) (string, error)
}

// Generator is the text-generation capability.
type Generator interface {
	// Complete sends a free-form prompt with the conversation as context and
	// returns the model's raw text.
	Complete(ctx context.Context, conversation []Turn, prompt string) (string, error)

	// Generate produces the final answer for query from the given context
	// chunks. When emit is non-nil, fragments are delivered through it as
	// they arrive; the returned string is always the full concatenated text.
	Generate(ctx context.Context, conversation []Turn, query string, chunks []Chunk, emit FragmentFunc) (string, error)
}

// Capabilities bundles the four external service boundaries the graph
// depends on.
type Capabilities struct {
	Retriever Retriever
	Grader    Grader
	Rewriter  Rewriter
	Generator Generator
}
