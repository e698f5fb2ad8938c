package llm

import (
	"fmt"
	"strings"

	"github.com/Divas-Gupta30/mixrag-agent/internal/workflow"
)

func renderConversation(conversation []workflow.Turn) string {
	var b strings.Builder
	for _, t := range conversation {
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func gradePrompt(query, chunk string) string {
	return fmt.Sprintf(`You are a grader assessing the relevance of a retrieved document to a user question.
If the document contains keywords or meaning related to the question, grade it as relevant.
Answer with a single word: yes or no.

Document:
%s

Question: %s`, chunk, query)
}

func rewritePrompt(conversation []workflow.Turn, query string) string {
	var b strings.Builder
	if conv := renderConversation(conversation); conv != "" {
		b.WriteString("Conversation so far:\n")
		b.WriteString(conv)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, `The question below did not retrieve relevant documents.
Look at it and reason about the underlying semantic intent, then formulate an
improved question. Reply with the improved question only.

Question: %s`, query)
	return b.String()
}

func answerPrompt(conversation []workflow.Turn, query string, chunks []workflow.Chunk) string {
	var b strings.Builder
	b.WriteString("You are an assistant for question-answering tasks.\n")
	if len(chunks) > 0 {
		b.WriteString("Use the following retrieved context to answer the question. If the context does not contain the answer, say you don't know. Keep the answer concise.\n\n")
		for i, c := range chunks {
			fmt.Fprintf(&b, "Context %d (source: %s):\n%s\n\n", i+1, c.Source, c.Text)
		}
	} else {
		b.WriteString("No supporting documents were found; answer from general knowledge and say so if you are unsure.\n\n")
	}
	if conv := renderConversation(conversation); conv != "" {
		b.WriteString("Conversation so far:\n")
		b.WriteString(conv)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Question: %s", query)
	return b.String()
}
