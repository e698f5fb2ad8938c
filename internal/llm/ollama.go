// Package llm backs the workflow's generation, grading, and rewrite
// capabilities with a local Ollama server.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Divas-Gupta30/mixrag-agent/internal/workflow"
)

const DefaultBaseURL = "http://localhost:11434"

// request body for the Ollama generate API
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Streaming responses arrive as { "response": "...", "done": false } chunks;
// non-streaming calls return a single object of the same shape.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Client calls an Ollama server. It implements workflow.Generator,
// workflow.Grader, and workflow.Rewriter.
type Client struct {
	baseURL string
	model   string
	httpc   *http.Client
}

func NewClient(baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Complete runs a single non-streaming prompt with the conversation rendered
// as context.
func (c *Client) Complete(ctx context.Context, conversation []workflow.Turn, prompt string) (string, error) {
	full := prompt
	if conv := renderConversation(conversation); conv != "" {
		full = "Conversation so far:\n" + conv + "\n\n" + prompt
	}
	return c.complete(ctx, full)
}

// Generate produces the final answer, streaming fragments through emit when
// it is non-nil.
func (c *Client) Generate(ctx context.Context, conversation []workflow.Turn, query string, chunks []workflow.Chunk, emit workflow.FragmentFunc) (string, error) {
	prompt := answerPrompt(conversation, query, chunks)
	if emit == nil {
		return c.complete(ctx, prompt)
	}
	return c.stream(ctx, prompt, emit)
}

// GradeRelevance asks for a binary yes/no on one chunk.
func (c *Client) GradeRelevance(ctx context.Context, query, chunk string) (bool, error) {
	reply, err := c.complete(ctx, gradePrompt(query, chunk))
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(reply)), "yes"), nil
}

// Rewrite reformulates the query for better retrieval recall.
func (c *Client) Rewrite(ctx context.Context, conversation []workflow.Turn, query string) (string, error) {
	reply, err := c.complete(ctx, rewritePrompt(conversation, query))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.post(ctx, generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding ollama response: %w", err)
	}
	return out.Response, nil
}

func (c *Client) stream(ctx context.Context, prompt string, emit workflow.FragmentFunc) (string, error) {
	resp, err := c.post(ctx, generateRequest{Model: c.model, Prompt: prompt, Stream: true})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var full strings.Builder
	decoder := json.NewDecoder(resp.Body)
	for {
		var chunk generateResponse
		if err := decoder.Decode(&chunk); err == io.EOF {
			break
		} else if err != nil {
			return "", fmt.Errorf("decoding ollama stream: %w", err)
		}
		if chunk.Response != "" {
			full.WriteString(chunk.Response)
			emit(chunk.Response)
		}
		if chunk.Done {
			break
		}
	}
	return full.String(), nil
}

func (c *Client) post(ctx context.Context, body generateRequest) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ollama: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("ollama error: %s", string(b))
	}
	return resp, nil
}
