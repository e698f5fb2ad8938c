package processing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// EmbeddingDim is the fixed dimension of the embedding vector.
const EmbeddingDim = 768

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embedder produces embedding vectors via the Ollama embeddings API.
type Embedder struct {
	url   string
	model string
	httpc *http.Client
}

func NewEmbedder(baseURL, model string, timeout time.Duration) *Embedder {
	return &Embedder{
		url:   strings.TrimRight(baseURL, "/") + "/api/embeddings",
		model: model,
		httpc: &http.Client{Timeout: timeout},
	}
}

// EmbedChunks produces one embedding per chunk.
func (e *Embedder) EmbedChunks(ctx context.Context, chunks []string) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, errors.New("no chunks")
	}
	out := make([][]float32, len(chunks))
	for i, chunk := range chunks {
		emb, err := e.embed(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed embedding chunk %d: %w", i, err)
		}
		out[i] = emb
	}
	return out, nil
}

// QueryEmbedding produces an embedding for a query string.
func (e *Embedder) QueryEmbedding(ctx context.Context, query string) ([]float32, error) {
	if query == "" {
		return nil, errors.New("empty query")
	}
	return e.embed(ctx, query)
}

func (e *Embedder) embed(ctx context.Context, text string) ([]float32, error) {
	data, _ := json.Marshal(embeddingRequest{Model: e.model, Prompt: text})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama error: %s", string(body))
	}

	var out embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed decode response: %w", err)
	}
	if len(out.Embedding) != EmbeddingDim {
		return nil, fmt.Errorf("expected embedding dim %d, got %d", EmbeddingDim, len(out.Embedding))
	}
	return out.Embedding, nil
}
