// Package storage keeps document chunks and their embeddings in Postgres
// with pgvector, and answers similarity queries for the workflow.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/Divas-Gupta30/mixrag-agent/internal/processing"
	"github.com/Divas-Gupta30/mixrag-agent/internal/workflow"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS vector;
CREATE TABLE IF NOT EXISTS chunks (
	id          SERIAL PRIMARY KEY,
	source      TEXT NOT NULL,
	origin      TEXT NOT NULL,
	chunk_index INT  NOT NULL,
	content     TEXT NOT NULL,
	embedding   VECTOR(768) NOT NULL
);`

// Store is the chunk store. It implements workflow.Retriever.
type Store struct {
	pool     *pgxpool.Pool
	embedder *processing.Embedder
}

func Open(ctx context.Context, url string, embedder *processing.Embedder) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &Store{pool: pool, embedder: embedder}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the chunks table and the pgvector extension.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// InsertChunk stores one chunk with its embedding. Indexing is a separate
// phase from querying; callers run it to completion before serving queries.
func (s *Store) InsertChunk(ctx context.Context, source, origin string, index int, content string, embedding []float32) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO chunks (source, origin, chunk_index, content, embedding) VALUES ($1, $2, $3, $4, $5)",
		source, origin, index, content, pgvector.NewVector(embedding))
	return err
}

// Retrieve embeds the query and returns the k nearest chunks in similarity
// order. It is a pure read; an empty result is not an error.
func (s *Store) Retrieve(ctx context.Context, query string, k int) ([]workflow.Chunk, error) {
	qemb, err := s.embedder.QueryEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		"SELECT source, chunk_index, content FROM chunks ORDER BY embedding <-> $1 LIMIT $2",
		pgvector.NewVector(qemb), k)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}
	defer rows.Close()

	var chunks []workflow.Chunk
	for rows.Next() {
		var c workflow.Chunk
		if err := rows.Scan(&c.Source, &c.Index, &c.Text); err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// DeleteSource removes every chunk of one source, for re-indexing.
func (s *Store) DeleteSource(ctx context.Context, source string) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM chunks WHERE source = $1", source)
	return err
}
