package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Divas-Gupta30/mixrag-agent/internal/config"
	"github.com/Divas-Gupta30/mixrag-agent/internal/ingestion"
	"github.com/Divas-Gupta30/mixrag-agent/internal/llm"
	"github.com/Divas-Gupta30/mixrag-agent/internal/processing"
	"github.com/Divas-Gupta30/mixrag-agent/internal/server"
	"github.com/Divas-Gupta30/mixrag-agent/internal/storage"
	"github.com/Divas-Gupta30/mixrag-agent/internal/workflow"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: agent <index|query|serve> [flags]")
		os.Exit(1)
	}

	cfg := config.Load()

	switch os.Args[1] {
	case "index":
		runIndex(cfg, os.Args[2:])
	case "query":
		runQuery(cfg, os.Args[2:])
	case "serve":
		runServe(cfg, os.Args[2:])
	default:
		fmt.Println("expected 'index', 'query' or 'serve' subcommands")
		os.Exit(1)
	}
}

func runIndex(cfg config.Config, args []string) {
	indexCmd := flag.NewFlagSet("index", flag.ExitOnError)
	path := indexCmd.String("path", "", "path to folder to index")
	urls := indexCmd.String("urls", "", "comma separated web URLs to index")
	driveFolder := indexCmd.String("drive-folder", "", "Google Drive folder ID to index")
	driveCreds := indexCmd.String("drive-credentials", "", "path to Drive service account JSON")
	indexCmd.Parse(args)

	if *path == "" && *urls == "" && *driveFolder == "" {
		fmt.Println("Please provide -path, -urls, or -drive-folder")
		os.Exit(1)
	}

	ctx := context.Background()
	store := openStore(ctx, cfg)
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal("schema:", err)
	}

	var docs []ingestion.Document

	if *path != "" {
		log.Println("Loading local files from:", *path)
		local, err := ingestion.LoadLocalDocuments(*path)
		if err != nil {
			log.Fatal("load files:", err)
		}
		docs = append(docs, local...)
	}

	for _, u := range strings.Split(*urls, ",") {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		log.Println("Fetching URL:", u)
		doc, err := ingestion.FetchURL(ctx, u)
		if err != nil {
			log.Println("skip url:", u, "err:", err)
			continue
		}
		docs = append(docs, doc)
	}

	if *driveFolder != "" {
		if *driveCreds == "" {
			fmt.Println("-drive-folder requires -drive-credentials")
			os.Exit(1)
		}
		log.Println("Loading Google Drive folder:", *driveFolder)
		driveDocs, err := ingestion.LoadDriveFolder(ctx, *driveCreds, *driveFolder)
		if err != nil {
			log.Fatal("load drive:", err)
		}
		docs = append(docs, driveDocs...)
	}

	embedder := processing.NewEmbedder(cfg.OllamaURL, cfg.EmbedModel, cfg.CapabilityTimeout)
	indexed := 0
	for _, doc := range docs {
		log.Println("Indexing:", doc.Name)
		if err := store.DeleteSource(ctx, doc.Name); err != nil {
			log.Println("clear old chunks:", doc.Name, "err:", err)
		}
		chunks := processing.ChunkText(doc.Text)
		if len(chunks) == 0 {
			log.Println("skip empty document:", doc.Name)
			continue
		}
		embs, err := embedder.EmbedChunks(ctx, chunks)
		if err != nil {
			log.Println("embed error:", doc.Name, "err:", err)
			continue
		}
		for i := range chunks {
			if err := store.InsertChunk(ctx, doc.Name, doc.Origin, i, chunks[i], embs[i]); err != nil {
				log.Println("db insert error:", err)
			}
		}
		indexed++
	}
	fmt.Printf("Indexing complete: %d of %d documents indexed.\n", indexed, len(docs))
}

func runQuery(cfg config.Config, args []string) {
	queryCmd := flag.NewFlagSet("query", flag.ExitOnError)
	queryText := queryCmd.String("q", "", "query text")
	stream := queryCmd.Bool("stream", false, "print the answer as it is generated")
	queryCmd.Parse(args)

	if *queryText == "" {
		fmt.Println("Please provide -q \"your query\"")
		os.Exit(1)
	}

	ctx := context.Background()
	store := openStore(ctx, cfg)
	defer store.Close()

	graph := newGraph(cfg, store, nil)

	var emit workflow.FragmentFunc
	if *stream {
		emit = func(fragment string) { fmt.Print(fragment) }
	}

	result, err := graph.Run(ctx, nil, *queryText, emit)
	if err != nil {
		log.Fatal(err)
	}

	if *stream {
		fmt.Println()
	} else {
		fmt.Println("Answer:", result.AnswerText)
	}
	if len(result.Citations) > 0 {
		fmt.Println("Sources:", strings.Join(result.Citations, ", "))
	}
	if result.UsedFallback {
		fmt.Println("(answered via fallback pipeline)")
	}
}

func runServe(cfg config.Config, args []string) {
	serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
	serveCmd.Parse(args)

	ctx := context.Background()
	store := openStore(ctx, cfg)
	defer store.Close()

	sessions := server.NewSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer sessions.Close()
	if err := sessions.Ping(ctx); err != nil {
		log.Printf("Warning: Redis unreachable, session memory disabled: %v", err)
	}

	graph := newGraph(cfg, store, server.Analytics())
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(graph, sessions).Router(),
	}

	go func() {
		log.Printf("Agent server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

func openStore(ctx context.Context, cfg config.Config) *storage.Store {
	embedder := processing.NewEmbedder(cfg.OllamaURL, cfg.EmbedModel, cfg.CapabilityTimeout)
	store, err := storage.Open(ctx, cfg.DatabaseURL, embedder)
	if err != nil {
		log.Fatal("DB init:", err)
	}
	return store
}

func newGraph(cfg config.Config, store *storage.Store, analytics workflow.AnalyticsFunc) *workflow.Graph {
	client := llm.NewClient(cfg.OllamaURL, cfg.GenerateModel, cfg.CapabilityTimeout)
	return workflow.New(workflow.Capabilities{
		Retriever: store,
		Grader:    client,
		Rewriter:  client,
		Generator: client,
	}, workflow.Config{
		MaxRewrites: cfg.MaxRewrites,
		RetrieveK:   cfg.RetrieveK,
		Analytics:   analytics,
	})
}
