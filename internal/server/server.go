// Package server exposes the question-answering workflow over HTTP: a JSON
// query endpoint with optional server-sent-event streaming, health, and
// Prometheus metrics.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Divas-Gupta30/mixrag-agent/internal/workflow"
)

type Server struct {
	router   *mux.Router
	graph    *workflow.Graph
	sessions *SessionStore
}

func New(graph *workflow.Graph, sessions *SessionStore) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		graph:    graph,
		sessions: sessions,
	}
	s.router.HandleFunc("/query", s.handleQuery).Methods("POST")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler())
	return s
}

// Router returns the configured handler for mounting in an http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

type queryRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
	Stream    bool   `json:"stream"`
}

type queryResponse struct {
	SessionID string `json:"session_id"`
	workflow.Result
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	ctx := r.Context()
	conversation, err := s.sessions.Conversation(ctx, req.SessionID)
	if err != nil {
		// Session memory is best-effort; answer without history.
		log.Printf("session load failed for %s: %v", req.SessionID, err)
	}

	if req.Stream {
		s.streamQuery(w, r, req, conversation)
		return
	}

	result, err := s.graph.Run(ctx, conversation, req.Query, nil)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("could not answer: %v", err))
		return
	}

	s.remember(r, req.SessionID, req.Query, result.AnswerText)
	writeJSON(w, http.StatusOK, queryResponse{SessionID: req.SessionID, Result: *result})
}

// streamQuery delivers answer fragments as server-sent events, followed by a
// final event carrying the full result. Client disconnect cancels the run
// through the request context.
func (s *Server) streamQuery(w http.ResponseWriter, r *http.Request, req queryRequest, conversation []workflow.Turn) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	emit := func(fragment string) {
		data, _ := json.Marshal(map[string]string{"fragment": fragment})
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	result, err := s.graph.Run(r.Context(), conversation, req.Query, emit)
	if err != nil {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", data)
		flusher.Flush()
		return
	}

	s.remember(r, req.SessionID, req.Query, result.AnswerText)

	data, _ := json.Marshal(queryResponse{SessionID: req.SessionID, Result: *result})
	fmt.Fprintf(w, "event: result\ndata: %s\n\n", data)
	flusher.Flush()
}

func (s *Server) remember(r *http.Request, sessionID, query, answer string) {
	err := s.sessions.Append(r.Context(), sessionID,
		workflow.Turn{Role: workflow.RoleUser, Text: query},
		workflow.Turn{Role: workflow.RoleAssistant, Text: answer},
	)
	if err != nil {
		log.Printf("session save failed for %s: %v", sessionID, err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "healthy"}
	if err := s.sessions.Ping(r.Context()); err != nil {
		status["redis"] = "unreachable"
	}
	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
