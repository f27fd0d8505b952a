package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Lexamplify/lexamplify/internal/blobstore"
	"github.com/Lexamplify/lexamplify/internal/config"
	"github.com/Lexamplify/lexamplify/internal/doctree"
	"github.com/Lexamplify/lexamplify/internal/history"
	"github.com/Lexamplify/lexamplify/internal/legalai"
	"github.com/Lexamplify/lexamplify/internal/pipeline"
	"github.com/Lexamplify/lexamplify/internal/store"
)

// DocumentStore is the persistence surface the handlers need. Satisfied by
// both the plain Postgres store and its cached wrapper.
type DocumentStore interface {
	CreateDocument(ctx context.Context, title, docType string, content *doctree.Node) (store.Document, error)
	GetDocument(ctx context.Context, id string) (store.Document, error)
	ListDocuments(ctx context.Context, limit int) ([]store.DocumentSummary, error)
	UpdateDocumentContent(ctx context.Context, id string, content *doctree.Node) (store.Document, error)
	DeleteDocument(ctx context.Context, id string) error
}

// Server is the HTTP API server for lexamplify.
type Server struct {
	router       chi.Router
	legal        *legalai.Service
	gemini       *legalai.GeminiClient
	docs         DocumentStore
	edits        *history.RedisLog
	archive      *blobstore.Store
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. The edit log and the
// source archive may be nil; the endpoints backed by them then report
// unavailable.
func NewServer(legal *legalai.Service, gemini *legalai.GeminiClient, docs DocumentStore, edits *history.RedisLog, archive *blobstore.Store, orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		legal:        legal,
		gemini:       gemini,
		docs:         docs,
		edits:        edits,
		archive:      archive,
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/legal-edit", s.handleLegalEdit)
		r.Get("/api/legal-edit/commands", s.handleCommands)
		r.Get("/api/stats/llm", s.handleLLMStats)

		r.Get("/api/documents", s.handleListDocuments)
		r.Post("/api/documents", s.handleCreateDocument)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Put("/api/documents/{docID}/content", s.handleUpdateDocumentContent)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
		r.Get("/api/documents/{docID}/history", s.handleDocumentHistory)
		r.Delete("/api/documents/{docID}/history", s.handleClearHistory)

		r.Post("/api/import", s.handleImport)
		r.Get("/api/import/{jobID}/status", s.handleImportStatus)
		r.Get("/api/import/{jobID}/source", s.handleImportSource)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
