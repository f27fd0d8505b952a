package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lexamplify/lexamplify/internal/doctree"
	"github.com/Lexamplify/lexamplify/internal/legalai"
	"github.com/Lexamplify/lexamplify/internal/store"
)

type createDocumentPayload struct {
	Title   string        `json:"title"`
	DocType string        `json:"doc_type"`
	Content *doctree.Node `json:"content"`
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var payload createDocumentPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 8<<20)).Decode(&payload); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}
	if payload.DocType == "" {
		payload.DocType = string(legalai.DocTypeOther)
	}
	if !legalai.DocumentType(payload.DocType).Valid() {
		jsonError(w, "unknown doc_type: "+payload.DocType, http.StatusBadRequest)
		return
	}
	if payload.Content == nil {
		payload.Content = doctree.Doc(doctree.Paragraph(doctree.TextLeaf("")))
	}

	doc, err := s.docs.CreateDocument(r.Context(), payload.Title, payload.DocType, payload.Content)
	if err != nil {
		jsonError(w, "create document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.docs.GetDocument(r.Context(), chi.URLParam(r, "docID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "get document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.DefaultDocCap
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	docs, err := s.docs.ListDocuments(r.Context(), limit)
	if err != nil {
		jsonError(w, "list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

type updateContentPayload struct {
	Content *doctree.Node `json:"content"`
}

func (s *Server) handleUpdateDocumentContent(w http.ResponseWriter, r *http.Request) {
	var payload updateContentPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 8<<20)).Decode(&payload); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Content == nil {
		jsonError(w, "content is required", http.StatusBadRequest)
		return
	}

	doc, err := s.docs.UpdateDocumentContent(r.Context(), chi.URLParam(r, "docID"), payload.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "update document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.docs.DeleteDocument(r.Context(), docID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Drop history alongside the document.
	if s.edits != nil {
		if err := s.edits.Clear(r.Context(), docID); err != nil {
			s.log.Warn("history clear failed", "doc_id", docID, "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDocumentHistory(w http.ResponseWriter, r *http.Request) {
	if s.edits == nil {
		jsonError(w, "edit history unavailable", http.StatusServiceUnavailable)
		return
	}

	n := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			n = parsed
		}
	}

	entries, err := s.edits.Recent(r.Context(), chi.URLParam(r, "docID"), n)
	if err != nil {
		jsonError(w, "read history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"history": entries})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if s.edits == nil {
		jsonError(w, "edit history unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := s.edits.Clear(r.Context(), chi.URLParam(r, "docID")); err != nil {
		jsonError(w, "clear history: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
