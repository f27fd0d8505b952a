package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Lexamplify/lexamplify/internal/doctree"
	"github.com/Lexamplify/lexamplify/internal/history"
	"github.com/Lexamplify/lexamplify/internal/legalai"
)

type legalEditPayload struct {
	legalai.EditRequest

	// DocumentID links the edit to a stored document for history purposes.
	DocumentID string `json:"document_id,omitempty"`
}

func (s *Server) handleLegalEdit(w http.ResponseWriter, r *http.Request) {
	var payload legalEditPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<20)).Decode(&payload); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Command == "" {
		jsonError(w, "command is required", http.StatusBadRequest)
		return
	}
	if payload.Fragment == nil {
		jsonError(w, "fragment is required", http.StatusBadRequest)
		return
	}

	resp, err := s.legal.ProcessLegalEdit(r.Context(), payload.EditRequest)
	if err != nil {
		var invalid *legalai.InvalidResponseError
		if errors.As(err, &invalid) {
			jsonError(w, invalid.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// History is best effort; an unreachable Redis never fails the edit.
	if s.edits != nil && payload.DocumentID != "" {
		entry := history.Entry{
			Command:    payload.Command,
			BeforeText: doctree.ExtractText(payload.Fragment),
			AfterText:  doctree.ExtractText(resp.Fragment),
			Confidence: resp.Confidence,
		}
		if err := s.edits.Append(r.Context(), payload.DocumentID, entry); err != nil {
			s.log.Warn("history append failed", "doc_id", payload.DocumentID, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"commands": legalai.Commands()})
}
