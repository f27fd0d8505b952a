package legalai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// Rephraser rewrites plain text. It is consulted only on the fallback path
// when the model response cannot be repaired into JSON.
type Rephraser interface {
	Rephrase(ctx context.Context, text string) (string, error)
}

// Service runs the legal edit pipeline end to end: prompt construction,
// model call, repair chain, shape coercion, validation and scoring. It is
// stateless between requests and safe for concurrent use.
type Service struct {
	model     *GeminiClient
	rephraser Rephraser
	role      SystemRole
	log       *slog.Logger
}

func NewService(model *GeminiClient, rephraser Rephraser, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{model: model, rephraser: rephraser, role: DefaultSystemRole, log: log}
}

// ProcessLegalEdit applies a natural-language edit command to a document
// fragment. Model transport failures and unparseable output degrade
// through the fallback chain rather than failing the request; the only
// post-model error a caller sees is InvalidResponseError.
func (s *Service) ProcessLegalEdit(ctx context.Context, req EditRequest) (*EditResponse, error) {
	if strings.TrimSpace(req.Command) == "" {
		return nil, errors.New("command is required")
	}
	if req.DocumentType == "" {
		req.DocumentType = DocTypeOther
	}
	if !req.DocumentType.Valid() {
		return nil, fmt.Errorf("unknown document type %q", req.DocumentType)
	}

	prompt, err := BuildPrompt(s.role, req)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	var node *doctree.Node
	raw, genErr := s.model.Generate(ctx, prompt)
	switch {
	case genErr != nil:
		s.log.Warn("model call failed, degrading to text fallback",
			"model", s.model.Model(), "error", genErr)
	default:
		if v, ok := NormalizeResponse(raw); ok {
			node = Coerce(v)
		} else {
			s.log.Warn("model response unparseable after repair chain",
				"model", s.model.Model(), "length", len(raw))
		}
	}
	if node == nil {
		node = s.textFallback(ctx, req.Fragment, raw)
	}

	validation := Validate(node, req.Fragment)
	if !validation.IsValid {
		return nil, &InvalidResponseError{Errors: validation.Errors}
	}
	warnings := validation.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return &EditResponse{
		Fragment:   node,
		Confidence: Confidence(req, node),
		Warnings:   warnings,
		Changes:    DiffChanges(req.Fragment, node),
	}, nil
}

// textFallback extracts the fragment's plain text, asks the rephrasing
// collaborator for a rewrite, and splices the result back into the original
// structure. When no usable rewrite comes back the degraded wrapper wins.
func (s *Service) textFallback(ctx context.Context, fragment *doctree.Node, raw string) *doctree.Node {
	plain := doctree.ExtractText(fragment)
	if s.rephraser != nil && strings.TrimSpace(plain) != "" {
		rephrased, err := s.rephraser.Rephrase(ctx, plain)
		if err != nil {
			s.log.Warn("rephrase fallback failed", "error", err)
		} else if strings.TrimSpace(rephrased) != "" {
			return CoerceNode(doctree.SpliceText(fragment, rephrased))
		}
	}
	return DegradedNode(raw)
}
