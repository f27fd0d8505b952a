package legalai

import (
	"fmt"
	"strings"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// DocumentType classifies the legal document being edited.
type DocumentType string

const (
	DocTypeContract  DocumentType = "contract"
	DocTypeBrief     DocumentType = "brief"
	DocTypeAgreement DocumentType = "agreement"
	DocTypeMotion    DocumentType = "motion"
	DocTypeOther     DocumentType = "other"
)

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocTypeContract, DocTypeBrief, DocTypeAgreement, DocTypeMotion, DocTypeOther:
		return true
	}
	return false
}

// EditRequest is a single AI edit of a document fragment. Constructed fresh
// per user action and consumed once.
type EditRequest struct {
	Fragment        *doctree.Node `json:"fragment"`
	Command         string        `json:"command"`
	DocumentContext string        `json:"document_context,omitempty"`
	DocumentType    DocumentType  `json:"document_type,omitempty"`
}

// EditResponse carries the repaired fragment plus quality signals. Fragment
// is always a "doc" node with a non-nil content array, even on degraded
// fallback paths.
type EditResponse struct {
	Fragment   *doctree.Node `json:"fragment"`
	Confidence float64       `json:"confidence"`
	Warnings   []string      `json:"warnings"`
	Changes    []string      `json:"changes"`
}

// InvalidResponseError is the only pipeline error that reaches the caller:
// post-coercion validation still failed. Structurally unreachable given the
// degraded-wrapper guarantee, but kept as the contractual escape hatch.
type InvalidResponseError struct {
	Errors []string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid model response: %s", strings.Join(e.Errors, ", "))
}
