package store

import (
	"time"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// Document is a stored legal document. Content is the full editor tree.
type Document struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	DocType   string        `json:"doc_type"`
	Content   *doctree.Node `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DocumentSummary is a listing row without the document body.
type DocumentSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DocType   string    `json:"doc_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
