package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// ErrNotFound is returned when no document exists for the given ID.
var ErrNotFound = errors.New("document not found")

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// EnsureSchema creates the documents table when missing. Safe to run on
// every startup.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS documents (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title      TEXT NOT NULL,
			doc_type   TEXT NOT NULL DEFAULT 'other',
			content    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS documents_updated_at_idx ON documents (updated_at DESC);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateDocument(ctx context.Context, title, docType string, content *doctree.Node) (Document, error) {
	body, err := json.Marshal(content)
	if err != nil {
		return Document{}, fmt.Errorf("marshal content: %w", err)
	}

	const insert = `
		INSERT INTO documents (title, doc_type, content)
		VALUES ($1, $2, $3)
		RETURNING id, title, doc_type, content, created_at, updated_at
	`
	return s.scanDocument(s.db.QueryRowContext(ctx, insert, title, docType, body))
}

func (s *PostgresStore) GetDocument(ctx context.Context, id string) (Document, error) {
	const query = `
		SELECT id, title, doc_type, content, created_at, updated_at
		FROM documents WHERE id = $1
	`
	doc, err := s.scanDocument(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

func (s *PostgresStore) ListDocuments(ctx context.Context, limit int) ([]DocumentSummary, error) {
	const query = `
		SELECT id, title, doc_type, created_at, updated_at
		FROM documents ORDER BY updated_at DESC LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := make([]DocumentSummary, 0, limit)
	for rows.Next() {
		var d DocumentSummary
		if err := rows.Scan(&d.ID, &d.Title, &d.DocType, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateDocumentContent(ctx context.Context, id string, content *doctree.Node) (Document, error) {
	body, err := json.Marshal(content)
	if err != nil {
		return Document{}, fmt.Errorf("marshal content: %w", err)
	}

	const update = `
		UPDATE documents SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, doc_type, content, created_at, updated_at
	`
	doc, err := s.scanDocument(s.db.QueryRowContext(ctx, update, id, body))
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

func (s *PostgresStore) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) scanDocument(row *sql.Row) (Document, error) {
	var (
		doc  Document
		body []byte
	)
	if err := row.Scan(&doc.ID, &doc.Title, &doc.DocType, &body, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("scan document: %w", err)
	}
	var content doctree.Node
	if err := json.Unmarshal(body, &content); err != nil {
		return Document{}, fmt.Errorf("decode content for %s: %w", doc.ID, err)
	}
	doc.Content = &content
	return doc, nil
}
