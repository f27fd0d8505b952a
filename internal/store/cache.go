package store

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// CachedStore is a read-through LRU in front of PostgresStore. Writes go to
// Postgres first; the cache entry is refreshed from the returned row so a
// hit can never serve content older than the last committed write.
type CachedStore struct {
	inner *PostgresStore
	cache *lru.Cache[string, Document]
}

func NewCachedStore(inner *PostgresStore, size int) (*CachedStore, error) {
	cache, err := lru.New[string, Document](size)
	if err != nil {
		return nil, fmt.Errorf("create document cache: %w", err)
	}
	return &CachedStore{inner: inner, cache: cache}, nil
}

func (s *CachedStore) EnsureSchema(ctx context.Context) error {
	return s.inner.EnsureSchema(ctx)
}

func (s *CachedStore) CreateDocument(ctx context.Context, title, docType string, content *doctree.Node) (Document, error) {
	doc, err := s.inner.CreateDocument(ctx, title, docType, content)
	if err != nil {
		return Document{}, err
	}
	s.cache.Add(doc.ID, doc)
	return doc, nil
}

func (s *CachedStore) GetDocument(ctx context.Context, id string) (Document, error) {
	if doc, ok := s.cache.Get(id); ok {
		return doc, nil
	}
	doc, err := s.inner.GetDocument(ctx, id)
	if err != nil {
		return Document{}, err
	}
	s.cache.Add(doc.ID, doc)
	return doc, nil
}

// ListDocuments always hits Postgres; listings are cheap without bodies and
// ordering by recency would make cached lists stale immediately.
func (s *CachedStore) ListDocuments(ctx context.Context, limit int) ([]DocumentSummary, error) {
	return s.inner.ListDocuments(ctx, limit)
}

func (s *CachedStore) UpdateDocumentContent(ctx context.Context, id string, content *doctree.Node) (Document, error) {
	doc, err := s.inner.UpdateDocumentContent(ctx, id, content)
	if err != nil {
		if err != ErrNotFound {
			s.cache.Remove(id)
		}
		return Document{}, err
	}
	s.cache.Add(doc.ID, doc)
	return doc, nil
}

func (s *CachedStore) DeleteDocument(ctx context.Context, id string) error {
	s.cache.Remove(id)
	return s.inner.DeleteDocument(ctx, id)
}
