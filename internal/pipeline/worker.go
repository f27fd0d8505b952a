package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lexamplify/lexamplify/internal/doctree"
	"github.com/Lexamplify/lexamplify/internal/parser"
	"github.com/Lexamplify/lexamplify/internal/store"
)

// DocumentCreator persists a parsed document and returns the stored row.
type DocumentCreator interface {
	CreateDocument(ctx context.Context, title, docType string, content *doctree.Node) (store.Document, error)
}

// Archiver stores the raw upload bytes for later retrieval.
type Archiver interface {
	Put(ctx context.Context, jobID, filename string, content []byte) error
}

// Worker processes a single import job: archive the upload, parse it into
// an editor tree, persist the document.
type Worker struct {
	docs    DocumentCreator
	archive Archiver
	log     *slog.Logger
}

func NewWorker(docs DocumentCreator, archive Archiver, log *slog.Logger) *Worker {
	return &Worker{docs: docs, archive: archive, log: log}
}

// Process runs the full import pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Archive the original upload. Archive failures are recorded
	// but never fail the import.
	if w.archive != nil {
		job.SetStatus(StatusArchiving, "archiving")
		if err := w.archive.Put(ctx, job.ID, job.Filename, job.FileData()); err != nil {
			log.Warn("archive failed, continuing", "error", err)
			job.AddError(fmt.Sprintf("archive: %s", err))
		} else {
			job.SetArchived()
		}
	}

	// Phase 2: Parse into an editor tree.
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	parsed, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" {
		parsed.Title = job.Title
	}
	job.SetNodes(len(parsed.Content.Content))

	if len(parsed.Content.Content) == 0 {
		log.Warn("no importable content")
		job.AddError("no importable content")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 3: Persist, retrying transient database failures.
	job.SetStatus(StatusStoring, "storing")
	var doc store.Document
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		doc, lastErr = w.docs.CreateDocument(ctx, parsed.Title, job.DocType, parsed.Content)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable store error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr != nil {
		log.Error("store failed", "error", lastErr)
		job.AddError(fmt.Sprintf("store: %s", lastErr))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetDocID(doc.ID)
	job.SetStatus(StatusCompleted, "done")
	log.Info("import complete", "doc_id", doc.ID, "nodes", len(parsed.Content.Content))
}
