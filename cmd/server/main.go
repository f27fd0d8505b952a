package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Lexamplify/lexamplify/internal/api"
	"github.com/Lexamplify/lexamplify/internal/blobstore"
	"github.com/Lexamplify/lexamplify/internal/config"
	"github.com/Lexamplify/lexamplify/internal/history"
	"github.com/Lexamplify/lexamplify/internal/legalai"
	"github.com/Lexamplify/lexamplify/internal/pipeline"
	"github.com/Lexamplify/lexamplify/internal/rephrase"
	"github.com/Lexamplify/lexamplify/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Document store.
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pg := store.NewPostgresStore(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		log.Error("schema migration failed", "error", err)
		os.Exit(1)
	}
	docs, err := store.NewCachedStore(pg, cfg.DocCacheSize)
	if err != nil {
		log.Error("document cache init failed", "error", err)
		os.Exit(1)
	}

	// Edit history (optional).
	var edits *history.RedisLog
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, edit history disabled", "error", err)
		} else {
			edits = history.NewRedisLog(rdb, cfg.HistoryPerDoc, cfg.HistoryExpires)
		}
	}

	// Source archive (optional).
	var archive *blobstore.Store
	if cfg.MinioEnabled() {
		bs, err := blobstore.New(blobstore.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.Error("blobstore init failed", "error", err)
			os.Exit(1)
		}
		archive = bs
	}

	// Initialize clients.
	gemini := legalai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	var rephraser legalai.Rephraser
	if cfg.RephraseURL != "" {
		rephraser = rephrase.NewClient(cfg.RephraseURL, cfg.RephraseAPIKey)
	}
	legal := legalai.NewService(gemini, rephraser, log)

	// Initialize import pipeline. The archiver stays a nil interface when
	// MinIO is not configured so the worker skips the archive phase.
	var archiver pipeline.Archiver
	if archive != nil {
		archiver = archive
	}
	orch := pipeline.NewOrchestrator(docs, archiver, cfg.WorkerCount, cfg.MaxQueueSize, cfg.JobTTL, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(legal, gemini, docs, edits, archive, orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		gemini.Close()
		if edits != nil {
			edits.Close()
		}
	}()

	log.Info("starting lexamplify", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
