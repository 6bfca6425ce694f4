// loader ingests a Discourse JSON export into the forum store and backfills
// missing post embeddings. The two stages run independently: a plain import
// needs no embedding provider, and the backfill can rerun any time.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/config"
	logpkg "github.com/kaverma/forumdex/internal/logger"
	"github.com/kaverma/forumdex/internal/repository/postgres"
	openaiTransport "github.com/kaverma/forumdex/internal/transport/openai"
)

func main() {
	var (
		file      = flag.String("file", "", "path to a Discourse JSON export to import")
		backfill  = flag.Bool("backfill", false, "generate embeddings for posts that have none")
		batchSize = flag.Int("batch", 50, "posts per embedding batch")
	)
	flag.Parse()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if *file == "" && !*backfill {
		logger.Fatal("Nothing to do: pass -file and/or -backfill")
	}

	sqlDB, err := postgres.Connect(postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifeMin) * time.Minute,
	})
	if err != nil {
		logger.Fatal("Failed to open forum store", zap.Error(err))
	}
	repo := postgres.New(sqlDB, logger)
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	if err := repo.WaitForReady(ctx, time.Duration(cfg.Postgres.ReadinessSec)*time.Second); err != nil {
		logger.Fatal("Forum store not ready", zap.Error(err))
	}

	if *file != "" {
		if err := ingestExport(ctx, repo, *file, logger); err != nil {
			logger.Fatal("Import failed", zap.Error(err))
		}
	}

	if *backfill {
		embedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
		if err := backfillEmbeddings(ctx, repo, embedder, *batchSize, logger); err != nil {
			logger.Fatal("Embedding backfill failed", zap.Error(err))
		}
	}
}
