package main

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/forum"
	"github.com/kaverma/forumdex/internal/repository/postgres"
)

// minContentLength filters out posts too short to embed meaningfully.
const minContentLength = 10

// backfillEmbeddings walks every post without a stored embedding, batches the
// cleaned content through the provider and writes the vectors back. A failed
// batch is logged and skipped; the id cursor guarantees forward progress.
func backfillEmbeddings(
	ctx context.Context,
	repo *postgres.Repository,
	embedder domain.BatchEmbedder,
	batchSize int,
	logger *zap.Logger,
) error {
	if batchSize <= 0 {
		batchSize = 50
	}

	var (
		afterID        int64
		updated        int
		skipped        int
		failedBatches  int
		consumedTokens int
	)

	for {
		posts, err := repo.PostsMissingEmbedding(ctx, afterID, batchSize)
		if err != nil {
			return fmt.Errorf("fetch batch after id %d: %w", afterID, err)
		}
		if len(posts) == 0 {
			break
		}
		afterID = posts[len(posts)-1].ID

		texts := make([]string, 0, len(posts))
		batch := make([]forum.Post, 0, len(posts))
		for _, p := range posts {
			content := embeddingContent(p)
			if len(content) < minContentLength {
				skipped++
				continue
			}
			texts = append(texts, content)
			batch = append(batch, p)
		}
		if len(texts) == 0 {
			continue
		}

		res, err := embedder.BatchEmbed(ctx, texts)
		if err != nil {
			failedBatches++
			logger.Warn("Embedding batch failed",
				zap.Int64("after_id", afterID),
				zap.Int("size", len(texts)),
				zap.Error(err))
			continue
		}
		consumedTokens += res.TotalTokens

		for i, p := range batch {
			if err := repo.UpdatePostEmbedding(ctx, p.ID, res.Embeddings[i]); err != nil {
				logger.Warn("Embedding write failed", zap.Int64("post_id", p.ID), zap.Error(err))
				continue
			}
			updated++
		}

		logger.Info("Backfill progress",
			zap.Int("updated", updated),
			zap.Int("skipped", skipped),
			zap.Int64("cursor", afterID))
	}

	logger.Info("Backfill finished",
		zap.Int("updated", updated),
		zap.Int("skipped", skipped),
		zap.Int("failed_batches", failedBatches),
		zap.Int("total_tokens", consumedTokens))
	return nil
}

// embeddingContent combines the markdown and rendered content of a post into
// one cleaned string, the same shape the search side queries against.
func embeddingContent(p forum.Post) string {
	var parts []string
	if p.Raw != "" {
		parts = append(parts, cleanContent(p.Raw))
	}
	if p.Cooked != "" {
		parts = append(parts, cleanContent(p.Cooked))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// cleanContent strips HTML tags, decodes entities and collapses whitespace.
func cleanContent(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}
