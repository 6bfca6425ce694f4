package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain/forum"
	"github.com/kaverma/forumdex/internal/repository/postgres"
)

// export mirrors the Discourse JSON dump layout. Unknown fields are ignored.
type export struct {
	Users      []exportUser     `json:"users"`
	Categories []exportCategory `json:"categories"`
	Topics     []exportTopic    `json:"topics"`
	Posts      []exportPost     `json:"posts"`
}

type exportUser struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Name           *string `json:"name"`
	AvatarTemplate *string `json:"avatar_template"`
	Title          *string `json:"title"`
}

type exportCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type exportTopic struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	CategoryID   int64      `json:"category_id"`
	UserID       int64      `json:"user_id"`
	PostsCount   int        `json:"posts_count"`
	Views        int        `json:"views"`
	Likes        int        `json:"like_count"`
	CreatedAt    time.Time  `json:"created_at"`
	LastPostedAt *time.Time `json:"last_posted_at"`
}

type exportPost struct {
	ID         int64      `json:"id"`
	TopicID    int64      `json:"topic_id"`
	UserID     int64      `json:"user_id"`
	Raw        string     `json:"raw"`
	Cooked     string     `json:"cooked"`
	PostNumber int        `json:"post_number"`
	ReplyCount int        `json:"reply_count"`
	LikeCount  int        `json:"like_count"`
	Score      float64    `json:"score"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// ingestExport upserts one export file in referential order: categories and
// users first, then topics, then posts. Individual row failures are logged
// and skipped so one bad record does not abort a multi-thousand row import.
func ingestExport(ctx context.Context, repo *postgres.Repository, path string, logger *zap.Logger) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	var exp export
	if err := json.Unmarshal(data, &exp); err != nil {
		return fmt.Errorf("parse export: %w", err)
	}

	logger.Info("Importing forum export",
		zap.String("file", path),
		zap.Int("users", len(exp.Users)),
		zap.Int("categories", len(exp.Categories)),
		zap.Int("topics", len(exp.Topics)),
		zap.Int("posts", len(exp.Posts)),
	)

	var failed int

	for _, c := range exp.Categories {
		err := repo.UpsertCategory(ctx, forum.Category{ID: c.ID, Name: c.Name, Slug: c.Slug})
		if err != nil {
			failed++
			logger.Warn("Category skipped", zap.Int64("id", c.ID), zap.Error(err))
		}
	}

	for _, u := range exp.Users {
		err := repo.UpsertUser(ctx, forum.User{
			ID:             u.ID,
			Username:       u.Username,
			Name:           u.Name,
			AvatarTemplate: u.AvatarTemplate,
			Title:          u.Title,
		})
		if err != nil {
			failed++
			logger.Warn("User skipped", zap.Int64("id", u.ID), zap.Error(err))
		}
	}

	for _, t := range exp.Topics {
		err := repo.UpsertTopic(ctx, forum.Topic{
			ID:           t.ID,
			Title:        t.Title,
			Slug:         t.Slug,
			CategoryID:   t.CategoryID,
			UserID:       t.UserID,
			PostsCount:   t.PostsCount,
			Views:        t.Views,
			Likes:        t.Likes,
			CreatedAt:    t.CreatedAt,
			LastPostedAt: t.LastPostedAt,
		})
		if err != nil {
			failed++
			logger.Warn("Topic skipped", zap.Int64("id", t.ID), zap.Error(err))
		}
	}

	for i, p := range exp.Posts {
		err := repo.UpsertPost(ctx, forum.Post{
			ID:         p.ID,
			TopicID:    p.TopicID,
			UserID:     p.UserID,
			Raw:        p.Raw,
			Cooked:     p.Cooked,
			PostNumber: p.PostNumber,
			ReplyCount: p.ReplyCount,
			LikeCount:  p.LikeCount,
			Score:      p.Score,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
		})
		if err != nil {
			failed++
			logger.Warn("Post skipped", zap.Int64("id", p.ID), zap.Error(err))
		}
		if (i+1)%1000 == 0 {
			logger.Info("Import progress", zap.Int("posts_done", i+1))
		}
	}

	logger.Info("Import finished", zap.Int("failed", failed))
	return nil
}
