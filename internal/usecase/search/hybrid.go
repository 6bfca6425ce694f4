package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain/forum"
	"github.com/kaverma/forumdex/internal/domain/search/method"
	"github.com/kaverma/forumdex/internal/domain/search/request"
	"github.com/kaverma/forumdex/internal/domain/search/result"
	"github.com/kaverma/forumdex/internal/metrics"
)

// searchText runs one full-keyword lexical query. Scores are rank-based
// (1 - i/n): recency order carries the signal, so the head of the list wins.
func (s *Service) searchText(ctx context.Context, req *request.Request) ([]result.Result, error) {
	hits, err := s.textHits(ctx, req, req.Limit())
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(hits))
	for i, h := range hits {
		score := rankScore(i, len(hits))
		results = append(results, result.New(toFields(h), score, score, method.Keyword))
	}
	return results, nil
}

// searchSemantic embeds the query and runs one nearest-neighbor query.
// The normalized score is the raw cosine similarity.
func (s *Service) searchSemantic(ctx context.Context, req *request.Request) ([]result.Result, error) {
	hits, err := s.semanticHits(ctx, req, req.Limit())
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, result.New(toFields(h), h.Similarity, h.Similarity, method.Semantic))
	}
	return results, nil
}

// searchHybrid blends rank-based text scores with cosine similarity:
// text*textWeight + semantic*semanticWeight, an absent side contributing
// exactly 0. The two sides run in parallel with double the limit each; a
// single failed side degrades to the other, both failing is an error.
func (s *Service) searchHybrid(ctx context.Context, req *request.Request) ([]result.Result, error) {
	fetch := req.Limit() * 2

	var (
		wg       sync.WaitGroup
		textHits []forum.PostHit
		semHits  []forum.PostHit
		textErr  error
		semErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		textHits, textErr = s.textHits(ctx, req, fetch)
	}()
	go func() {
		defer wg.Done()
		semHits, semErr = s.semanticHits(ctx, req, fetch)
	}()
	wg.Wait()

	if textErr != nil && semErr != nil {
		return nil, fmt.Errorf("hybrid search: both sides failed: %w", textErr)
	}
	if textErr != nil {
		s.logger.Warn("Hybrid text side degraded to empty", zap.Error(textErr))
	}
	if semErr != nil {
		s.logger.Warn("Hybrid semantic side degraded to empty", zap.Error(semErr))
	}

	type blend struct {
		hit  forum.PostHit
		text float64
		sem  float64
	}

	combined := make(map[int64]*blend)
	var order []int64

	for i, h := range textHits {
		combined[h.PostID] = &blend{hit: h, text: rankScore(i, len(textHits))}
		order = append(order, h.PostID)
	}
	for _, h := range semHits {
		if b, ok := combined[h.PostID]; ok {
			b.sem = h.Similarity
			continue
		}
		combined[h.PostID] = &blend{hit: h, sem: h.Similarity}
		order = append(order, h.PostID)
	}

	results := make([]result.Result, 0, len(order))
	for _, id := range order {
		b := combined[id]
		score := b.text*s.cfg.TextWeight + b.sem*s.cfg.SemanticWeight
		results = append(results, result.New(toFields(b.hit), score, score, method.Hybrid))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	if len(results) > req.Limit() {
		results = results[:req.Limit()]
	}
	return results, nil
}

func (s *Service) textHits(ctx context.Context, req *request.Request, limit int) ([]forum.PostHit, error) {
	start := time.Now()
	hits, err := s.store.SearchPosts(ctx, forum.LexicalQuery{
		Pattern:    req.Query(),
		CategoryID: req.CategoryID(),
		TopicID:    req.TopicID(),
		Limit:      limit,
	})
	metrics.SearchStrategyDuration.WithLabelValues(string(method.Keyword)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	metrics.SearchResultsTotal.WithLabelValues(string(method.Keyword)).Add(float64(len(hits)))
	return hits, nil
}

func (s *Service) semanticHits(ctx context.Context, req *request.Request, limit int) ([]forum.PostHit, error) {
	embResult, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	start := time.Now()
	hits, err := s.store.SemanticSearch(ctx, embResult.Embedding, forum.SemanticQuery{
		CategoryID:    req.CategoryID(),
		MinSimilarity: req.MinSimilarity(),
		Limit:         limit,
	})
	metrics.SearchStrategyDuration.WithLabelValues(string(method.Semantic)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}
	metrics.SearchResultsTotal.WithLabelValues(string(method.Semantic)).Add(float64(len(hits)))
	return hits, nil
}
