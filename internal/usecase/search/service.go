package search

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/forum"
	"github.com/kaverma/forumdex/internal/domain/search/method"
	"github.com/kaverma/forumdex/internal/domain/search/mode"
	"github.com/kaverma/forumdex/internal/domain/search/request"
	"github.com/kaverma/forumdex/internal/domain/search/result"
	"github.com/kaverma/forumdex/internal/metrics"
)

// Defaults applied when Config fields are zero.
const (
	defaultFanOut          = 6
	defaultSubqueryTimeout = 2 * time.Second
	defaultTextWeight      = 0.4
	defaultSemanticWeight  = 0.6

	maxBroadeningKeywords = 3
)

// Config tunes the retrieval pipeline.
type Config struct {
	TextWeight      float64
	SemanticWeight  float64
	FanOut          int
	SubqueryTimeout time.Duration
	TechnicalTerms  []string
}

// Service runs the retrieval strategies and merges their candidates.
type Service struct {
	store  Store
	embed  Embedder
	cfg    Config
	logger *zap.Logger
}

// New creates a search service.
func New(store Store, embed Embedder, cfg Config, logger *zap.Logger) *Service {
	if cfg.FanOut <= 0 {
		cfg.FanOut = defaultFanOut
	}
	if cfg.SubqueryTimeout <= 0 {
		cfg.SubqueryTimeout = defaultSubqueryTimeout
	}
	if cfg.TextWeight == 0 && cfg.SemanticWeight == 0 {
		cfg.TextWeight = defaultTextWeight
		cfg.SemanticWeight = defaultSemanticWeight
	}
	return &Service{store: store, embed: embed, cfg: cfg, logger: logger}
}

// Search dispatches one validated request to its strategy pipeline.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	switch req.Mode() {
	case mode.Comprehensive:
		return s.searchComprehensive(ctx, req)
	case mode.Text:
		return s.searchText(ctx, req)
	case mode.Semantic:
		return s.searchSemantic(ctx, req)
	case mode.Hybrid:
		return s.searchHybrid(ctx, req)
	default:
		return nil, fmt.Errorf("unsupported search mode: %s", req.Mode())
	}
}

// subquery is one planned lexical strategy invocation.
type subquery struct {
	method    method.Method
	pattern   string
	titleOnly bool
	limit     int
}

// searchComprehensive fans the lexical strategies out in parallel, scores
// each candidate with its strategy weight, and merges by max score. A failed
// or timed-out sub-query contributes an empty list; only when every strategy
// fails does the pipeline fall back to a single plain keyword query.
func (s *Service) searchComprehensive(ctx context.Context, req *request.Request) ([]result.Result, error) {
	limit := req.Limit()
	quarter := max(1, limit/4)
	half := max(1, limit/2)

	subs := []subquery{
		{method.ExactPhrase, `"` + req.Query() + `"`, false, quarter},
		{method.Keyword, req.Query(), false, half},
	}
	keywords := extractKeywords(req.Query(), s.cfg.TechnicalTerms)
	if len(keywords) > maxBroadeningKeywords {
		keywords = keywords[:maxBroadeningKeywords]
	}
	for _, kw := range keywords {
		subs = append(subs, subquery{method.KeywordBroadening, kw, false, quarter})
	}
	subs = append(subs, subquery{method.TopicTitle, req.Query(), true, quarter})

	lists := make([][]result.Result, len(subs))
	var failed atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.FanOut)
	for i, sub := range subs {
		i, sub := i, sub
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(gctx, s.cfg.SubqueryTimeout)
			defer cancel()

			results, err := s.runLexical(sctx, sub, req)
			if err != nil {
				failed.Add(1)
				s.logger.Warn("Search sub-query degraded to empty",
					zap.String("method", string(sub.method)),
					zap.String("pattern", sub.pattern),
					zap.Error(err))
				return nil
			}
			lists[i] = results
			return nil
		})
	}
	_ = g.Wait() // sub-query faults never propagate

	if int(failed.Load()) == len(subs) {
		metrics.SearchFallbacksTotal.Inc()
		return s.fallbackKeyword(ctx, req)
	}

	merged := mergeByMaxScore(lists...)
	metrics.SearchMergedResults.Observe(float64(len(merged)))
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// runLexical executes one pattern sub-query and tags each hit with the
// strategy's fixed weight.
func (s *Service) runLexical(ctx context.Context, sub subquery, req *request.Request) ([]result.Result, error) {
	start := time.Now()
	hits, err := s.store.SearchPosts(ctx, forum.LexicalQuery{
		Pattern:    sub.pattern,
		CategoryID: req.CategoryID(),
		TopicID:    req.TopicID(),
		TitleOnly:  sub.titleOnly,
		Limit:      sub.limit,
	})
	metrics.SearchStrategyDuration.WithLabelValues(string(sub.method)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%s sub-query: %w", sub.method, err)
	}
	metrics.SearchResultsTotal.WithLabelValues(string(sub.method)).Add(float64(len(hits)))

	weight, _ := sub.method.Weight()
	results := make([]result.Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, result.New(toFields(h), weight, weight, sub.method))
	}
	return results, nil
}

// fallbackKeyword is the last line of graceful degradation: one plain
// full-keyword query with the full limit.
func (s *Service) fallbackKeyword(ctx context.Context, req *request.Request) ([]result.Result, error) {
	s.logger.Warn("All search strategies failed, falling back to plain keyword search",
		zap.String("query", req.Query()))

	results, err := s.runLexical(ctx, subquery{
		method:  method.Keyword,
		pattern: req.Query(),
		limit:   req.Limit(),
	}, req)
	if err != nil {
		return nil, fmt.Errorf("keyword fallback failed: %w", domain.ErrStoreUnavailable)
	}
	return results, nil
}

func toFields(h forum.PostHit) result.Fields {
	return result.Fields{
		PostID:       h.PostID,
		TopicID:      h.TopicID,
		TopicTitle:   h.TopicTitle,
		TopicSlug:    h.TopicSlug,
		CategoryID:   h.CategoryID,
		CategoryName: h.CategoryName,
		Snippet:      makeSnippet(h.Cooked, h.Raw),
		ReplyCount:   h.ReplyCount,
		CreatedAt:    h.CreatedAt,
	}
}
