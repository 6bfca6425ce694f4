// Package answer turns a free-form question into a grounded answer: it runs
// a comprehensive search, hands the top hits to a chat model as context, and
// returns the completion together with links to the source posts. The chat
// model is an enhancement, not a dependency: when it fails the answer
// degrades to the top result's excerpt.
package answer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain/search/mode"
	"github.com/kaverma/forumdex/internal/domain/search/request"
	"github.com/kaverma/forumdex/internal/domain/search/result"
)

const (
	// searchLimit is how many candidates retrieval produces; only the top
	// contextSize of them feed the prompt and the source list.
	searchLimit        = 10
	defaultContextSize = 5

	// Caps applied when formatting posts into prompt context and link text.
	contextExcerptLimit = 800
	linkTextLimit       = 100
	fallbackLimit       = 300

	noResultsAnswer = "I don't have enough information to answer this question based on the forum discussions. Please check the forum directly or contact the course staff for assistance."

	systemPrompt = `You are a helpful assistant answering questions from forum discussions.

Guidelines:
1. Use ONLY the provided context from forum posts to answer questions
2. If the context doesn't contain enough information, clearly state this limitation
3. Be concise but informative
4. If multiple perspectives exist in the context, present them fairly
5. Always prioritize accuracy over completeness

Remember: you are answering based on community discussions and shared experiences in the forum.`
)

// Source links one answer back to the forum post that grounds it.
type Source struct {
	URL  string
	Text string
}

// Answer is a generated response with its supporting posts.
type Answer struct {
	Text    string
	Sources []Source
}

// Config tunes answer generation.
type Config struct {
	ContextSize  int    // top-N results used as prompt context and sources
	ForumBaseURL string // e.g. https://discourse.example.com, no trailing slash
}

// Service generates grounded answers.
type Service struct {
	searcher Searcher
	chat     ChatClient
	cfg      Config
	logger   *zap.Logger
}

// New creates an answer service.
func New(searcher Searcher, chat ChatClient, cfg Config, logger *zap.Logger) *Service {
	if cfg.ContextSize <= 0 {
		cfg.ContextSize = defaultContextSize
	}
	cfg.ForumBaseURL = strings.TrimRight(cfg.ForumBaseURL, "/")
	return &Service{searcher: searcher, chat: chat, cfg: cfg, logger: logger}
}

// Ask answers a question from forum content. Retrieval failures propagate;
// an empty result set and a failed completion both degrade to a usable
// answer instead.
func (s *Service) Ask(ctx context.Context, question string) (Answer, error) {
	req, err := request.New(question, mode.Comprehensive, 0, 0, searchLimit, 0)
	if err != nil {
		return Answer{}, err
	}

	results, err := s.searcher.Search(ctx, &req)
	if err != nil {
		return Answer{}, fmt.Errorf("retrieve answer context: %w", err)
	}
	if len(results) == 0 {
		return Answer{Text: noResultsAnswer, Sources: []Source{}}, nil
	}

	top := results
	if len(top) > s.cfg.ContextSize {
		top = top[:s.cfg.ContextSize]
	}

	text, err := s.chat.Complete(ctx, systemPrompt, buildPrompt(req.Query(), top))
	if err != nil {
		s.logger.Warn("Chat completion failed, using rule-based answer",
			zap.String("question", req.Query()),
			zap.Error(err))
		text = fallbackAnswer(top)
	}

	return Answer{Text: text, Sources: s.sources(top)}, nil
}

// buildPrompt formats the question and the context posts into one user prompt.
func buildPrompt(question string, top []result.Result) string {
	divider := strings.Repeat("=", 50)

	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\n\nRelevant Forum Context:\n")
	b.WriteString(divider)
	b.WriteString("\n")
	for i := range top {
		r := &top[i]
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Post %d: %s\nContent: %s\n",
			i+1, r.TopicTitle(), clip(r.Snippet(), contextExcerptLimit))
	}
	b.WriteString(divider)
	b.WriteString("\n\nBased on the forum discussions above, please provide a helpful answer to the question. If the context doesn't contain sufficient information to answer the question, please state this clearly.")
	return b.String()
}

// fallbackAnswer derives a bare answer from the best-ranked post.
func fallbackAnswer(top []result.Result) string {
	excerpt := clip(top[0].Snippet(), fallbackLimit)
	if excerpt == "" {
		return "I found some related discussions but couldn't generate a specific answer. Please check the linked forum posts for more details."
	}
	return "Based on forum discussions: " + excerpt
}

func (s *Service) sources(top []result.Result) []Source {
	sources := make([]Source, 0, len(top))
	for i := range top {
		r := &top[i]
		text := clip(r.Snippet(), linkTextLimit)
		if text == "" {
			text = r.TopicTitle()
		}
		sources = append(sources, Source{
			URL:  s.cfg.ForumBaseURL + "/t/" + r.TopicSlug() + "/" + strconv.FormatInt(r.TopicID(), 10),
			Text: text,
		})
	}
	return sources
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
