package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kaverma/forumdex/internal/domain/forum"
	"github.com/kaverma/forumdex/internal/domain/search/mode"
	"github.com/kaverma/forumdex/internal/domain/search/request"
	"github.com/kaverma/forumdex/internal/domain/search/result"
)

// handleSearch handles POST /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.MinSimilarity == 0 {
		req.MinSimilarity = s.cfg.MinSimilarity
	}
	searchReq, err := request.New(
		req.Query, mode.Mode(req.Mode),
		req.CategoryID, req.TopicID,
		req.Limit, req.MinSimilarity,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Search(r.Context(), &searchReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponse(results))
}

// handleSimilarPosts handles GET /api/posts/{id}/similar.
func (s *Server) handleSimilarPosts(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r)
	if !ok {
		return
	}

	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	minSimilarity, ok := queryFloat(w, r, "min_similarity")
	if !ok {
		return
	}
	if minSimilarity == 0 {
		minSimilarity = s.cfg.NeighborFloor
	}

	req, err := request.NewSimilar(postID, limit, minSimilarity)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	// The reference post must exist even when it has no neighbors.
	if _, err := s.browse.Post(r.Context(), postID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Similar(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponse(results))
}

// handleTrending handles GET /api/topics/trending.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	windowDays, ok := queryInt(w, r, "window_days")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	categoryID, ok := queryInt64(w, r, "category_id")
	if !ok {
		return
	}

	req, err := request.NewTrending(windowDays, limit, categoryID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	trends, err := s.trending.Trending(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]trendingItem, 0, len(trends))
	for i := range trends {
		t := &trends[i]
		item := trendingItem{
			TopicID:            t.TopicID(),
			Title:              t.Title(),
			Slug:               t.Slug(),
			CategoryName:       t.CategoryName(),
			RecentPosts:        t.RecentPosts(),
			TotalLikes:         t.TotalLikes(),
			UniqueParticipants: t.UniqueParticipants(),
		}
		if !t.LastActivity().IsZero() {
			la := t.LastActivity()
			item.LastActivity = &la
		}
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, trendingResponse{
		Items:      items,
		WindowDays: req.WindowDays(),
	})
}

// handleSearchUsers handles GET /api/users/search.
func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	hits, err := s.search.SearchUsers(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]userItem, 0, len(hits))
	for _, h := range hits {
		items = append(items, userItem{
			UserID:     h.UserID,
			Username:   h.Username,
			Name:       h.Name,
			Title:      h.Title,
			PostCount:  h.PostCount,
			TotalLikes: h.TotalLikes,
			LastPostAt: h.LastPostAt,
		})
	}

	writeJSON(w, http.StatusOK, userSearchResponse{Items: items, Total: len(items)})
}

// handleGetTopic handles GET /api/topics/{id}.
func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	topicID, ok := pathID(w, r)
	if !ok {
		return
	}

	topic, err := s.browse.Topic(r.Context(), topicID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, topicResponse{
		ID:           topic.ID,
		Title:        topic.Title,
		Slug:         topic.Slug,
		CategoryID:   topic.CategoryID,
		PostsCount:   topic.PostsCount,
		Views:        topic.Views,
		Likes:        topic.Likes,
		CreatedAt:    topic.CreatedAt,
		LastPostedAt: topic.LastPostedAt,
	})
}

// handleTopicPosts handles GET /api/topics/{id}/posts.
func (s *Server) handleTopicPosts(w http.ResponseWriter, r *http.Request) {
	topicID, ok := pathID(w, r)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}

	posts, err := s.browse.TopicPosts(r.Context(), topicID, limit, offset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, toPostResponse(p))
	}

	writeJSON(w, http.StatusOK, topicPostsResponse{
		Items:  items,
		Limit:  limit,
		Offset: offset,
	})
}

// handleGetPost handles GET /api/posts/{id}.
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := s.browse.Post(r.Context(), postID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// handleCategories handles GET /api/categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.browse.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]categoryItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, categoryItem{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}

	writeJSON(w, http.StatusOK, categoriesResponse{Items: items})
}

// handleStats handles GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.browse.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Users:              stats.Users,
		Categories:         stats.Categories,
		Topics:             stats.Topics,
		Posts:              stats.Posts,
		PostsWithEmbedding: stats.PostsWithEmbedding,
	})
}

// handleAsk handles POST /api/ask.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	answer, err := s.answers.Ask(r.Context(), req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	links := make([]askLink, 0, len(answer.Sources))
	for _, src := range answer.Sources {
		links = append(links, askLink{URL: src.URL, Text: src.Text})
	}

	writeJSON(w, http.StatusOK, askResponse{Answer: answer.Text, Links: links})
}

func toSearchResponse(results []result.Result) searchResponse {
	items := make([]searchResultItem, 0, len(results))
	for i := range results {
		r := &results[i]
		items = append(items, searchResultItem{
			PostID:       r.PostID(),
			TopicID:      r.TopicID(),
			TopicTitle:   r.TopicTitle(),
			TopicSlug:    r.TopicSlug(),
			CategoryID:   r.CategoryID(),
			CategoryName: r.CategoryName(),
			Snippet:      r.Snippet(),
			ReplyCount:   r.ReplyCount(),
			CreatedAt:    r.CreatedAt(),
			Score:        r.Score(),
			Method:       string(r.Method()),
		})
	}
	return searchResponse{Items: items, Total: len(items)}
}

func toPostResponse(p forum.PostHit) postResponse {
	return postResponse{
		PostID:       p.PostID,
		TopicID:      p.TopicID,
		TopicTitle:   p.TopicTitle,
		TopicSlug:    p.TopicSlug,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Username:     p.Username,
		Cooked:       p.Cooked,
		ReplyCount:   p.ReplyCount,
		LikeCount:    p.LikeCount,
		CreatedAt:    p.CreatedAt,
	}
}

// pathID parses the {id} path parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid id: "+raw)
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter, writing a 400 on
// malformed input. Absent means zero.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid "+name+": "+raw)
		return 0, false
	}
	return v, true
}

func queryInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid "+name+": "+raw)
		return 0, false
	}
	return v, true
}

func queryFloat(w http.ResponseWriter, r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid "+name+": "+raw)
		return 0, false
	}
	return v, true
}
