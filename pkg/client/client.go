// Package forumdex provides a small HTTP client for the forumdex API.
package forumdex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is the forumdex API client entry point.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a Client pointed at the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("forumdex: base URL required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("forumdex: invalid base URL: %w", err)
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.apiKey,
		httpClient: hc,
	}, nil
}

// Search runs a post search. Mode defaults to comprehensive on the server.
func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	var out SearchResponse
	err := c.do(ctx, http.MethodPost, "/api/search", nil, req, &out)
	return out, err
}

// Ask generates a grounded answer for the question.
func (c *Client) Ask(ctx context.Context, question string) (Answer, error) {
	var out Answer
	err := c.do(ctx, http.MethodPost, "/api/ask", nil, askBody{Question: question}, &out)
	return out, err
}

// GetPost fetches a single post by id.
func (c *Client) GetPost(ctx context.Context, postID int64) (Post, error) {
	var out Post
	err := c.do(ctx, http.MethodGet, "/api/posts/"+strconv.FormatInt(postID, 10), nil, nil, &out)
	return out, err
}

// SimilarPosts lists posts semantically close to the given post.
// Zero limit and minSimilarity fall back to server defaults.
func (c *Client) SimilarPosts(ctx context.Context, postID int64, limit int, minSimilarity float64) (SearchResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if minSimilarity > 0 {
		q.Set("min_similarity", strconv.FormatFloat(minSimilarity, 'f', -1, 64))
	}
	var out SearchResponse
	err := c.do(ctx, http.MethodGet, "/api/posts/"+strconv.FormatInt(postID, 10)+"/similar", q, nil, &out)
	return out, err
}

// Trending lists topics with recent activity. Zero arguments fall back to
// server defaults; categoryID zero means all categories.
func (c *Client) Trending(ctx context.Context, windowDays, limit int, categoryID int64) (TrendingResponse, error) {
	q := url.Values{}
	if windowDays > 0 {
		q.Set("window_days", strconv.Itoa(windowDays))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if categoryID > 0 {
		q.Set("category_id", strconv.FormatInt(categoryID, 10))
	}
	var out TrendingResponse
	err := c.do(ctx, http.MethodGet, "/api/topics/trending", q, nil, &out)
	return out, err
}

// GetTopic fetches a single topic by id.
func (c *Client) GetTopic(ctx context.Context, topicID int64) (Topic, error) {
	var out Topic
	err := c.do(ctx, http.MethodGet, "/api/topics/"+strconv.FormatInt(topicID, 10), nil, nil, &out)
	return out, err
}

// TopicPosts fetches one page of a topic thread in posting order.
func (c *Client) TopicPosts(ctx context.Context, topicID int64, limit, offset int) (TopicPostsResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	var out TopicPostsResponse
	err := c.do(ctx, http.MethodGet, "/api/topics/"+strconv.FormatInt(topicID, 10)+"/posts", q, nil, &out)
	return out, err
}

// SearchUsers searches user profiles by username or display name.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) (UserSearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out UserSearchResponse
	err := c.do(ctx, http.MethodGet, "/api/users/search", q, nil, &out)
	return out, err
}

// Categories lists all forum categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out struct {
		Items []Category `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &out)
	return out.Items, err
}

// Stats returns corpus-wide row counts.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, nil, &out)
	return out, err
}

// Health reports the server health. A degraded server answers with the
// report as well, so the body is decoded for both 200 and 503.
func (c *Client) Health(ctx context.Context) (Health, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/healthz", nil, nil)
	if err != nil {
		return Health{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Health{}, fmt.Errorf("forumdex: health request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return Health{}, decodeError(resp)
	}
	var out Health
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Health{}, fmt.Errorf("forumdex: decode health response: %w", err)
	}
	return out, nil
}

type askBody struct {
	Question string `json:"question"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("forumdex: encode request body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, fmt.Errorf("forumdex: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("forumdex: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("forumdex: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Code != "" {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	} else {
		apiErr.Code = "http_" + strconv.Itoa(resp.StatusCode)
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
