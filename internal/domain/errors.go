package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank search query. A zero-length query is a
	// contract violation, never an implicit "match everything".
	ErrEmptyQuery = errors.New("query is empty")
	// ErrInvalidThreshold signals a similarity threshold outside [0,1].
	ErrInvalidThreshold = errors.New("similarity threshold must be between 0 and 1")
	// ErrInvalidWindow signals a non-positive trending window.
	ErrInvalidWindow = errors.New("trend window must be positive")

	// ErrPostNotFound signals a missing post.
	ErrPostNotFound = errors.New("post not found")
	// ErrTopicNotFound signals a missing topic.
	ErrTopicNotFound = errors.New("topic not found")
	// ErrNoEmbedding signals a post whose embedding has not been computed yet.
	// Embeddings are generated out of band, so this is an expected condition.
	ErrNoEmbedding = errors.New("post has no embedding")

	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrAnswerProviderError signals a chat-completion provider failure.
	ErrAnswerProviderError = errors.New("answer provider error")
	// ErrStoreUnavailable signals that the forum store could not serve any strategy.
	ErrStoreUnavailable = errors.New("forum store unavailable")
)
