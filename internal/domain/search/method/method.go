// Package method enumerates the retrieval strategies a result can originate
// from. The tag travels with every result so the merger can explain where a
// hit came from and the normalizer can assign its fixed weight.
package method

// Method identifies the retrieval strategy that produced a result.
type Method string

// Retrieval strategy tags.
const (
	// ExactPhrase matched the query as one quoted phrase.
	ExactPhrase Method = "exact_phrase"
	// Keyword matched the full query string.
	Keyword Method = "keywords"
	// KeywordBroadening matched a single extracted keyword.
	KeywordBroadening Method = "keyword_broadening"
	// TopicTitle matched the topic title rather than the post body.
	TopicTitle Method = "topic_title"
	// Semantic matched by embedding similarity.
	Semantic Method = "semantic"
	// Hybrid is a blend of a lexical and a semantic score.
	Hybrid Method = "hybrid"
)

// IsValid checks if the method is one of the supported values.
func (m Method) IsValid() bool {
	switch m {
	case ExactPhrase, Keyword, KeywordBroadening, TopicTitle, Semantic, Hybrid:
		return true
	}
	return false
}

// Weight returns the fixed normalized score of a lexical strategy.
// Semantic and hybrid results carry measured scores instead; for those the
// second return is false.
func (m Method) Weight() (float64, bool) {
	switch m {
	case ExactPhrase:
		return 1.0, true
	case TopicTitle:
		return 0.9, true
	case Keyword:
		return 0.8, true
	case KeywordBroadening:
		return 0.6, true
	default:
		return 0, false
	}
}
