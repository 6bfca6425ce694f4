// Package mode enumerates the top-level search entry modes.
package mode

// Mode is the search strategy requested by the caller.
type Mode string

// Search mode constants.
const (
	// Comprehensive fans out over every lexical strategy and merges.
	Comprehensive Mode = "comprehensive"
	// Text runs a single full-keyword lexical query.
	Text Mode = "text"
	Semantic Mode = "semantic"
	// Hybrid blends text and semantic scores.
	Hybrid Mode = "hybrid"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Comprehensive || m == Text || m == Semantic || m == Hybrid
}
