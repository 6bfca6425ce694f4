package search

import (
	"strings"
	"unicode"
)

// stopWords are generic English words that never disambiguate a query.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "how": {}, "what": {}, "when": {}, "where": {},
	"why": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {},
	"did": {}, "will": {}, "would": {}, "could": {}, "should": {}, "can": {},
}

// defaultTechnicalTerms mark domain jargon that should lead the keyword list.
// A word matches when it contains one of these as a substring.
var defaultTechnicalTerms = []string{
	"gpt", "api", "model", "docker", "podman", "ga", "tds", "exam", "assignment",
}

// extractKeywords reduces free text to a ranked, deduplicated list of salient
// terms: lower-cased, longer than two runes, stop words removed, technical
// terms first. Deterministic for a fixed query and term configuration.
func extractKeywords(query string, technicalTerms []string) []string {
	if len(technicalTerms) == 0 {
		technicalTerms = defaultTechnicalTerms
	}

	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	seen := make(map[string]struct{}, len(words))
	var technical, generic []string
	for _, w := range words {
		if len([]rune(w)) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}

		if isTechnical(w, technicalTerms) {
			technical = append(technical, w)
		} else {
			generic = append(generic, w)
		}
	}

	return append(technical, generic...)
}

func isTechnical(word string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(word, t) {
			return true
		}
	}
	return false
}
