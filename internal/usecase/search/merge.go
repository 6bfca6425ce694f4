package search

import (
	"sort"

	"github.com/kaverma/forumdex/internal/domain/search/result"
)

// mergeByMaxScore deduplicates candidate lists by post id, keeping for each
// id the entry with the highest normalized score (a strictly greater score
// replaces; ties keep the earlier entry). The merged output is sorted by
// score non-increasing.
func mergeByMaxScore(lists ...[]result.Result) []result.Result {
	best := make(map[int64]result.Result)
	var order []int64

	for _, list := range lists {
		for _, r := range list {
			id := r.PostID()
			prev, ok := best[id]
			if !ok {
				best[id] = r
				order = append(order, id)
				continue
			}
			if r.Score() > prev.Score() {
				best[id] = r
			}
		}
	}

	merged := make([]result.Result, 0, len(order))
	for _, id := range order {
		merged = append(merged, best[id])
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score() > merged[j].Score()
	})
	return merged
}

// rankScore converts list position into a [0,1] score: the head of the list
// gets 1.0, falling off linearly with rank.
func rankScore(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return 1 - float64(i)/float64(n)
}
