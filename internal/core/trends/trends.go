package trends

import (
	"sort"
	"strings"

	"github.com/akwamin-eng/asta-engine/internal/core/model"
)

// TopTags flattens comma-joined tag fields into discrete tags, counts
// frequency case-insensitively (first-seen casing wins), and returns the n
// most frequent. Ties rank by first encounter.
func TopTags(tagFields []string, n int) []string {
	if n <= 0 {
		return nil
	}

	type entry struct {
		display string
		count   int
		first   int
	}

	counts := make(map[string]*entry)
	var order []*entry

	for _, field := range tagFields {
		for _, tag := range model.SplitTags(field) {
			key := strings.ToLower(tag)
			e, ok := counts[key]
			if !ok {
				e = &entry{display: tag, first: len(order)}
				counts[key] = e
				order = append(order, e)
			}
			e.count++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	if len(order) > n {
		order = order[:n]
	}

	tags := make([]string, len(order))
	for i, e := range order {
		tags[i] = e.display
	}
	return tags
}
