package retrieval

import (
	"sort"
	"strings"

	"github.com/jonathan/hs-advisor/internal/types"
)

// DefaultMaxResults is the number of records RelevantContext draws on
const DefaultMaxResults = 5

// Retriever answers keyword queries against an Index
type Retriever struct {
	index *Index
}

// NewRetriever creates a Retriever over a built index
func NewRetriever(index *Index) *Retriever {
	if index == nil {
		index = &Index{buckets: map[string][]*types.Record{}}
	}
	return &Retriever{index: index}
}

// Search scores records by how many query keywords they share and returns
// the best maxResults of them. Ties keep first-seen order. Records are
// identified by pointer, so two records with identical content stay distinct.
func (r *Retriever) Search(query string, maxResults int) []types.Hit {
	if maxResults <= 0 {
		return []types.Hit{}
	}

	scores := make(map[*types.Record]int)
	var order []*types.Record
	for _, keyword := range Keywords(query) {
		for _, record := range r.index.Bucket(keyword) {
			if _, seen := scores[record]; !seen {
				order = append(order, record)
			}
			scores[record]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if len(order) > maxResults {
		order = order[:maxResults]
	}

	hits := make([]types.Hit, len(order))
	for i, record := range order {
		hits[i] = types.Hit{Source: record.Source, Record: record, Score: scores[record]}
	}
	return hits
}

// RelevantContext renders the top DefaultMaxResults hits for query as prompt
// context. It returns an empty string when nothing matches.
func (r *Retriever) RelevantContext(query string) string {
	return FormatContext(r.Search(query, DefaultMaxResults))
}

// FormatContext renders hits as "Source: ...\nItem: ..." blocks separated by a blank line
func FormatContext(hits []types.Hit) string {
	blocks := make([]string, 0, len(hits))
	for _, hit := range hits {
		blocks = append(blocks, "Source: "+hit.Source+"\nItem: "+hit.Record.Text())
	}
	return strings.Join(blocks, "\n\n")
}
