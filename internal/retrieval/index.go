package retrieval

import (
	"github.com/jonathan/hs-advisor/internal/corpus"
	"github.com/jonathan/hs-advisor/internal/types"
)

// Index maps a keyword to the records containing it, in load order.
// It is built once and never mutated afterwards.
type Index struct {
	buckets map[string][]*types.Record
	records int
}

// BuildIndex indexes every record of every source by the keywords of its search text
func BuildIndex(c *corpus.Corpus) *Index {
	ix := &Index{buckets: make(map[string][]*types.Record)}
	if c == nil {
		return ix
	}

	for _, source := range c.Sources {
		for _, record := range source.Records {
			for _, keyword := range Keywords(record.SearchText()) {
				ix.buckets[keyword] = append(ix.buckets[keyword], record)
			}
			ix.records++
		}
	}
	return ix
}

// Bucket returns the records indexed under keyword, nil when absent.
// The returned slice is shared and must not be modified.
func (ix *Index) Bucket(keyword string) []*types.Record {
	return ix.buckets[keyword]
}

// Len returns the number of distinct keywords
func (ix *Index) Len() int {
	return len(ix.buckets)
}

// Records returns the number of indexed records
func (ix *Index) Records() int {
	return ix.records
}
