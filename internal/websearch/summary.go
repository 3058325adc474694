package websearch

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Messages shown in place of results when the search cannot contribute
const (
	MsgNoAPIKey  = "웹 검색 API 키가 설정되어 있지 않습니다. Serper API 키를 입력해주세요."
	MsgNoResults = "웹 검색 결과를 찾을 수 없습니다."
	MsgFailed    = "웹 검색 중 오류가 발생했습니다: %v"
	summaryTitle = "웹 검색 결과 요약:\n"
)

// Searcher is the capability Summarize needs
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]Result, error)
}

// Summary renders results as a numbered markdown list
func Summary(results []Result) string {
	var sb strings.Builder
	sb.WriteString(summaryTitle)
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. [%s](%s): %s\n", i+1, r.Title, r.Link, r.Snippet))
	}
	return sb.String()
}

// Summarize searches and returns either the rendered summary or a localized
// message explaining why there is none. It never returns an error.
func Summarize(ctx context.Context, s Searcher, query string) string {
	if s == nil {
		return MsgNoAPIKey
	}
	results, err := s.Search(ctx, query, DefaultNumResults)
	switch {
	case errors.Is(err, ErrNoAPIKey):
		return MsgNoAPIKey
	case errors.Is(err, ErrNoResults):
		return MsgNoResults
	case err != nil:
		return fmt.Sprintf(MsgFailed, err)
	}
	return Summary(results)
}
