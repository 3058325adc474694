package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", WithEndpoint(srv.URL), WithRetry(3, time.Millisecond))
}

func TestSearch_SendsRequestAndParsesResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "냉동 새우 관세", req["q"])
		assert.EqualValues(t, 3, req["num"])

		_, _ = w.Write([]byte(`{"organic":[
			{"title":"<b>Shrimp</b> tariff","snippet":"Heading 0306 &amp; more","link":"https://example.com/a"},
			{"title":"Second","snippet":"plain","link":"https://example.com/b"}
		]}`))
	})

	results, err := client.Search(context.Background(), "냉동 새우 관세", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, Result{Title: "Shrimp tariff", Snippet: "Heading 0306 & more", Link: "https://example.com/a"}, results[0])
	assert.Equal(t, "Second", results[1].Title)
}

func TestSearch_NoAPIKey(t *testing.T) {
	client := NewClient("")
	_, err := client.Search(context.Background(), "anything", 3)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestSearch_EmptyResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"organic":[]}`))
	})
	_, err := client.Search(context.Background(), "nothing", 3)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"organic":[{"title":"ok","snippet":"s","link":"l"}]}`))
	})

	results, err := client.Search(context.Background(), "q", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSearch_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"bad key"}`))
	})

	_, err := client.Search(context.Background(), "q", 1)
	require.Error(t, err)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "bad key")
	assert.Equal(t, int32(1), calls.Load())
}

type stubSearcher struct {
	results []Result
	err     error
}

func (s stubSearcher) Search(context.Context, string, int) ([]Result, error) {
	return s.results, s.err
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		searcher Searcher
		want     string
	}{
		{
			name:     "results",
			searcher: stubSearcher{results: []Result{{Title: "T", Link: "https://x", Snippet: "S"}}},
			want:     "웹 검색 결과 요약:\n1. [T](https://x): S\n",
		},
		{name: "no key", searcher: stubSearcher{err: ErrNoAPIKey}, want: MsgNoAPIKey},
		{name: "nil searcher", searcher: nil, want: MsgNoAPIKey},
		{name: "no results", searcher: stubSearcher{err: ErrNoResults}, want: MsgNoResults},
		{
			name:     "other failure",
			searcher: stubSearcher{err: errors.New("boom")},
			want:     "웹 검색 중 오류가 발생했습니다: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(context.Background(), tt.searcher, "q"))
		})
	}
}
