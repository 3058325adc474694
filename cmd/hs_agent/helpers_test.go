package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/hs-advisor/internal/config"
	"github.com/jonathan/hs-advisor/internal/corpus"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// writeKnowledge creates a small knowledge directory with one case partition,
// the committee decisions and both reference documents.
func writeKnowledge(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "HS분류사례_part1.json", `[
		{"품명": "냉동 새우", "세번": "0306.17"},
		{"품명": "휴대폰", "세번": "8517.13"}
	]`)
	writeFile(t, dir, corpus.DefaultCommitteeFile, `[{"품명": "스마트 워치", "결정": "8517.62"}]`)
	writeFile(t, dir, corpus.DefaultReferenceFile, `[
		{"code": "85", "text": "전기기기와 그 부분품"},
		{"code": "8517", "text": "전화기"}
	]`)
	writeFile(t, dir, corpus.DefaultGeneralRulesFile, `[{"head1": "통칙 1", "text": "표제는 참조의 편의를 위한 것"}]`)
	return dir
}

// testConfig returns defaults pointed at dir with a single case partition
func testConfig(dir string) config.Config {
	cfg := config.Defaults()
	cfg.KnowledgeDir = dir
	cfg.Partitions = 1
	return cfg
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	a, err := newApp(context.Background(), testConfig(writeKnowledge(t)), discardLogger())
	require.NoError(t, err)
	return a
}

// resetRootFlags restores the persistent flag variables after a test
func resetRootFlags(t *testing.T) {
	t.Helper()
	configPath, knowledgeDir, verbose := rootConfigPath, rootKnowledgeDir, rootVerbose
	t.Cleanup(func() {
		rootConfigPath, rootKnowledgeDir, rootVerbose = configPath, knowledgeDir, verbose
	})
}
