package corpus

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hs-advisor/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func testLayout(dir string) Layout {
	layout := DefaultLayout(dir)
	layout.CasePartitions = 3
	return layout
}

func TestLayout_Sources(t *testing.T) {
	specs := testLayout("knowledge").Sources()
	require.Len(t, specs, 5)

	assert.Equal(t, "HS분류사례_part1", specs[0].Name)
	assert.Equal(t, filepath.Join("knowledge", "HS분류사례_part1.json"), specs[0].Path)
	assert.Equal(t, types.KindCase, specs[0].Kind)
	assert.Equal(t, "HS분류사례_part3", specs[2].Name)
	assert.Equal(t, "HS위원회", specs[3].Name)
	assert.Equal(t, types.KindCommittee, specs[3].Kind)
	assert.Equal(t, "HS협의회", specs[4].Name)
	assert.Equal(t, types.KindCouncil, specs[4].Kind)
}

func TestLoad_MissingPartitionIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "HS분류사례_part1.json", `[{"품명": "휴대폰", "code": "8517"}]`)
	// part2 is absent
	writeFile(t, dir, "HS분류사례_part3.json", `[{"품명": "냉장고"}, {"품명": "세탁기"}]`)
	writeFile(t, dir, "HS위원회.json", `[{"item": "phone", "code": "8517"}]`)
	writeFile(t, dir, "HS협의회.json", `[]`)

	var logs bytes.Buffer
	loader := NewLoader(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	corpus, err := loader.Load(context.Background(), testLayout(dir).Sources())
	require.NoError(t, err)

	names := make([]string, 0, len(corpus.Sources))
	for _, s := range corpus.Sources {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"HS분류사례_part1", "HS분류사례_part3", "HS위원회", "HS협의회"}, names)
	assert.Equal(t, 4, corpus.Len())

	_, ok := corpus.Source("HS분류사례_part2")
	assert.False(t, ok)

	part3, ok := corpus.Source("HS분류사례_part3")
	require.True(t, ok)
	require.Len(t, part3.Records, 2)
	assert.Equal(t, 1, part3.Records[1].Seq)
	assert.Equal(t, "HS분류사례_part3", part3.Records[1].Source)

	assert.Contains(t, logs.String(), "HS분류사례_part2")
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestLoad_AllMissing(t *testing.T) {
	corpus, err := NewLoader().Load(context.Background(), testLayout(t.TempDir()).Sources())
	require.NoError(t, err)
	assert.Empty(t, corpus.Sources)
	assert.Equal(t, 0, corpus.Len())
}

func TestLoad_MalformedIsHardFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid JSON", `[{"품명": "휴대폰",`},
		{"object instead of array", `{"품명": "휴대폰"}`},
		{"array of scalars", `["휴대폰", "냉장고"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "HS분류사례_part1.json", `[{"품명": "휴대폰"}]`)
			writeFile(t, dir, "HS분류사례_part2.json", tt.content)

			_, err := NewLoader().Load(context.Background(), testLayout(dir).Sources())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))

			var malformed *MalformedSourceError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, "HS분류사례_part2", malformed.Source)
		})
	}
}

func TestLoad_ReportsEveryMalformedSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "HS분류사례_part1.json", `not json`)
	writeFile(t, dir, "HS위원회.json", `{"a": 1}`)

	_, err := NewLoader().Load(context.Background(), testLayout(dir).Sources())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HS분류사례_part1")
	assert.Contains(t, err.Error(), "HS위원회")
}

func TestLoad_PreservesNumbers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "HS분류사례_part1.json", `[{"code": 8517620000, "rate": 0.08}]`)

	corpus, err := NewLoader().Load(context.Background(), testLayout(dir).Sources())
	require.NoError(t, err)

	rec := corpus.Sources[0].Records[0]
	code, ok := rec.Field("code")
	require.True(t, ok)
	assert.Equal(t, "8517620000", code)
	assert.Equal(t, `{"code":8517620000,"rate":0.08}`, rec.Text())
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Load(ctx, testLayout(t.TempDir()).Sources())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadReference(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultReferenceFile)

	t.Run("missing file yields empty reference", func(t *testing.T) {
		entries, err := NewLoader().LoadReference(path)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("entries keep document order", func(t *testing.T) {
		writeFile(t, dir, DefaultReferenceFile, `[{"code": "85", "text": "first"}, {"code": "85", "text": "second"}]`)
		entries, err := NewLoader().LoadReference(path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "first", entries[0].Text)
	})

	t.Run("schema violation is malformed", func(t *testing.T) {
		writeFile(t, dir, DefaultReferenceFile, `[{"code": 85, "text": "number code"}]`)
		_, err := NewLoader().LoadReference(path)
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestLoadKnowledge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "HS위원회.json", `[{"item": "phone", "code": "8517"}]`)
	writeFile(t, dir, DefaultReferenceFile, `[{"code": "85", "text": "전기기기"}]`)
	writeFile(t, dir, DefaultGeneralRulesFile, `[{"head1": "통칙 1", "text": "표제는 참조의 편의를 위한 것"}]`)

	knowledge, err := NewLoader().LoadKnowledge(context.Background(), testLayout(dir))
	require.NoError(t, err)

	assert.Equal(t, 1, knowledge.Corpus.Len())
	assert.Equal(t, []types.ExplanationEntry{{Code: "85", Text: "전기기기"}}, knowledge.Reference)
	assert.Equal(t, []types.GeneralRule{{Head1: "통칙 1", Text: "표제는 참조의 편의를 위한 것"}}, knowledge.GeneralRules)
}
