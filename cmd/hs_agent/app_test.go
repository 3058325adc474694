package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hs-advisor/internal/config"
	"github.com/jonathan/hs-advisor/internal/corpus"
	"github.com/jonathan/hs-advisor/internal/llm"
	"github.com/jonathan/hs-advisor/internal/server"
)

func TestLoadConfig_Precedence(t *testing.T) {
	resetRootFlags(t)
	dir := t.TempDir()
	writeFile(t, dir, "hs.yaml", "knowledge_dir: from-file\nmax_results: 7\nllm:\n  provider: openai\n")
	t.Setenv(config.EnvKnowledgeDir, "")
	t.Setenv(config.EnvOpenAIAPIKey, "sk-test")

	rootConfigPath = filepath.Join(dir, "hs.yaml")
	rootKnowledgeDir = ""

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.KnowledgeDir)
	assert.Equal(t, 7, cfg.MaxResults)
	assert.Equal(t, 10, cfg.Partitions)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)

	t.Setenv(config.EnvKnowledgeDir, "from-env")
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.KnowledgeDir)

	rootKnowledgeDir = "from-flag"
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.KnowledgeDir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	resetRootFlags(t)
	dir := t.TempDir()
	writeFile(t, dir, "hs.json", `{"llm": {"provider": "claude"}}`)

	rootConfigPath = filepath.Join(dir, "hs.json")
	_, err := loadConfig()
	assert.Error(t, err)

	rootConfigPath = filepath.Join(dir, "missing.json")
	_, err = loadConfig()
	assert.ErrorContains(t, err, "failed to load config")
}

func TestNewApp(t *testing.T) {
	a := newTestApp(t)

	counts, order := a.sourceCounts()
	assert.Equal(t, []string{"HS분류사례_part1", "HS위원회"}, order)
	assert.Equal(t, map[string]int{"HS분류사례_part1": 2, "HS위원회": 1}, counts)
	assert.Equal(t, 3, a.index.Records())

	hits := a.retriever.Search("냉동 새우", 5)
	require.Len(t, hits, 1)
	assert.Equal(t, "HS분류사례_part1", hits[0].Source)

	lookup := a.explainer.Lookup("851762")
	assert.True(t, lookup.Section.Found)
	assert.True(t, lookup.Heading.Found)
	assert.False(t, lookup.Subheading.Found)
}

func TestNewApp_MalformedSource(t *testing.T) {
	dir := writeKnowledge(t)
	writeFile(t, dir, corpus.DefaultCouncilFile, `{"not": "an array"}`)

	_, err := newApp(context.Background(), testConfig(dir), discardLogger())
	assert.ErrorIs(t, err, corpus.ErrMalformed)
}

func TestConnectLLM_RequiresAPIKey(t *testing.T) {
	a := newTestApp(t)
	a.cfg.LLM.APIKey = ""

	err := a.connectLLM(context.Background())
	assert.ErrorContains(t, err, config.EnvGeminiAPIKey)
	assert.Nil(t, a.dispatcher)
}

func TestLLMConfig(t *testing.T) {
	cfg := llmConfig(config.LLMConfig{
		Provider:    "openai",
		BaseURL:     "http://localhost:11434/v1",
		Temperature: 0.5,
		Models:      map[string]string{"lite": "llama3"},
	})

	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "http://localhost:11434/v1", cfg.BaseURL)
	assert.InDelta(t, 0.5, cfg.Temperature, 0.0001)
	assert.Equal(t, "llama3", cfg.GetModel(llm.TierLite))
	assert.Equal(t, llm.DefaultOpenAIConfig().GetModel(llm.TierStandard), cfg.GetModel(llm.TierStandard))
}

func TestLLMConfig_DefaultsToGemini(t *testing.T) {
	cfg := llmConfig(config.LLMConfig{})

	assert.Equal(t, llm.ProviderGemini, cfg.Provider)
	assert.InDelta(t, llm.DefaultTemperature, cfg.Temperature, 0.0001)
}

func TestServerConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.CORSOrigins = []string{"*"}

	out, err := serverConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, ":8080", out.Addr)
	assert.Equal(t, 5, out.MaxResults)
	assert.Equal(t, []string{"*"}, out.CORSOrigins)
	assert.True(t, out.RateLimit.Enabled)
	assert.Equal(t, 60, out.RateLimit.DefaultLimit)
	assert.Nil(t, out.JWT)

	cfg.Server.JWTSecret = "secret"
	cfg.Server.RequestsPerMinute = 0
	t.Setenv(config.EnvJWTExpirationHours, "")
	out, err = serverConfig(cfg)
	require.NoError(t, err)
	require.NotNil(t, out.JWT)
	assert.Equal(t, "secret", out.JWT.Secret)
	assert.False(t, out.RateLimit.Enabled)
}

func TestIssueToken(t *testing.T) {
	t.Setenv(config.EnvJWTExpirationHours, "")

	token, err := issueToken("secret", "customs-portal")
	require.NoError(t, err)

	jwtCfg, err := config.NewJWTConfigWithSecret("secret")
	require.NoError(t, err)
	claims, err := server.NewJWTService(jwtCfg).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "customs-portal", claims.ClientID)
}

func TestIssueToken_RequiresSecret(t *testing.T) {
	_, err := issueToken("", "customs-portal")
	assert.Error(t, err)
}
