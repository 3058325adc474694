package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/hs-advisor/internal/config"
	"github.com/jonathan/hs-advisor/internal/corpus"
	"github.com/jonathan/hs-advisor/internal/dispatch"
	"github.com/jonathan/hs-advisor/internal/hscode"
	"github.com/jonathan/hs-advisor/internal/llm"
	"github.com/jonathan/hs-advisor/internal/retrieval"
	"github.com/jonathan/hs-advisor/internal/websearch"
)

// loadConfig resolves the effective configuration. Precedence, lowest first:
// built-in defaults, config file, environment, command-line flags.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		slog.Debug("loaded config", "path", rootConfigPath)
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	cfg.ApplyEnv(os.Getenv)

	if rootKnowledgeDir != "" {
		cfg.KnowledgeDir = rootKnowledgeDir
	}
	if rootVerbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// llmConfig maps the file configuration onto the provider defaults
func llmConfig(cfg config.LLMConfig) *llm.Config {
	out := llm.ConfigFor(llm.Provider(cfg.Provider))
	out.BaseURL = cfg.BaseURL
	if cfg.Temperature > 0 {
		out.Temperature = cfg.Temperature
	}
	for tier, model := range cfg.Models {
		out = out.WithModel(llm.ModelTier(tier), model)
	}
	return out
}

// app holds the components built from one configuration
type app struct {
	cfg        config.Config
	logger     *slog.Logger
	knowledge  *corpus.Knowledge
	index      *retrieval.Index
	retriever  *retrieval.Retriever
	explainer  *hscode.Explainer
	llmClient  llm.Client
	dispatcher *dispatch.Dispatcher
}

// newApp loads the knowledge directory and builds the retrieval layer.
// The language model is connected separately by connectLLM.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	if logger == nil {
		logger = slog.Default()
	}

	layout := corpus.DefaultLayout(cfg.KnowledgeDir)
	layout.CasePartitions = cfg.Partitions

	knowledge, err := corpus.NewLoader(corpus.WithLogger(logger)).LoadKnowledge(ctx, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge from %s: %w", cfg.KnowledgeDir, err)
	}

	index := retrieval.BuildIndex(knowledge.Corpus)
	logger.Debug("knowledge loaded",
		"sources", len(knowledge.Corpus.Sources),
		"records", index.Records(),
		"keywords", index.Len(),
		"explanations", len(knowledge.Reference),
		"general_rules", len(knowledge.GeneralRules))

	return &app{
		cfg:       cfg,
		logger:    logger,
		knowledge: knowledge,
		index:     index,
		retriever: retrieval.NewRetriever(index),
		explainer: hscode.NewExplainer(knowledge.Reference, knowledge.GeneralRules),
	}, nil
}

// connectLLM creates the language model client and the dispatcher on top of it
func (a *app) connectLLM(ctx context.Context) error {
	if a.cfg.LLM.APIKey == "" {
		return fmt.Errorf("API key is required (set %s or %s, or llm.api_key in the config file)",
			config.EnvGeminiAPIKey, config.EnvOpenAIAPIKey)
	}

	client, err := llm.NewClient(ctx, llmConfig(a.cfg.LLM), a.cfg.LLM.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	a.llmClient = client

	search := websearch.NewClient(a.cfg.SerperAPIKey, websearch.WithLogger(a.logger))
	a.dispatcher = dispatch.New(client, a.retriever, a.explainer,
		dispatch.WithWebSearch(search),
		dispatch.WithLogger(a.logger))
	return nil
}

// sourceCounts returns record counts per source name and the load order
func (a *app) sourceCounts() (map[string]int, []string) {
	counts := make(map[string]int, len(a.knowledge.Corpus.Sources))
	order := make([]string, 0, len(a.knowledge.Corpus.Sources))
	for _, s := range a.knowledge.Corpus.Sources {
		counts[s.Name] = len(s.Records)
		order = append(order, s.Name)
	}
	return counts, order
}

// Close releases the language model client
func (a *app) Close() {
	if a.llmClient == nil {
		return
	}
	if err := a.llmClient.Close(); err != nil {
		a.logger.Warn("failed to close LLM client", "error", err)
	}
}

// setup loads the configuration and knowledge; withLLM also connects the model.
func setup(ctx context.Context, withLLM bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := newApp(ctx, cfg, slog.Default())
	if err != nil {
		return nil, err
	}
	if withLLM {
		if err := a.connectLLM(ctx); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// contextOrBackground returns ctx, or a background context when the command
// was run without one.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
