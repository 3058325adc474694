// Package dispatch routes a question to one of the answering strategies and
// builds the language-model prompt from retrieved domain context.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/hs-advisor/internal/hscode"
	"github.com/jonathan/hs-advisor/internal/llm"
	"github.com/jonathan/hs-advisor/internal/prompts"
	"github.com/jonathan/hs-advisor/internal/sanitize"
	"github.com/jonathan/hs-advisor/internal/types"
	"github.com/jonathan/hs-advisor/internal/websearch"
)

// ManualModeMarker is appended to the history for explanatory-notes analysis
const ManualModeMarker = "\n(심층 해설서 분석 모드)"

// FailureFormat renders an LLM failure as the answer text
const FailureFormat = "오류가 발생했습니다: %v"

// ContextRetriever supplies case records relevant to a question
type ContextRetriever interface {
	RelevantContext(query string) string
}

// CodeExplainer renders explanatory notes for HS codes
type CodeExplainer interface {
	Explanations(codes []string) string
}

// Answer is the outcome of one question
type Answer struct {
	Intent types.Intent `json:"intent"`
	Text   string       `json:"answer"`
}

// Dispatcher answers questions using the strategy chosen by its Classifier
type Dispatcher struct {
	client     llm.Client
	retriever  ContextRetriever
	explainer  CodeExplainer
	searcher   websearch.Searcher
	classifier Classifier
	logger     *slog.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithClassifier replaces the default LLM classifier
func WithClassifier(c Classifier) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.classifier = c
		}
	}
}

// WithWebSearch sets the web search collaborator used by the web_search strategy
func WithWebSearch(s websearch.Searcher) Option {
	return func(d *Dispatcher) {
		d.searcher = s
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
	}
}

// New creates a Dispatcher. Unless WithClassifier is given, intents are
// classified by the same client.
func New(client llm.Client, retriever ContextRetriever, explainer CodeExplainer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client:    client,
		retriever: retriever,
		explainer: explainer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.classifier == nil {
		d.classifier = NewLLMClassifier(client, d.logger)
	}
	return d
}

// Answer classifies question and answers it with the matching strategy.
// History is the conversation so far, passed through to the prompt.
func (d *Dispatcher) Answer(ctx context.Context, question, history string) (Answer, error) {
	if strings.TrimSpace(question) == "" {
		return Answer{}, ErrEmptyQuestion
	}
	intent := d.classifier.Classify(ctx, question)
	return d.Route(ctx, intent, question, history)
}

// Route answers question with the strategy for intent, skipping classification
func (d *Dispatcher) Route(ctx context.Context, intent types.Intent, question, history string) (Answer, error) {
	if strings.TrimSpace(question) == "" {
		return Answer{}, ErrEmptyQuestion
	}
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}

	var (
		prompt string
		tier   = llm.TierStandard
	)
	switch intent {
	case types.IntentWebSearch:
		prompt = d.webSearchPrompt(ctx, question, history)
	case types.IntentClassification:
		prompt = d.classificationPrompt(question, history)
	case types.IntentManual:
		prompt = d.manualPrompt(question, history)
		tier = llm.TierAdvanced
	default:
		return Answer{}, &UnknownIntentError{Intent: string(intent)}
	}

	d.logger.Info("answering question", "intent", intent, "prompt_chars", len(prompt))
	return Answer{Intent: intent, Text: d.generate(ctx, prompt, tier)}, nil
}

func (d *Dispatcher) webSearchPrompt(ctx context.Context, question, history string) string {
	return prompts.Format(prompts.MustGet(prompts.Answering, prompts.KeyWebSearch), map[string]string{
		"History":    history,
		"Relevant":   d.retriever.RelevantContext(question),
		"WebResults": websearch.Summarize(ctx, d.searcher, question),
		"Question":   question,
	})
}

func (d *Dispatcher) classificationPrompt(question, history string) string {
	return prompts.Format(prompts.MustGet(prompts.Answering, prompts.KeyClassification), map[string]string{
		"History":  history,
		"Relevant": d.retriever.RelevantContext(question),
		"Question": question,
	})
}

// manualPrompt's template already carries ManualModeMarker after the history
func (d *Dispatcher) manualPrompt(question, history string) string {
	var explanations string
	if codes := hscode.ExtractCodes(question); len(codes) > 0 {
		explanations = d.explainer.Explanations(codes)
	}
	return prompts.Format(prompts.MustGet(prompts.Answering, prompts.KeyManual), map[string]string{
		"History":      history,
		"Explanations": explanations,
		"Question":     question,
	})
}

func (d *Dispatcher) generate(ctx context.Context, prompt string, tier llm.ModelTier) string {
	reply, err := d.client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		d.logger.Error("answer generation failed", "error", err, "model", d.client.GetModel(tier))
		return fmt.Sprintf(FailureFormat, err)
	}
	return sanitize.CleanAnswer(reply)
}
