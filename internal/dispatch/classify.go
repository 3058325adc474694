package dispatch

import (
	"context"
	"log/slog"

	"github.com/jonathan/hs-advisor/internal/llm"
	"github.com/jonathan/hs-advisor/internal/prompts"
	"github.com/jonathan/hs-advisor/internal/types"
)

// Classifier decides which strategy answers a question
type Classifier interface {
	Classify(ctx context.Context, question string) types.Intent
}

// LLMClassifier asks the language model for one of the intent labels.
// Any failure or out-of-set reply yields types.DefaultIntent.
type LLMClassifier struct {
	client llm.Client
	logger *slog.Logger
}

// NewLLMClassifier creates a classifier backed by client. A nil logger uses slog.Default().
func NewLLMClassifier(client llm.Client, logger *slog.Logger) *LLMClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMClassifier{client: client, logger: logger}
}

// Classify returns the intent for question
func (c *LLMClassifier) Classify(ctx context.Context, question string) types.Intent {
	prompt := prompts.Format(prompts.MustGet(prompts.Answering, prompts.KeyClassifyIntent), map[string]string{
		"Question": question,
	})

	reply, err := c.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		c.logger.Warn("intent classification failed, using default", "error", err, "intent", types.DefaultIntent)
		return types.DefaultIntent
	}

	intent, ok := types.ParseIntent(llm.StripCodeFence(reply))
	if !ok {
		c.logger.Warn("unexpected intent label, using default", "label", reply, "intent", types.DefaultIntent)
		return types.DefaultIntent
	}
	c.logger.Debug("question classified", "intent", intent)
	return intent
}

// StaticClassifier always returns the same intent
type StaticClassifier types.Intent

// Classify returns the fixed intent
func (s StaticClassifier) Classify(context.Context, string) types.Intent {
	return types.Intent(s)
}
