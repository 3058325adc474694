package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get(Answering, KeyClassifyIntent)
	require.NoError(t, err)
	assert.Contains(t, prompt, "web_search")
	assert.Contains(t, prompt, "hs_classification")
	assert.Contains(t, prompt, "hs_manual")
	assert.Contains(t, prompt, "{{.Question}}")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get(Answering, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestList_AnsweringPrompts(t *testing.T) {
	keys, err := List(Answering)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyClassifyIntent, KeyClassification, KeyManual, KeyWebSearch}, keys)
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_ValuesAreNotReexpanded(t *testing.T) {
	template := "{{.History}}|{{.Question}}"
	data := map[string]string{
		"History":  "",
		"Question": "what is {{.History}}?",
	}

	assert.Equal(t, "|what is {{.History}}?", Format(template, data))
}

func TestFormat_MissingKeyLeftInPlace(t *testing.T) {
	assert.Equal(t, "a {{.Missing}}", Format("a {{.Missing}}", map[string]string{}))
}

func TestManualPromptMarksAnalysisMode(t *testing.T) {
	prompt := MustGet(Answering, KeyManual)
	assert.Contains(t, prompt, "(심층 해설서 분석 모드)")
	assert.Contains(t, prompt, "{{.Explanations}}")
}
