// Package prompts provides a loader for externalized LLM prompt templates.
// Prompts are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Answering is the prompt file used by the question dispatcher
const Answering = "answering.json"

// Prompt keys in Answering
const (
	KeyClassifyIntent = "classify-intent"
	KeyWebSearch      = "web-search"
	KeyClassification = "hs-classification"
	KeyManual         = "hs-manual"
)

var (
	loadOnce sync.Once
	files    map[string]map[string]string
	loadErr  error
)

// loadAll parses every embedded prompt file once.
func loadAll() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		files = make(map[string]map[string]string)
		names, err := fs.Glob(promptFiles, "*.json")
		if err != nil {
			loadErr = err
			return
		}
		for _, name := range names {
			data, err := promptFiles.ReadFile(name)
			if err != nil {
				loadErr = fmt.Errorf("failed to read prompt file %s: %w", name, err)
				return
			}
			var prompts map[string]string
			if err := json.Unmarshal(data, &prompts); err != nil {
				loadErr = fmt.Errorf("failed to parse prompt file %s: %w", name, err)
				return
			}
			files[name] = prompts
		}
	})
	return files, loadErr
}

// Get retrieves a prompt by filename and key.
func Get(filename, key string) (string, error) {
	all, err := loadAll()
	if err != nil {
		return "", err
	}

	prompts, ok := all[filename]
	if !ok {
		return "", fmt.Errorf("prompt file %s not found", filename)
	}

	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt by filename and key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces {{.Key}} placeholders with values from data in a single
// pass, so placeholder-like text inside a value is left as is.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// List returns the prompt keys of a file in sorted order.
func List(filename string) ([]string, error) {
	all, err := loadAll()
	if err != nil {
		return nil, err
	}
	prompts, ok := all[filename]
	if !ok {
		return nil, fmt.Errorf("prompt file %s not found", filename)
	}

	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
