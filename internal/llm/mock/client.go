// Package mock provides a scripted llm.Client for tests.
package mock

import (
	"context"
	"sync"

	"github.com/jonathan/hs-advisor/internal/llm"
)

// Call records one GenerateContent invocation
type Call struct {
	Prompt string
	Tier   llm.ModelTier
}

// Client is a test double for llm.Client. Respond decides the reply for
// each prompt; when nil, Reply and Err are returned.
type Client struct {
	Reply   string
	Err     error
	Respond func(prompt string, tier llm.ModelTier) (string, error)

	mu     sync.Mutex
	calls  []Call
	closed bool
}

// NewClient creates a mock that always answers reply
func NewClient(reply string) *Client {
	return &Client{Reply: reply}
}

// GenerateContent records the call and returns the scripted reply
func (c *Client) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Prompt: prompt, Tier: tier})
	c.mu.Unlock()

	if c.Respond != nil {
		return c.Respond(prompt, tier)
	}
	return c.Reply, c.Err
}

// GetModel returns a fixed model name per tier
func (c *Client) GetModel(tier llm.ModelTier) string {
	return "mock-" + string(tier)
}

// Close marks the client closed
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Calls returns a copy of the recorded calls
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Closed reports whether Close was called
func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

var _ llm.Client = (*Client)(nil)
