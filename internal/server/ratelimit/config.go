package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig allows 60 requests per minute per client and endpoint, with
// the stricter DefaultEndpointConfigs for answer generation.
func DefaultConfig() *Config {
	return NewConfig(60, 10)
}

// NewConfig builds an enabled configuration with a default limit of
// requestsPerMinute and the given burst. requestsPerMinute <= 0 disables limiting.
func NewConfig(requestsPerMinute, burst int) *Config {
	if requestsPerMinute <= 0 {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    requestsPerMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Answer generation calls the language model and possibly web search
		{Path: "/ask", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// Retrieval endpoints are in-memory and use the default limit
		// Health check is unlimited, handled by special case in matcher
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
