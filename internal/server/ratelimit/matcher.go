package ratelimit

import (
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/explanations/" matches "/explanations/8517").
// Trailing slashes on the request path are ignored for exact matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}

	// Health check endpoint is unlimited
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
