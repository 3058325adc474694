package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testTokenValidator map[string]string

func (v testTokenValidator) ValidateToken(tokenString string) (ClientIDGetter, error) {
	clientID, ok := v[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(clientID), nil
}

type testClaims string

func (c testClaims) GetClientID() string {
	return string(c)
}

func TestAuthMiddleware(t *testing.T) {
	validator := testTokenValidator{"good-token": "portal"}

	tests := []struct {
		name       string
		path       string
		method     string
		header     string
		wantStatus int
		wantClient string
	}{
		{name: "valid token", path: "/ask", header: "Bearer good-token", wantStatus: http.StatusOK, wantClient: "portal"},
		{name: "case-insensitive scheme", path: "/ask", header: "BEARER good-token", wantStatus: http.StatusOK, wantClient: "portal"},
		{name: "missing header", path: "/ask", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/ask", header: "Basic good-token", wantStatus: http.StatusUnauthorized},
		{name: "extra parts", path: "/ask", header: "Bearer good-token extra", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", path: "/ask", header: "Bearer bad-token", wantStatus: http.StatusUnauthorized},
		{name: "public path", path: "/health", wantStatus: http.StatusOK},
		{name: "preflight", path: "/ask", method: http.MethodOptions, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClient string
			handler := AuthMiddleware(validator, "/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClient, _ = GetClientID(r)
				w.WriteHeader(http.StatusOK)
			}))

			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req := httptest.NewRequest(method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantClient, gotClient)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}

func TestGetClientID_Missing(t *testing.T) {
	_, ok := GetClientID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
	})
}
