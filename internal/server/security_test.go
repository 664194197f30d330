package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGuardAuthenticate(t *testing.T) {
	apiKey := "secret-key"
	guard := NewGuard(apiKey, nil)

	tests := []struct {
		name           string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{
			name:           "Valid API Key",
			providedKey:    apiKey,
			path:           "/api/v1/tasks",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid API Key",
			providedKey:    "wrong-key",
			path:           "/api/v1/tasks",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing API Key",
			providedKey:    "",
			path:           "/api/v1/tasks",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Public Path - Healthz",
			providedKey:    "",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Public Path - Metrics",
			providedKey:    "",
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()

			guard.Authenticate(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestSecureHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	rec := httptest.NewRecorder()

	SecureHeaders(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get(HeaderXSSProtection))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}

func TestGuardRateLimit(t *testing.T) {
	guard := NewGuard("secret-key", nil)
	limited := guard.RateLimit(okHandler())

	var lastCode int
	for i := 0; i < requestsPerWindow+1; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		req.RemoteAddr = "10.0.0.9:4321"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)

	// Other IPs keep their own budget
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.RemoteAddr = "10.0.0.10:4321"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardClientIP(t *testing.T) {
	t.Run("Untrusted Peer Ignores Forwarded Header", func(t *testing.T) {
		guard := NewGuard("k", nil)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		req.Header.Set(HeaderForwardedFor, "198.51.100.1")

		assert.Equal(t, "203.0.113.7", guard.clientIP(req))
	})

	t.Run("Trusted Proxy Uses Rightmost Forwarded IP", func(t *testing.T) {
		guard := NewGuard("k", []string{"10.0.0.1"})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set(HeaderForwardedFor, "198.51.100.1, 198.51.100.2")

		assert.Equal(t, "198.51.100.2", guard.clientIP(req))
	})
}

func TestIsPublic(t *testing.T) {
	assert.True(t, isPublic("/swagger/index.html"))
	assert.True(t, isPublic("/readyz"))
	assert.False(t, isPublic("/api/v1/contracts"))
}
