package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fredcamaral/deckgen/internal/adapters/secondary/logging"
	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(entities.LoggingConfig{Level: "debug", JSONFormat: true}, &buf)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("test response"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/deck", nil)
	w := httptest.NewRecorder()
	loggingMiddleware(handler, logger).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, buf.String(), `"path":"/api/deck"`)
	assert.Contains(t, buf.String(), `"status":201`)
	assert.Contains(t, buf.String(), `"bytes":13`)
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("normal operation", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		recoveryMiddleware(handler, logging.Discard()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("panic recovery", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("test panic")
		})

		w := httptest.NewRecorder()
		assert.NotPanics(t, func() {
			recoveryMiddleware(handler, logging.Discard()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	limiter := newRateLimiter(2, time.Minute)
	now := time.Now()

	assert.True(t, limiter.isAllowed("10.0.0.1", now))
	assert.True(t, limiter.isAllowed("10.0.0.1", now.Add(time.Second)))
	assert.False(t, limiter.isAllowed("10.0.0.1", now.Add(2*time.Second)))
	assert.True(t, limiter.isAllowed("10.0.0.2", now.Add(2*time.Second)), "limits are per client")

	assert.True(t, limiter.isAllowed("10.0.0.1", now.Add(61*time.Second)), "window slides")
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := newRateLimiter(1, time.Minute)
	handler := rateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), limiter)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded list", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, remote: "10.0.0.1:1234", want: "203.0.113.7"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "203.0.113.9"}, remote: "10.0.0.1:1234", want: "203.0.113.9"},
		{name: "remote addr", remote: "192.0.2.1:5555", want: "192.0.2.1"},
		{name: "bad forwarded header", headers: map[string]string{"X-Forwarded-For": "garbage"}, remote: "192.0.2.1:5555", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestResponseWriter(t *testing.T) {
	w := httptest.NewRecorder()
	wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

	wrapped.WriteHeader(http.StatusCreated)
	assert.Equal(t, http.StatusCreated, wrapped.status)

	n, err := wrapped.Write([]byte("first "))
	assert.NoError(t, err)
	assert.Equal(t, 6, n)
	_, _ = wrapped.Write([]byte("second"))
	assert.Equal(t, 12, wrapped.size)

	_, _, err = wrapped.Hijack()
	assert.Error(t, err, "recorders cannot be hijacked")
}
