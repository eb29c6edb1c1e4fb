package http

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Hijack lets the websocket upgrader take over the connection
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

// loggingMiddleware logs every request at debug level
func loggingMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", wrapped.status),
			slog.Int("bytes", wrapped.size),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// securityHeadersMiddleware adds security headers to all responses
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The preview page only runs its own inline reload script
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline'; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; "+
				"connect-src 'self' ws: wss:; "+
				"frame-ancestors 'none'")

		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}

// rateLimiter is a sliding-window request counter per client IP. Idle clients
// are pruned lazily during checks.
type rateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientInfo
	limit     int
	window    time.Duration
	lastPrune time.Time
}

type clientInfo struct {
	lastSeen time.Time
	requests []time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		clients:   make(map[string]*clientInfo),
		limit:     limit,
		window:    window,
		lastPrune: time.Now(),
	}
}

// isAllowed records a request from ip and reports whether it is within the limit
func (rl *rateLimiter) isAllowed(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.window)

	if now.Sub(rl.lastPrune) > rl.window {
		for addr, info := range rl.clients {
			if info.lastSeen.Before(cutoff) {
				delete(rl.clients, addr)
			}
		}
		rl.lastPrune = now
	}

	client, exists := rl.clients[ip]
	if !exists {
		rl.clients[ip] = &clientInfo{lastSeen: now, requests: []time.Time{now}}
		return true
	}
	client.lastSeen = now

	valid := client.requests[:0]
	for _, t := range client.requests {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	client.requests = valid

	if len(valid) >= rl.limit {
		return false
	}

	client.requests = append(client.requests, now)
	return true
}

// rateLimitMiddleware rejects clients exceeding the limiter's budget
func rateLimitMiddleware(next http.Handler, limiter *rateLimiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.isAllowed(getClientIP(r), time.Now()) {
			w.Header().Set("Retry-After", fmt.Sprint(int(limiter.window.Seconds())))
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getClientIP extracts the client IP address, preferring proxy headers
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	if ip := net.ParseIP(r.Header.Get("X-Real-IP")); ip != nil {
		return ip.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// recoveryMiddleware turns handler panics into 500 responses
func recoveryMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered in http handler",
					slog.Any("panic", err),
					slog.String("path", r.URL.Path),
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
