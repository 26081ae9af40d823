package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/exlog/exercisetracker/internal/cache"
	"github.com/exlog/exercisetracker/internal/metrics"
)

type fakeLimiter struct {
	result *cache.RateLimitResult
	err    error
	gotIP  string
}

func (f *fakeLimiter) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error) {
	f.gotIP = ip
	return f.result, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitIP_Allowed(t *testing.T) {
	limiter := &fakeLimiter{result: &cache.RateLimitResult{Allowed: true, Remaining: 7}}
	cfg := RateLimitConfig{
		Logger:  slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		Limiter: limiter,
		Enabled: true,
		RPS:     5,
		Burst:   10,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.RemoteAddr = "203.0.113.9:52114"
	rec := httptest.NewRecorder()

	RateLimitIP(cfg)(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if limiter.gotIP != "203.0.113.9" {
		t.Errorf("limiter saw ip %q, want 203.0.113.9", limiter.gotIP)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "7" {
		t.Errorf("X-RateLimit-Remaining = %q, want 7", got)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
		t.Errorf("X-RateLimit-Limit = %q, want 10", got)
	}
}

func TestRateLimitIP_Rejected(t *testing.T) {
	recorder := metrics.NewInMemory()
	limiter := &fakeLimiter{result: &cache.RateLimitResult{Allowed: false, RetryAfter: 3 * time.Second}}
	cfg := RateLimitConfig{
		Logger:  slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		Limiter: limiter,
		Metrics: recorder,
		Enabled: true,
		RPS:     1,
		Burst:   1,
	}

	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	rec := httptest.NewRecorder()

	RateLimitIP(cfg)(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "3" {
		t.Errorf("Retry-After = %q, want 3", got)
	}
	if recorder.Snapshot().RateLimited != 1 {
		t.Errorf("RateLimited = %d, want 1", recorder.Snapshot().RateLimited)
	}
}

func TestRateLimitIP_FailOpen(t *testing.T) {
	var buf bytes.Buffer
	cfg := RateLimitConfig{
		Logger:  slog.New(slog.NewJSONHandler(&buf, nil)),
		Limiter: &fakeLimiter{err: errors.New("connection refused")},
		Enabled: true,
		RPS:     1,
		Burst:   1,
	}

	rec := httptest.NewRecorder()
	RateLimitIP(cfg)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("IP rate limit check failed")) {
		t.Error("expected limiter failure to be logged")
	}
}

func TestRateLimitIP_Disabled(t *testing.T) {
	limiter := &fakeLimiter{result: &cache.RateLimitResult{Allowed: false}}

	for _, cfg := range []RateLimitConfig{
		{Limiter: limiter, Enabled: false},
		{Limiter: nil, Enabled: true},
	} {
		rec := httptest.NewRecorder()
		RateLimitIP(cfg)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	}
	if limiter.gotIP != "" {
		t.Error("limiter should not be consulted when disabled")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"ipv4 with port", nil, "198.51.100.1:1234", "198.51.100.1"},
		{"ipv6 with port", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"bare address", nil, "198.51.100.2", "198.51.100.2"},
		{"forwarded for ignored", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "10.0.0.1:1234", "10.0.0.1"},
		{"real ip header ignored", map[string]string{"X-Real-IP": "1.2.3.4"}, "10.0.0.1:1234", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimitIP_SpoofedForwardedFor(t *testing.T) {
	limiter := &fakeLimiter{result: &cache.RateLimitResult{Allowed: true, Remaining: 1}}
	cfg := RateLimitConfig{
		Logger:  slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		Limiter: limiter,
		Enabled: true,
		RPS:     1,
		Burst:   1,
	}

	for _, spoofed := range []string{"1.1.1.1", "2.2.2.2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.RemoteAddr = "192.0.2.10:40000"
		req.Header.Set("X-Forwarded-For", spoofed)

		RateLimitIP(cfg)(okHandler()).ServeHTTP(httptest.NewRecorder(), req)

		if limiter.gotIP != "192.0.2.10" {
			t.Errorf("bucket keyed on %q, want 192.0.2.10", limiter.gotIP)
		}
	}
}
