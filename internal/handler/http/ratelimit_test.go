package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(h http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodDelete, "/questions/1", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_Burst(t *testing.T) {
	tests := []struct {
		name     string
		burst    int
		requests int
		want     []int
	}{
		{name: "within burst", burst: 3, requests: 3, want: []int{200, 200, 200}},
		{name: "over burst", burst: 3, requests: 5, want: []int{200, 200, 200, 429, 429}},
		{name: "burst of one", burst: 1, requests: 2, want: []int{200, 429}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(0.001, tt.burst, nil)
			h := rl.Limit(okHandler())

			got := make([]int, 0, tt.requests)
			for i := 0; i < tt.requests; i++ {
				got = append(got, hit(h, "192.168.1.1:1234"))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(1, 1, nil)
	rl.now = func() time.Time { return now }
	h := rl.Limit(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1"))
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, nil)
	h := rl.Limit(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1"))
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:2"))
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimiter_CustomKey(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, func(r *http.Request) string { return r.Header.Get("X-User") })
	h := rl.Limit(okHandler())

	req := func(user string) int {
		r := httptest.NewRequest(http.MethodPost, "/questions", nil)
		r.Header.Set("X-User", user)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, req("alice"))
	assert.Equal(t, http.StatusOK, req("bob"))
	assert.Equal(t, http.StatusTooManyRequests, req("alice"))
}

func TestRateLimiter_RetryAfter(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, nil)
	h := rl.Limit(okHandler())
	hit(h, "10.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(0.001, 10, nil)
	h := rl.Limit(okHandler())

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if hit(h, "10.0.0.9:1") == http.StatusOK {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), allowed.Load())
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(1, 1, nil)
	rl.now = func() time.Time { return now }
	h := rl.Limit(okHandler())

	hit(h, "10.0.0.1:1")
	now = now.Add(10 * time.Minute)
	hit(h, "10.0.0.2:1")

	assert.Equal(t, 1, rl.Cleanup(5*time.Minute))
	assert.Equal(t, 1, rl.Len())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		realIP     string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.168.1.1:12345", want: "192.168.1.1"},
		{name: "x-forwarded-for first entry", xff: "203.0.113.1, 10.0.0.1", remoteAddr: "10.0.0.1:1", want: "203.0.113.1"},
		{name: "x-real-ip", realIP: "203.0.113.7", remoteAddr: "10.0.0.1:1", want: "203.0.113.7"},
		{name: "invalid forwarded falls back", xff: "not-an-ip", remoteAddr: "10.0.0.1:1", want: "10.0.0.1"},
		{name: "ipv6", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "no port", remoteAddr: "192.168.1.1", want: "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
