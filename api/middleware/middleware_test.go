package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type testLogger struct {
	infos  []string
	errors []string
}

func (l *testLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *testLogger) Info(msg string, fields map[string]interface{})  { l.infos = append(l.infos, msg) }
func (l *testLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *testLogger) Error(msg string, fields map[string]interface{}) {
	l.errors = append(l.errors, msg)
}

func TestRequestLoggingMiddleware(t *testing.T) {
	logger := &testLogger{}
	var seenID string

	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/search?q=test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seenID == "" {
		t.Error("request id was not propagated through the context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seenID {
		t.Errorf("X-Request-ID header = %q, want %q", got, seenID)
	}
	if len(logger.infos) != 2 {
		t.Errorf("expected 2 info logs (start/complete), got %d", len(logger.infos))
	}
	if len(logger.errors) != 0 {
		t.Errorf("unexpected error logs: %v", logger.errors)
	}
}

func TestRequestLoggingMiddleware_ServerError(t *testing.T) {
	logger := &testLogger{}

	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(logger.errors) != 1 {
		t.Errorf("expected 1 error log for 500 response, got %d", len(logger.errors))
	}
}

func TestResponseWriterFlush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	if _, ok := interface{}(rw).(http.Flusher); !ok {
		t.Fatal("responseWriter must implement http.Flusher for streaming handlers")
	}
	rw.Write([]byte("chunk"))
	rw.Flush()

	if !rec.Flushed {
		t.Error("flush was not forwarded to the underlying writer")
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	if !rl.Allow("1.2.3.4") {
		t.Error("first request should be allowed")
	}
	if !rl.Allow("1.2.3.4") {
		t.Error("second request should be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third request should be rejected")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("different client should have its own bucket")
	}
}

func TestRateLimitMiddleware_Rejects(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*http.Request)
		want  string
	}{
		{"remote addr", func(r *http.Request) { r.RemoteAddr = "10.0.0.1:5555" }, "10.0.0.1:5555"},
		{"x-real-ip", func(r *http.Request) { r.Header.Set("X-Real-IP", "2.2.2.2") }, "2.2.2.2"},
		{"x-forwarded-for single", func(r *http.Request) { r.Header.Set("X-Forwarded-For", "3.3.3.3") }, "3.3.3.3"},
		{"x-forwarded-for chain", func(r *http.Request) { r.Header.Set("X-Forwarded-For", "3.3.3.3, 4.4.4.4") }, "4.4.4.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			if got := extractIP(req); got != tt.want {
				t.Errorf("extractIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
