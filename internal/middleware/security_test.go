package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurity(t *testing.T) {
	tests := []struct {
		name        string
		isDev       bool
		checkHeader string
		wantValue   string
	}{
		{"nosniff", false, "X-Content-Type-Options", "nosniff"},
		{"frame options", false, "X-Frame-Options", "DENY"},
		{"referrer policy", false, "Referrer-Policy", "no-referrer"},
		{"csp", false, "Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
		{"coop", false, "Cross-Origin-Opener-Policy", "same-origin"},
		{"corp", false, "Cross-Origin-Resource-Policy", "same-origin"},
		{"cache control", false, "Cache-Control", "no-store"},
		{"hsts in production", false, "Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
		{"no hsts in development", true, "Strict-Transport-Security", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Security(SecurityConfig{IsDevelopment: tt.isDev})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

			if got := rec.Header().Get(tt.checkHeader); got != tt.wantValue {
				t.Errorf("header %s = %q, want %q", tt.checkHeader, got, tt.wantValue)
			}
		})
	}
}

func TestMaxBodySize(t *testing.T) {
	tests := []struct {
		name          string
		maxBytes      int64
		contentLength int64
		body          string
		wantStatus    int
	}{
		{
			name:          "small body allowed",
			maxBytes:      1024,
			contentLength: 10,
			body:          "small body",
			wantStatus:    http.StatusOK,
		},
		{
			name:          "content-length exceeds limit",
			maxBytes:      10,
			contentLength: 100,
			body:          "this is a much longer body that exceeds the limit",
			wantStatus:    http.StatusRequestEntityTooLarge,
		},
		{
			name:          "streamed body exceeds limit",
			maxBytes:      10,
			contentLength: -1,
			body:          "this is a much longer body that exceeds the limit",
			wantStatus:    http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := MaxBodySize(tt.maxBytes)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := io.Copy(io.Discard, r.Body); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(tt.body))
			req.ContentLength = tt.contentLength
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
