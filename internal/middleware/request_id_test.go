package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		incoming   string
		wantReused bool
	}{
		{"generated when missing", "", false},
		{"reused when present", "client-supplied-id", true},
		{"regenerated when oversized", strings.Repeat("x", maxRequestIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Header().Get(RequestIDHeader) != seen {
				t.Errorf("response header %q != context value %q", rec.Header().Get(RequestIDHeader), seen)
			}

			if tt.wantReused {
				if seen != tt.incoming {
					t.Errorf("request id = %q, want %q", seen, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(seen); err != nil {
				t.Errorf("generated request id %q is not a UUID: %v", seen, err)
			}
		})
	}
}

func TestRequestID_TracePropagation(t *testing.T) {
	t.Parallel()

	var traceID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = GetTraceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "trace-abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if traceID != "trace-abc" {
		t.Errorf("trace id = %q, want trace-abc", traceID)
	}
	if rec.Header().Get(TraceIDHeader) != "trace-abc" {
		t.Errorf("trace header not echoed")
	}
}
