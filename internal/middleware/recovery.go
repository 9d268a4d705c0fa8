package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

const internalErrorBody = `{"error":"Internal server error","code":"INTERNAL_ERROR"}` + "\n"

// Recoverer turns a panic in any handler into a generic 500 JSON response.
// The panic value and stack go to the log only. When printStack is set the stack
// is also written to stderr.
func Recoverer(logger *slog.Logger, printStack bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)
				if printStack {
					debug.PrintStack()
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(internalErrorBody))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
