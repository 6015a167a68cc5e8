package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rhuss/bote/pkg/api"
)

// Recovery returns middleware that catches panics in the handler and
// converts them to generic 500 error envelopes. Only a string summary of
// the panic value leaves the process; the stack stays in the log. The
// server continues to accept new requests after a panic is recovered.
func Recovery(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"request_id", RequestIDFromContext(r.Context()),
						"panic", fmt.Sprintf("%v", rec))
					WriteAPIError(w, api.NewInternalError(
						fmt.Sprintf("internal server error: %v", rec)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
