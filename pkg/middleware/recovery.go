package middleware

import (
	"net/http"
	"runtime/debug"
	apperrors "roomledger/pkg/errors"
	httputil "roomledger/pkg/http"
	"roomledger/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					log.Error("Panic recovered",
						"request_id", logger.RequestID(r.Context()),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					if writeErr := httputil.WriteError(w, apperrors.Internal("Internal server error", nil)); writeErr != nil {
						log.Error("failed to write error response", "handler", "Recovery", "operation", "WriteError", "error", writeErr)
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
