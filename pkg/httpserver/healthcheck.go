package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sparklean/notify/pkg/logger"
)

// HealthCheckHandler returns a handler usable for liveness and
// readiness probes. With no dependency functions it answers 200
// "ALIVE"; with dependency functions it runs each and answers 200
// "READY" only when all of them succeed.
func HealthCheckHandler(ctx context.Context, log *slog.Logger, funcs ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(funcs) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, f := range funcs {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
