package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/go-board/internal/pkg/log"
	"github.com/pribylovaa/go-board/internal/service"
	apierrors "github.com/pribylovaa/go-board/internal/transport/http/errors"
)

// Timeout ограничивает обработку запроса сроком d, если у запроса ещё нет
// deadline. Если срок истёк, а обработчик так ничего и не записал, клиент
// получает 503 с Retry-After. d <= 0 — no-op.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r.WithContext(ctx))

			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return
			}

			log.From(r.Context()).Warn("request_deadline_exceeded",
				slog.String("path", r.URL.Path),
				slog.Duration("timeout", d),
				slog.Duration("took", time.Since(start)),
				slog.Int("status", sw.status),
			)

			if sw.status == 0 {
				apierrors.WriteError(sw, r, service.ErrUnavailable)
			}
		})
	}
}
