package middleware

import (
	"context"
	"net/http"

	"github.com/pribylovaa/go-board/internal/models"
)

// Middleware — стандартный net/http мидлвар.
type Middleware func(http.Handler) http.Handler

// Chain применяет мидлвары к обработчику в порядке их перечисления.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type ctxKey int

const (
	ctxRequestID ctxKey = iota
	ctxClaims
)

// RequestIDFrom возвращает id запроса, выставленный RequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

// ClaimsFrom возвращает claims access-токена, проверенного AuthBearer.
func ClaimsFrom(ctx context.Context) (models.AccessClaims, bool) {
	c, ok := ctx.Value(ctxClaims).(models.AccessClaims)
	return c, ok
}

// WithClaims кладёт claims в контекст.
func WithClaims(ctx context.Context, c models.AccessClaims) context.Context {
	return context.WithValue(ctx, ctxClaims, c)
}

// statusWriter оборачивает ResponseWriter, чтобы перехватить статус и размер.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	count, err := w.ResponseWriter.Write(p)
	w.count += count
	return count, err
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}
