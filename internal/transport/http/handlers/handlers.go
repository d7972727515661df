package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-board/internal/config"
	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/service"
	"github.com/pribylovaa/go-board/internal/transport/http/middleware"
	apierrors "github.com/pribylovaa/go-board/internal/transport/http/errors"
)

// maxBodyBytes — предел тела запроса.
const maxBodyBytes = 1 << 20

// Handlers агрегирует зависимости HTTP-обработчиков.
type Handlers struct {
	svc        *service.Service
	cookie     config.CookieConfig
	refreshTTL time.Duration
}

func New(svc *service.Service, cookie config.CookieConfig, refreshTTL time.Duration) *Handlers {
	return &Handlers{svc: svc, cookie: cookie, refreshTTL: refreshTTL}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return apierrors.ErrBadRequest
	}

	return nil
}

// decodeOptional — как decodeStrict, но пустое тело допустимо.
func decodeOptional(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil && !errors.Is(err, io.EOF) {
		return apierrors.ErrBadRequest
	}

	return nil
}

// claims достаёт claims, положенные AuthBearer. Отсутствие — ошибка сборки роутера.
func claims(r *http.Request) (models.AccessClaims, error) {
	c, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return models.AccessClaims{}, service.ErrUnauthenticated
	}

	return c, nil
}

func chiParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chiParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierrors.ErrBadRequest
	}

	return id, nil
}

// queryInt читает неотрицательное целое из query; пусто — 0.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apierrors.ErrBadRequest
	}

	return v, nil
}
