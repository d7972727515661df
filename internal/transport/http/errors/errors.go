// errors стандартизирует ответы об ошибках HTTP-слоя board-service.
// На вход принимает ошибку сервисного слоя, на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Все отказы аутентификации (неверный пароль, истёкший/отозванный refresh,
// битый access-токен) сводятся к одному 401 unauthenticated: причина
// остаётся в логах и метриках.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/pribylovaa/go-board/internal/service"
)

// RetryAfter — подсказка клиенту для 503 (секунды).
const RetryAfter = 1

var (
	// ErrBadRequest — тело или параметры запроса не разобраны.
	ErrBadRequest = errors.New("bad request")
	// ErrTooManyRequests — сработал лимитер запросов.
	ErrTooManyRequests = errors.New("too many requests")
	// ErrInternal — необработанная ошибка (паника и т.п.).
	ErrInternal = errors.New("internal")
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и ответ для фронта.
// err == nil — ошибка вызова: 500/internal, чтобы не маскировать баг.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет статус и тело, добавляет request_id из заголовка, для 503 — Retry-After.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	if status == http.StatusServiceUnavailable || status == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", strconv.Itoa(RetryAfter))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// classify — таблица service error -> HTTP/код/сообщение:
//   - ErrInvalidArgument, ErrBadRequest -> 400
//   - ErrInvalidCredentials, ErrInvalidOrExpiredSession, ErrUnauthenticated -> 401
//   - ErrForbidden -> 403
//   - ErrNotFound -> 404
//   - ErrEmailTaken, ErrBoardNameTaken -> 409
//   - ErrTooManyRequests -> 429
//   - ErrUnavailable -> 503
//   - прочее -> 500/internal
func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidOrExpiredSession),
		errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "permission_denied", "permission denied"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrBoardNameTaken):
		return http.StatusConflict, "already_exists", "already exists"
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, "resource_exhausted", "too many requests"
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable", "service unavailable"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
