package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-board/internal/config"
	"github.com/pribylovaa/go-board/internal/service"
	"github.com/pribylovaa/go-board/internal/transport/http/handlers"
	"github.com/pribylovaa/go-board/internal/transport/http/middleware"
)

// HealthFunc проверяет зависимости для /healthz.
type HealthFunc func(ctx context.Context) error

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// Observer получает метрики запросов; nil — без метрик.
	Observer middleware.Observer
	// Limiter ограничивает /auth/signup и /auth/login по IP; nil — без лимита.
	Limiter *middleware.IPLimiter
	Cookie  config.CookieConfig
	// RefreshTTL — Max-Age cookie с refresh-секретом.
	RefreshTTL time.Duration
	Health     HealthFunc
	// Metrics — обработчик /metrics; nil — маршрут не регистрируется.
	Metrics http.Handler
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования
		middleware.Logging(opts.Logger, opts.Observer),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	root.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	root.Get("/healthz", healthz(opts.Health))
	if opts.Metrics != nil {
		root.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	h := handlers.New(svc, opts.Cookie, opts.RefreshTTL)
	registerRoutes(root, h, svc, opts.Limiter)

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, auth middleware.Authenticator, limiter *middleware.IPLimiter) {
	// auth без токена
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter))
		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/login", h.Login)
	})
	r.Post("/auth/refresh", h.Refresh)

	// всё остальное — по access-токену
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthBearer(auth))

		r.Post("/auth/logout", h.Logout)
		r.Post("/auth/logout-all", h.LogoutAll)
		r.Get("/auth/sessions", h.ListSessions)
		r.Delete("/auth/sessions/{id}", h.RevokeSession)

		r.Post("/boards", h.CreateBoard)
		r.Get("/boards", h.ListBoards)
		r.Get("/boards/{id}", h.GetBoard)
		r.Put("/boards/{id}", h.UpdateBoard)
		r.Delete("/boards/{id}", h.DeleteBoard)

		r.Post("/boards/{id}/posts", h.CreatePost)
		r.Get("/boards/{id}/posts", h.ListPosts)
		r.Get("/posts/{id}", h.GetPost)
		r.Put("/posts/{id}", h.UpdatePost)
		r.Delete("/posts/{id}", h.DeletePost)
	})
}

func healthz(check HealthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
