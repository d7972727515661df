package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-board/internal/app"
	"github.com/pribylovaa/go-board/internal/config"
	"github.com/pribylovaa/go-board/internal/counter"
	"github.com/pribylovaa/go-board/internal/metrics"
	logctx "github.com/pribylovaa/go-board/internal/pkg/log"
	"github.com/pribylovaa/go-board/internal/service"
	"github.com/pribylovaa/go-board/internal/session"
	httptransport "github.com/pribylovaa/go-board/internal/transport/http"
	"github.com/pribylovaa/go-board/internal/transport/http/middleware"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting application", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Подключение к хранилищам c таймаутом.
	openCtx, openCancel := context.WithTimeout(logctx.Into(rootCtx, log), 10*time.Second)
	deps, err := app.Open(openCtx, cfg)
	openCancel()
	if err != nil {
		log.Error("deps_open_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	// Метрики.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Сервис.
	counterSync := counter.NewSynchronizer(deps.Deltas, deps.Storage, m)
	srvc, err := service.New(deps.Storage, counterSync, cfg.Auth, service.WithRecorder(m))
	if err != nil {
		log.Error("service_init_failed", slog.String("err", err.Error()))
		rootCancel()
		deps.Close()
		os.Exit(1)
	}
	log.Info("service_initialized")

	var ready atomic.Bool

	handler := httptransport.NewRouter(srvc, httptransport.Options{
		Logger:     log,
		Timeout:    cfg.Timeouts.Service,
		Observer:   m,
		Limiter:    middleware.NewIPLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst),
		Cookie:     cfg.Cookie,
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
		Health: func(ctx context.Context) error {
			if !ready.Load() {
				return errors.New("not ready")
			}
			return deps.Ping(ctx)
		},
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Фоновые задачи: свёртка счётчиков и очистка просроченных сессий.
	jobsCtx := logctx.Into(rootCtx, log)
	var jobs sync.WaitGroup
	jobs.Add(2)
	go func() {
		defer jobs.Done()
		counterSync.Run(jobsCtx, cfg.Jobs.CounterSyncInterval, cfg.Jobs.Timeout)
	}()
	go func() {
		defer jobs.Done()
		runSessionJanitor(jobsCtx, srvc.Sessions(), m, cfg.Jobs.SessionSweepInterval, cfg.Jobs.Timeout)
	}()

	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("http_listen_start", slog.String("addr", httpAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	ready.Store(true)

	// Ожидание сигнала завершения или фатальной ошибки сервера.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	ready.Store(false)

	// Graceful stop с таймаутом.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = httpSrv.Close()
	}
	log.Info("http_stopped")

	rootCancel()
	jobs.Wait()

	// Последняя свёртка: дельты из памяти процесса иначе потеряются.
	if _, err := counterSync.Fold(logctx.Into(shutdownCtx, log)); err != nil {
		log.Warn("final_fold_failed", slog.String("err", err.Error()))
	}

	// Явная очистка перед выходом.
	shutdownCancel()
	deps.Close()

	log.Info("service_stopped")
	os.Exit(0)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}

// runSessionJanitor периодически удаляет просроченные сессии.
// period <= 0 отключает задачу; каждый проход ограничен timeout.
func runSessionJanitor(ctx context.Context, sessions *session.Store, m *metrics.Metrics, period, timeout time.Duration) {
	if period <= 0 {
		return
	}

	log := logctx.From(ctx)

	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			sweepCtx, cancel := context.WithTimeout(ctx, timeout)
			n, err := sessions.SweepExpired(sweepCtx, time.Now().UTC())
			cancel()
			if err != nil {
				log.Error("session_janitor_failed", slog.String("err", err.Error()))
				continue
			}
			m.ObserveSweep(n)
			if n > 0 {
				log.Info("session_janitor_swept", slog.Int64("deleted", n))
			}
		}
	}
}
