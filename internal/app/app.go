// app открывает внешние зависимости по конфигурации: хранилище
// (postgres или память) и буфер дельт счётчиков (redis или память).
// Общий код board-service и board-manage.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-board/internal/config"
	"github.com/pribylovaa/go-board/internal/counter"
	"github.com/pribylovaa/go-board/internal/pkg/log"
	"github.com/pribylovaa/go-board/internal/storage"
	"github.com/pribylovaa/go-board/internal/storage/memory"
	"github.com/pribylovaa/go-board/internal/storage/postgres"
	"github.com/pribylovaa/go-board/internal/storage/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps — открытые зависимости процесса.
type Deps struct {
	Storage storage.Storage
	Deltas  counter.DeltaStore

	pingers []pinger
	closers []func()
}

// Open подключает хранилище и буфер дельт. При ошибке уже открытое закрывается.
func Open(ctx context.Context, cfg *config.Config) (*Deps, error) {
	const op = "app.Open"

	lg := log.From(ctx)
	d := &Deps{}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		st := memory.New()
		d.Storage = st
		d.pingers = append(d.pingers, st)
		lg.Warn("storage_memory", slog.String("op", op))
	default:
		st, err := postgres.New(ctx, cfg.DB.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		d.Storage = st
		d.pingers = append(d.pingers, st)
		d.closers = append(d.closers, st.Close)
		lg.Info("postgres_connected", slog.String("op", op))
	}

	if cfg.Redis.RedisURL == "" {
		d.Deltas = counter.NewMemoryStore()
		lg.Warn("deltas_in_process", slog.String("op", op))
		return d, nil
	}

	rdb, err := redis.New(ctx, cfg.Redis.RedisURL, cfg.Redis.DeltaKey)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	d.Deltas = rdb
	d.pingers = append(d.pingers, rdb)
	d.closers = append(d.closers, func() { _ = rdb.Close() })
	lg.Info("redis_connected", slog.String("op", op))

	return d, nil
}

// Ping проверяет все подключения (readiness).
func (d *Deps) Ping(ctx context.Context) error {
	var errs []error
	for _, p := range d.pingers {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Close закрывает подключения в обратном порядке.
func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}
