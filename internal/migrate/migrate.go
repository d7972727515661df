// Package migrate применяет встроенные SQL-миграции через golang-migrate.
package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pribylovaa/go-board/migrations"
)

// Направления миграций.
const (
	Up   = "up"
	Down = "down"
)

var (
	ErrEmptyDSN     = errors.New("DATABASE_URL is not set")
	ErrBadDirection = errors.New("direction must be up or down")
)

// Run применяет миграции в направлении direction. Отсутствие изменений не ошибка.
func Run(dsn string, direction string) error {
	const op = "migrate.Run"

	if dsn == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyDSN)
	}
	if direction != Up && direction != Down {
		return fmt.Errorf("%s: %w, got %q", op, ErrBadDirection, direction)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("%s: source: %w", op, err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %s: %w", op, direction, err)
	}

	return nil
}
