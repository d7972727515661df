// Package redis — буфер дельт счётчика постов в Redis.
//
// Дельты хранятся в одном Redis Hash: поле — ID доски, значение — знаковая
// сумма. Add — это HINCRBY, Settle — Lua-скрипт, который вычитает ровно
// применённую часть и удаляет поле, если оно обнулилось.
package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/pribylovaa/go-board/internal/storage"
	"github.com/redis/go-redis/v9"
)

// DefaultKey — ключ Hash с дельтами, если в конфиге не задан свой.
const DefaultKey = "board:post_count_delta"

// settleScript атомарно вычитает applied и удаляет нулевое поле.
var settleScript = redis.NewScript(`
local v = redis.call('HINCRBY', KEYS[1], ARGV[1], -tonumber(ARGV[2]))
if v == 0 then
	redis.call('HDEL', KEYS[1], ARGV[1])
end
return v
`)

type DeltaStore struct {
	rdb *redis.Client
	key string
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если key пустой — используется DefaultKey.
func New(ctx context.Context, redisURL, key string) (*DeltaStore, error) {
	const op = "storage.redis.New"

	if key == "" {
		key = DefaultKey
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, wrap(op, err)
	}

	return &DeltaStore{rdb: rdb, key: key}, nil
}

// Add атомарно прибавляет delta к буферу доски.
func (d *DeltaStore) Add(ctx context.Context, entityID int64, delta int64) error {
	const op = "storage.redis.Add"

	if err := d.rdb.HIncrBy(ctx, d.key, field(entityID), delta).Err(); err != nil {
		return wrap(op, err)
	}

	return nil
}

// Pending возвращает ненулевые дельты.
func (d *DeltaStore) Pending(ctx context.Context) (map[int64]int64, error) {
	const op = "storage.redis.Pending"

	raw, err := d.rdb.HGetAll(ctx, d.key).Result()
	if err != nil {
		return nil, wrap(op, err)
	}

	out := make(map[int64]int64, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad field %q: %w", op, k, err)
		}

		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad value for %d: %w", op, id, err)
		}

		if n != 0 {
			out[id] = n
		}
	}

	return out, nil
}

// Settle вычитает уже применённую часть дельты. Приращения, пришедшие
// между Pending и Settle, остаются в буфере.
func (d *DeltaStore) Settle(ctx context.Context, entityID int64, applied int64) error {
	const op = "storage.redis.Settle"

	if applied == 0 {
		return nil
	}

	err := settleScript.Run(ctx, d.rdb, []string{d.key}, field(entityID), applied).Err()
	if err != nil {
		return wrap(op, err)
	}

	return nil
}

// Ping проверяет доступность Redis (для readiness-проб).
func (d *DeltaStore) Ping(ctx context.Context) error {
	const op = "storage.redis.Ping"

	if err := d.rdb.Ping(ctx).Err(); err != nil {
		return wrap(op, err)
	}

	return nil
}

// Close закрывает клиент Redis.
func (d *DeltaStore) Close() error { return d.rdb.Close() }

func field(id int64) string { return strconv.FormatInt(id, 10) }

// wrap помечает таймауты и сетевые ошибки как storage.ErrUnavailable.
func wrap(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
