package counter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-board/internal/pkg/log"
	"github.com/pribylovaa/go-board/internal/storage"
	"golang.org/x/sync/singleflight"
)

// Durable — долговременная сторона счётчика.
type Durable interface {
	PostCount(ctx context.Context, boardID int64) (int64, error)
	SetPostCount(ctx context.Context, boardID int64, value int64) error
}

// FoldResult — итог одного прохода свёртки.
type FoldResult struct {
	// Folded — сколько сущностей получили новое значение счётчика.
	Folded int
	// Discarded — дельты сущностей, которых больше нет в БД.
	Discarded int
	// Failed — сущности, чьи дельты остались в буфере до следующего прохода.
	Failed int
}

// Observer получает итог каждой свёртки (метрики).
type Observer interface {
	ObserveFold(res FoldResult, took time.Duration, err error)
}

const restoreTimeout = 2 * time.Second

type Synchronizer struct {
	deltas  DeltaStore
	durable Durable
	obs     Observer
	group   singleflight.Group
}

// NewSynchronizer связывает буфер дельт и долговременный счётчик.
// obs может быть nil.
func NewSynchronizer(deltas DeltaStore, durable Durable, obs Observer) *Synchronizer {
	return &Synchronizer{deltas: deltas, durable: durable, obs: obs}
}

// RecordDelta добавляет ±1 (или любую дельту) к буферу доски.
func (s *Synchronizer) RecordDelta(ctx context.Context, boardID int64, delta int64) error {
	const op = "counter.RecordDelta"

	if delta == 0 {
		return nil
	}

	if err := s.deltas.Add(ctx, boardID, delta); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListPendingDeltas возвращает ненулевые дельты.
func (s *Synchronizer) ListPendingDeltas(ctx context.Context) (map[int64]int64, error) {
	const op = "counter.ListPendingDeltas"

	pending, err := s.deltas.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pending, nil
}

// Fold применяет накопленные дельты: count = max(0, count + delta).
//
// Одновременно выполняется не больше одной свёртки: конкурентные вызовы
// ждут текущую и получают её результат. Дельта сущности снимается перед
// записью и возвращается в буфер, если запись не удалась. Ошибки всех
// сущностей объединяются в одну.
func (s *Synchronizer) Fold(ctx context.Context) (FoldResult, error) {
	v, err, _ := s.group.Do("fold", func() (interface{}, error) {
		start := time.Now()
		res, err := s.fold(ctx)
		if s.obs != nil {
			s.obs.ObserveFold(res, time.Since(start), err)
		}
		return res, err
	})

	res, _ := v.(FoldResult)
	return res, err
}

func (s *Synchronizer) fold(ctx context.Context) (FoldResult, error) {
	const op = "counter.Fold"

	lg := log.From(ctx)

	var res FoldResult

	pending, err := s.deltas.Pending(ctx)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}

	var errs []error
	for id, delta := range pending {
		discarded, err := s.foldOne(ctx, id, delta)
		if err != nil {
			res.Failed++
			lg.Warn("fold_entity_failed",
				slog.String("op", op),
				slog.Int64("board_id", id),
				slog.Int64("delta", delta),
				slog.String("err", err.Error()),
			)
			errs = append(errs, fmt.Errorf("board %d: %w", id, err))
			continue
		}

		if discarded {
			res.Discarded++
			lg.Info("fold_entity_discarded",
				slog.String("op", op),
				slog.Int64("board_id", id),
				slog.Int64("delta", delta),
			)
			continue
		}

		res.Folded++
	}

	if len(errs) > 0 {
		return res, fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	return res, nil
}

// foldOne снимает дельту до записи и возвращает её в буфер, если запись
// не удалась. Сбой между записью и снятием иначе применил бы дельту дважды.
// Для удалённой доски дельта снимается без записи.
func (s *Synchronizer) foldOne(ctx context.Context, id, delta int64) (bool, error) {
	current, err := s.durable.PostCount(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return true, s.deltas.Settle(ctx, id, delta)
	}
	if err != nil {
		return false, err
	}

	if err := s.deltas.Settle(ctx, id, delta); err != nil {
		return false, err
	}

	next := current + delta
	if next < 0 {
		next = 0
	}

	if err := s.durable.SetPostCount(ctx, id, next); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return true, nil
		}
		if rerr := s.restore(ctx, id, delta); rerr != nil {
			return false, errors.Join(err, rerr)
		}
		return false, err
	}

	return false, nil
}

// restore возвращает снятую дельту. ctx записи мог уже истечь,
// поэтому возврат идёт с отдельным коротким таймаутом.
func (s *Synchronizer) restore(ctx context.Context, id, delta int64) error {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
	defer cancel()

	if err := s.deltas.Add(rctx, id, delta); err != nil {
		log.From(ctx).Error("fold_delta_lost",
			slog.Int64("board_id", id),
			slog.Int64("delta", delta),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("restore delta: %w", err)
	}

	return nil
}

// Run периодически вызывает Fold, пока не отменён ctx. interval <= 0 — no-op.
// Каждая свёртка ограничена timeout (<= 0 — без ограничения).
func (s *Synchronizer) Run(ctx context.Context, interval, timeout time.Duration) {
	const op = "counter.Run"

	if interval <= 0 {
		return
	}

	lg := log.From(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			res, err := s.foldWithin(ctx, timeout)
			if err != nil {
				lg.Warn("counter_sync_failed",
					slog.String("op", op),
					slog.Int("folded", res.Folded),
					slog.Int("failed", res.Failed),
					slog.String("err", err.Error()),
				)
				continue
			}

			if res.Folded > 0 || res.Discarded > 0 {
				lg.Info("counter_sync_ok",
					slog.String("op", op),
					slog.Int("folded", res.Folded),
					slog.Int("discarded", res.Discarded),
				)
			}
		}
	}
}

func (s *Synchronizer) foldWithin(ctx context.Context, timeout time.Duration) (FoldResult, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return s.Fold(ctx)
}
