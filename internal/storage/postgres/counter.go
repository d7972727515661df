package postgres

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-board/internal/storage"
)

// PostCount читает денормализованный счётчик постов доски.
func (s *Storage) PostCount(ctx context.Context, boardID int64) (int64, error) {
	const op = "storage.postgres.PostCount"

	var n int64
	if err := s.db.QueryRow(ctx, `SELECT post_count FROM boards WHERE id = $1`, boardID).Scan(&n); err != nil {
		return 0, wrap(op, err)
	}

	return n, nil
}

// SetPostCount записывает счётчик постов доски.
func (s *Storage) SetPostCount(ctx context.Context, boardID int64, value int64) error {
	const op = "storage.postgres.SetPostCount"

	tag, err := s.db.Exec(ctx, `UPDATE boards SET post_count = $2 WHERE id = $1`, boardID, value)
	if err != nil {
		return wrap(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
