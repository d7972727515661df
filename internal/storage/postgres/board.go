package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/storage"
)

const boardColumns = `id, name, public, owner_id, post_count, created_at`

// SaveBoard создаёт доску.
func (s *Storage) SaveBoard(ctx context.Context, board *models.Board) error {
	const op = "storage.postgres.SaveBoard"

	query := `
		INSERT INTO boards(name, public, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, post_count, created_at
	`

	err := s.db.QueryRow(ctx, query, board.Name, board.Public, board.OwnerID).
		Scan(&board.ID, &board.PostCount, &board.CreatedAt)
	if err != nil {
		return wrap(op, err)
	}

	return nil
}

// BoardByID находит доску по ID.
func (s *Storage) BoardByID(ctx context.Context, id int64) (*models.Board, error) {
	const op = "storage.postgres.BoardByID"

	query := `SELECT ` + boardColumns + ` FROM boards WHERE id = $1`

	board, err := scanBoard(s.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrap(op, err)
	}

	return board, nil
}

// ListAccessibleBoards возвращает публичные доски и приватные доски пользователя,
// самые наполненные — первыми.
func (s *Storage) ListAccessibleBoards(ctx context.Context, userID int64, limit, offset int) ([]models.Board, error) {
	const op = "storage.postgres.ListAccessibleBoards"

	query := `
		SELECT ` + boardColumns + `
		FROM boards
		WHERE public OR owner_id = $1
		ORDER BY post_count DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	out := make([]models.Board, 0, limit)
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, *board)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}

	return out, nil
}

// UpdateBoard применяет частичное обновление (NULL-поля не трогаются).
func (s *Storage) UpdateBoard(ctx context.Context, id int64, upd models.BoardUpdate) (*models.Board, error) {
	const op = "storage.postgres.UpdateBoard"

	query := `
		UPDATE boards
		SET name = COALESCE($2, name), public = COALESCE($3, public)
		WHERE id = $1
		RETURNING ` + boardColumns

	board, err := scanBoard(s.db.QueryRow(ctx, query, id, upd.Name, upd.Public))
	if err != nil {
		return nil, wrap(op, err)
	}

	return board, nil
}

// DeleteBoard удаляет доску; посты удаляются каскадно.
func (s *Storage) DeleteBoard(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteBoard"

	tag, err := s.db.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return wrap(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func scanBoard(row pgx.Row) (*models.Board, error) {
	var b models.Board
	if err := row.Scan(&b.ID, &b.Name, &b.Public, &b.OwnerID, &b.PostCount, &b.CreatedAt); err != nil {
		return nil, err
	}

	return &b, nil
}
