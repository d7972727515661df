package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/storage"
)

const postColumns = `id, title, content, board_id, author_id, created_at, updated_at`

// SavePost создаёт пост.
func (s *Storage) SavePost(ctx context.Context, post *models.Post) error {
	const op = "storage.postgres.SavePost"

	query := `
		INSERT INTO posts(title, content, board_id, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRow(ctx, query, post.Title, post.Content, post.BoardID, post.AuthorID).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return wrap(op, err)
	}

	return nil
}

// PostByID находит пост по ID.
func (s *Storage) PostByID(ctx context.Context, id int64) (*models.Post, error) {
	const op = "storage.postgres.PostByID"

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(s.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrap(op, err)
	}

	return post, nil
}

// ListPosts — keyset-пагинация ленты доски по (created_at DESC, id DESC).
func (s *Storage) ListPosts(ctx context.Context, boardID int64, after *models.PostCursor, limit int) ([]models.Post, error) {
	const op = "storage.postgres.ListPosts"

	var (
		rows pgx.Rows
		err  error
	)

	if after == nil {
		rows, err = s.db.Query(ctx, `
			SELECT `+postColumns+`
			FROM posts
			WHERE board_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		`, boardID, limit)
	} else {
		rows, err = s.db.Query(ctx, `
			SELECT `+postColumns+`
			FROM posts
			WHERE board_id = $1 AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $4
		`, boardID, after.CreatedAt, after.ID, limit)
	}
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}

	return out, nil
}

// UpdatePost меняет заголовок и текст поста.
func (s *Storage) UpdatePost(ctx context.Context, id int64, title, content string, now time.Time) (*models.Post, error) {
	const op = "storage.postgres.UpdatePost"

	query := `
		UPDATE posts
		SET title = $2, content = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + postColumns

	post, err := scanPost(s.db.QueryRow(ctx, query, id, title, content, now))
	if err != nil {
		return nil, wrap(op, err)
	}

	return post, nil
}

// DeletePost удаляет пост.
func (s *Storage) DeletePost(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeletePost"

	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return wrap(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.BoardID, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	return &p, nil
}
