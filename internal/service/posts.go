package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/pkg/log"
	"github.com/pribylovaa/go-board/internal/storage"
)

// CreatePost публикует пост в доступной пользователю доске и
// добавляет +1 в буфер счётчика доски.
func (s *Service) CreatePost(ctx context.Context, userID, boardID int64, title, content string) (*models.Post, error) {
	const op = "service.posts.CreatePost"

	title, content, err := validatePost(title, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.accessibleBoard(ctx, userID, boardID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post := &models.Post{Title: title, Content: content, BoardID: boardID, AuthorID: userID}
	if err := s.storage.SavePost(ctx, post); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, wrapStorage(op, err)
	}

	s.recordDelta(ctx, boardID, +1)

	return post, nil
}

// GetPost возвращает пост, если его доска доступна пользователю.
func (s *Service) GetPost(ctx context.Context, userID, postID int64) (*models.Post, error) {
	const op = "service.posts.GetPost"

	post, err := s.postByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.accessibleBoard(ctx, userID, post.BoardID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// ListPosts возвращает страницу ленты доски (новые — первыми) и курсор
// на следующую страницу.
func (s *Service) ListPosts(ctx context.Context, userID, boardID int64, after *models.PostCursor, limit int) (*models.PostPage, error) {
	const op = "service.posts.ListPosts"

	limit, err := pageSize(limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.accessibleBoard(ctx, userID, boardID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	posts, err := s.storage.ListPosts(ctx, boardID, after, limit+1)
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	page := &models.PostPage{Posts: posts}
	if len(posts) > limit {
		page.Posts = posts[:limit]
		last := page.Posts[limit-1]
		page.Next = &models.PostCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	return page, nil
}

// UpdatePost меняет заголовок и текст. Только автор.
func (s *Service) UpdatePost(ctx context.Context, userID, postID int64, title, content string) (*models.Post, error) {
	const op = "service.posts.UpdatePost"

	title, content, err := validatePost(title, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.authoredPost(ctx, userID, postID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post, err := s.storage.UpdatePost(ctx, postID, title, content, s.now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, wrapStorage(op, err)
	}

	return post, nil
}

// DeletePost удаляет пост и добавляет -1 в буфер счётчика доски. Только автор.
func (s *Service) DeletePost(ctx context.Context, userID, postID int64) error {
	const op = "service.posts.DeletePost"

	post, err := s.authoredPost(ctx, userID, postID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return wrapStorage(op, err)
	}

	s.recordDelta(ctx, post.BoardID, -1)

	return nil
}

func (s *Service) postByID(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := s.storage.PostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, wrapStorage("service.posts.postByID", err)
	}

	return post, nil
}

func (s *Service) authoredPost(ctx context.Context, userID, postID int64) (*models.Post, error) {
	post, err := s.postByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, ErrForbidden
	}

	return post, nil
}

// recordDelta только логирует ошибку буфера: пост уже сохранён,
// счётчик доски отстанет на эту дельту.
func (s *Service) recordDelta(ctx context.Context, boardID, delta int64) {
	const op = "service.posts.recordDelta"

	if s.counter == nil {
		return
	}

	if err := s.counter.RecordDelta(ctx, boardID, delta); err != nil {
		log.From(ctx).Warn("counter_delta_failed",
			slog.String("op", op),
			slog.Int64("board_id", boardID),
			slog.Int64("delta", delta),
			slog.String("err", err.Error()),
		)
	}
}

func validatePost(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > 200 {
		return "", "", fmt.Errorf("title: %w", ErrInvalidArgument)
	}

	if strings.TrimSpace(content) == "" {
		return "", "", fmt.Errorf("content: %w", ErrInvalidArgument)
	}

	return title, content, nil
}
