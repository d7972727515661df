package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/storage"
)

// SaveBoard создаёт доску.
func (s *Storage) SaveBoard(ctx context.Context, board *models.Board) error {
	const op = "storage.memory.SaveBoard"

	if err := check(op, ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(board.Name, 0) {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	s.boardSeq++
	board.ID = s.boardSeq
	board.PostCount = 0
	board.CreatedAt = s.now().UTC()

	cp := *board
	s.boards[cp.ID] = &cp

	return nil
}

// BoardByID находит доску по ID.
func (s *Storage) BoardByID(ctx context.Context, id int64) (*models.Board, error) {
	const op = "storage.memory.BoardByID"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[id]
	if !ok {
		return nil, notFound(op)
	}

	cp := *b
	return &cp, nil
}

// ListAccessibleBoards возвращает публичные и собственные доски пользователя.
func (s *Storage) ListAccessibleBoards(ctx context.Context, userID int64, limit, offset int) ([]models.Board, error) {
	const op = "storage.memory.ListAccessibleBoards"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]models.Board, 0, len(s.boards))
	for _, b := range s.boards {
		if b.Public || b.OwnerID == userID {
			all = append(all, *b)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].PostCount != all[j].PostCount {
			return all[i].PostCount > all[j].PostCount
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return []models.Board{}, nil
	}

	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}

	return all, nil
}

// UpdateBoard применяет частичное обновление.
func (s *Storage) UpdateBoard(ctx context.Context, id int64, upd models.BoardUpdate) (*models.Board, error) {
	const op = "storage.memory.UpdateBoard"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[id]
	if !ok {
		return nil, notFound(op)
	}

	if upd.Name != nil {
		if s.nameTaken(*upd.Name, id) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}
		b.Name = *upd.Name
	}
	if upd.Public != nil {
		b.Public = *upd.Public
	}

	cp := *b
	return &cp, nil
}

// DeleteBoard удаляет доску вместе с её постами.
func (s *Storage) DeleteBoard(ctx context.Context, id int64) error {
	const op = "storage.memory.DeleteBoard"

	if err := check(op, ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[id]; !ok {
		return notFound(op)
	}

	delete(s.boards, id)
	for pid, p := range s.posts {
		if p.BoardID == id {
			delete(s.posts, pid)
		}
	}

	return nil
}

// PostCount читает счётчик постов доски.
func (s *Storage) PostCount(ctx context.Context, boardID int64) (int64, error) {
	const op = "storage.memory.PostCount"

	if err := check(op, ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[boardID]
	if !ok {
		return 0, notFound(op)
	}

	return b.PostCount, nil
}

// SetPostCount записывает счётчик постов доски.
func (s *Storage) SetPostCount(ctx context.Context, boardID int64, value int64) error {
	const op = "storage.memory.SetPostCount"

	if err := check(op, ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[boardID]
	if !ok {
		return notFound(op)
	}

	b.PostCount = value

	return nil
}

// nameTaken вызывается под s.mu.
func (s *Storage) nameTaken(name string, except int64) bool {
	for id, b := range s.boards {
		if id != except && b.Name == name {
			return true
		}
	}

	return false
}

// SavePost создаёт пост; доска должна существовать.
func (s *Storage) SavePost(ctx context.Context, post *models.Post) error {
	const op = "storage.memory.SavePost"

	if err := check(op, ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[post.BoardID]; !ok {
		return notFound(op)
	}

	s.postSeq++
	post.ID = s.postSeq
	post.CreatedAt = s.now().UTC()

	cp := *post
	s.posts[cp.ID] = &cp

	return nil
}

// PostByID находит пост по ID.
func (s *Storage) PostByID(ctx context.Context, id int64) (*models.Post, error) {
	const op = "storage.memory.PostByID"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, notFound(op)
	}

	return copyPost(p), nil
}

// ListPosts — keyset-страница постов доски по (created_at DESC, id DESC).
func (s *Storage) ListPosts(ctx context.Context, boardID int64, after *models.PostCursor, limit int) ([]models.Post, error) {
	const op = "storage.memory.ListPosts"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Post, 0)
	for _, p := range s.posts {
		if p.BoardID != boardID {
			continue
		}
		if after != nil && !before(p, after) {
			continue
		}
		out = append(out, *copyPost(p))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// UpdatePost меняет заголовок и текст поста.
func (s *Storage) UpdatePost(ctx context.Context, id int64, title, content string, now time.Time) (*models.Post, error) {
	const op = "storage.memory.UpdatePost"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, notFound(op)
	}

	at := now
	p.Title = title
	p.Content = content
	p.UpdatedAt = &at

	return copyPost(p), nil
}

// DeletePost удаляет пост.
func (s *Storage) DeletePost(ctx context.Context, id int64) error {
	const op = "storage.memory.DeletePost"

	if err := check(op, ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return notFound(op)
	}

	delete(s.posts, id)

	return nil
}

// before сообщает, что p идёт в ленте строго после курсора c.
func before(p *models.Post, c *models.PostCursor) bool {
	if p.CreatedAt.Equal(c.CreatedAt) {
		return p.ID < c.ID
	}

	return p.CreatedAt.Before(c.CreatedAt)
}

func copyPost(p *models.Post) *models.Post {
	cp := *p
	if p.UpdatedAt != nil {
		at := *p.UpdatedAt
		cp.UpdatedAt = &at
	}

	return &cp
}
