// storage описывает контракты хранилищ board-service и общие
// sentinel-ошибки, на которые опирается сервисный слой.
package storage

//go:generate mockgen -source=storage.go -destination=../mocks/mock_storage.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-board/internal/models"
)

var (
	// ErrNotFound — запись не найдена (или не прошла фильтр активности).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/имя доски/отпечаток refresh-секрета).
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnavailable — хранилище не ответило вовремя или соединение потеряно.
	// Вызывающая сторона может повторить запрос с backoff.
	ErrUnavailable = errors.New("storage unavailable")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт пользователя и проставляет ему ID и CreatedAt.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// SessionStorage хранит сессии устройств. Все методы принимают
// отпечатки refresh-секретов, а не сами секреты.
type SessionStorage interface {
	// SaveSession создаёт новую сессию; ErrAlreadyExists при коллизии отпечатка.
	SaveSession(ctx context.Context, s *models.DeviceSession) error
	// ActiveSessionByHash ищет активную на момент now сессию по отпечатку.
	ActiveSessionByHash(ctx context.Context, hash string, now time.Time) (*models.DeviceSession, error)
	// ActiveSessionByID ищет активную на момент now сессию по ID.
	ActiveSessionByID(ctx context.Context, id uuid.UUID, now time.Time) (*models.DeviceSession, error)
	// RotateSessionHash атомарно меняет отпечаток oldHash -> newHash у активной сессии
	// и обновляет last_seen_at. ErrNotFound, если сессия уже ротирована, отозвана или истекла.
	RotateSessionHash(ctx context.Context, id uuid.UUID, oldHash, newHash string, now time.Time) error
	// TouchSession обновляет только last_seen_at.
	TouchSession(ctx context.Context, id uuid.UUID, now time.Time) error
	// RevokeSession отзывает сессию, если она ещё не отозвана.
	// Возвращает true, если отзыв произошёл именно сейчас.
	RevokeSession(ctx context.Context, id uuid.UUID, reason string, now time.Time) (bool, error)
	// RevokeUserSessions отзывает все активные сессии пользователя и возвращает их число.
	RevokeUserSessions(ctx context.Context, userID int64, reason string, now time.Time) (int64, error)
	// ListActiveSessions возвращает активные сессии пользователя, сначала последние использованные.
	ListActiveSessions(ctx context.Context, userID int64, now time.Time) ([]models.SessionSummary, error)
	// DeleteExpiredSessions физически удаляет сессии с expires_at < now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	// SessionStats считает агрегаты по сессиям.
	SessionStats(ctx context.Context, now time.Time) (models.SessionStats, error)
}

// BoardStorage выполняет операции над досками.
type BoardStorage interface {
	// SaveBoard создаёт доску; ErrAlreadyExists, если имя занято.
	SaveBoard(ctx context.Context, board *models.Board) error
	// BoardByID находит доску по ID.
	BoardByID(ctx context.Context, id int64) (*models.Board, error)
	// ListAccessibleBoards возвращает публичные доски и доски пользователя.
	ListAccessibleBoards(ctx context.Context, userID int64, limit, offset int) ([]models.Board, error)
	// UpdateBoard применяет частичное обновление.
	UpdateBoard(ctx context.Context, id int64, upd models.BoardUpdate) (*models.Board, error)
	// DeleteBoard удаляет доску вместе с постами.
	DeleteBoard(ctx context.Context, id int64) error
}

// PostStorage выполняет операции над постами.
type PostStorage interface {
	// SavePost создаёт пост и проставляет ему ID и CreatedAt.
	SavePost(ctx context.Context, post *models.Post) error
	// PostByID находит пост по ID.
	PostByID(ctx context.Context, id int64) (*models.Post, error)
	// ListPosts возвращает до limit постов доски строго после курсора.
	ListPosts(ctx context.Context, boardID int64, after *models.PostCursor, limit int) ([]models.Post, error)
	// UpdatePost меняет заголовок и текст поста.
	UpdatePost(ctx context.Context, id int64, title, content string, now time.Time) (*models.Post, error)
	// DeletePost удаляет пост.
	DeletePost(ctx context.Context, id int64) error
}

// CounterStorage — долговременная сторона счётчика постов доски.
type CounterStorage interface {
	// PostCount читает текущее значение счётчика.
	PostCount(ctx context.Context, boardID int64) (int64, error)
	// SetPostCount записывает новое значение счётчика.
	SetPostCount(ctx context.Context, boardID int64, value int64) error
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	SessionStorage
	BoardStorage
	PostStorage
	CounterStorage
	Close()
}
