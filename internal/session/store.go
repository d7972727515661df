// Package session — хранилище сессий устройств.
//
// Store принимает на вход сами refresh-секреты и отвечает за то, чтобы
// дальше него уходили только их отпечатки. Ошибки хранилища (ErrNotFound,
// ErrAlreadyExists, ErrUnavailable) пробрасываются обёрнутыми.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/security/secret"
	"github.com/pribylovaa/go-board/internal/storage"
)

// NewSession — метаданные новой сессии.
type NewSession struct {
	UserID     int64
	Secret     string
	DeviceName string
	IPAddress  string
	UserAgent  string
	TTL        time.Duration
}

type Store struct {
	repo storage.SessionStorage
	now  func() time.Time
}

// New создаёт Store поверх репозитория сессий.
func New(repo storage.SessionStorage) *Store {
	return &Store{repo: repo, now: time.Now}
}

// WithClock подменяет часы (тесты).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Create сохраняет новую сессию с expires_at = now + ttl.
// ErrAlreadyExists означает коллизию отпечатка: стоит сгенерировать новый секрет.
func (s *Store) Create(ctx context.Context, in NewSession) (uuid.UUID, error) {
	const op = "session.Create"

	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	sess := &models.DeviceSession{
		ID:               id,
		UserID:           in.UserID,
		DeviceName:       in.DeviceName,
		IPAddress:        in.IPAddress,
		UserAgent:        in.UserAgent,
		RefreshTokenHash: secret.Fingerprint(in.Secret),
		CreatedAt:        now,
		LastSeenAt:       now,
		ExpiresAt:        now.Add(in.TTL),
	}

	if err := s.repo.SaveSession(ctx, sess); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// FindActiveByRefreshSecret ищет активную сессию по секрету.
func (s *Store) FindActiveByRefreshSecret(ctx context.Context, refreshSecret string) (*models.DeviceSession, error) {
	const op = "session.FindActiveByRefreshSecret"

	sess, err := s.repo.ActiveSessionByHash(ctx, secret.Fingerprint(refreshSecret), s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sess, nil
}

// FindActiveByID ищет активную сессию по ID. Проверка владельца — на вызывающем.
func (s *Store) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.DeviceSession, error) {
	const op = "session.FindActiveByID"

	sess, err := s.repo.ActiveSessionByID(ctx, id, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sess, nil
}

// Rotate заменяет отпечаток oldSecret на отпечаток newSecret.
// Из двух конкурентных ротаций с одним oldSecret успешна ровно одна,
// вторая получает storage.ErrNotFound. Отозванная сессия не ротируется.
func (s *Store) Rotate(ctx context.Context, id uuid.UUID, oldSecret, newSecret string) error {
	const op = "session.Rotate"

	err := s.repo.RotateSessionHash(ctx, id, secret.Fingerprint(oldSecret), secret.Fingerprint(newSecret), s.now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Touch обновляет last_seen_at.
func (s *Store) Touch(ctx context.Context, id uuid.UUID) error {
	const op = "session.Touch"

	if err := s.repo.TouchSession(ctx, id, s.now().UTC()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Revoke отзывает сессию. Повторный отзыв — no-op без ошибки.
// Возвращает true, если отзыв произошёл этим вызовом.
func (s *Store) Revoke(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	const op = "session.Revoke"

	ok, err := s.repo.RevokeSession(ctx, id, reason, s.now().UTC())
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}

// RevokeAllForUser отзывает все активные сессии пользователя.
func (s *Store) RevokeAllForUser(ctx context.Context, userID int64, reason string) (int64, error) {
	const op = "session.RevokeAllForUser"

	n, err := s.repo.RevokeUserSessions(ctx, userID, reason, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// ListActiveForUser — активные сессии пользователя, сначала последние использованные.
func (s *Store) ListActiveForUser(ctx context.Context, userID int64) ([]models.SessionSummary, error) {
	const op = "session.ListActiveForUser"

	list, err := s.repo.ListActiveSessions(ctx, userID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// SweepExpired физически удаляет сессии с expires_at < now.
func (s *Store) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "session.SweepExpired"

	n, err := s.repo.DeleteExpiredSessions(ctx, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// Stats — агрегаты по сессиям на момент now.
func (s *Store) Stats(ctx context.Context, now time.Time) (models.SessionStats, error) {
	const op = "session.Stats"

	st, err := s.repo.SessionStats(ctx, now.UTC())
	if err != nil {
		return models.SessionStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return st, nil
}
