// Package memory — реализация контрактов storage в памяти процесса.
// Используется в тестах и при storage.driver=memory; условные обновления
// выполняются под одним мьютексом и повторяют семантику SQL-реализации.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/storage"
)

type Storage struct {
	mu sync.Mutex

	now func() time.Time

	userSeq  int64
	users    map[int64]*models.User
	byEmail  map[string]int64
	sessions map[uuid.UUID]*models.DeviceSession
	byHash   map[string]uuid.UUID

	boardSeq int64
	boards   map[int64]*models.Board
	postSeq  int64
	posts    map[int64]*models.Post
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		now:      time.Now,
		users:    make(map[int64]*models.User),
		byEmail:  make(map[string]int64),
		sessions: make(map[uuid.UUID]*models.DeviceSession),
		byHash:   make(map[string]uuid.UUID),
		boards:   make(map[int64]*models.Board),
		posts:    make(map[int64]*models.Post),
	}
}

// WithClock подменяет источник времени для CreatedAt (тесты).
func (s *Storage) WithClock(now func() time.Time) *Storage {
	s.now = now
	return s
}

// Close ничего не освобождает.
func (s *Storage) Close() {}

// Ping проверяет только контекст.
func (s *Storage) Ping(ctx context.Context) error {
	return check("storage.memory.Ping", ctx)
}

// check повторяет поведение драйвера: отменённый контекст — это недоступность.
func check(op string, ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}

	return nil
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// SaveUser создаёт пользователя.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.memory.SaveUser"

	if err := check(op, ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := s.byEmail[key]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	s.userSeq++
	user.ID = s.userSeq
	user.CreatedAt = s.now().UTC()

	cp := *user
	s.users[cp.ID] = &cp
	s.byEmail[key] = cp.ID

	return nil
}

// UserByEmail находит пользователя по email.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.memory.UserByEmail"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, notFound(op)
	}

	cp := *s.users[id]
	return &cp, nil
}

// UserByID находит пользователя по ID.
func (s *Storage) UserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.memory.UserByID"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, notFound(op)
	}

	cp := *u
	return &cp, nil
}

// SaveSession сохраняет сессию устройства.
func (s *Storage) SaveSession(ctx context.Context, sess *models.DeviceSession) error {
	const op = "storage.memory.SaveSession"

	if err := check(op, ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byHash[sess.RefreshTokenHash]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}
	if _, ok := s.sessions[sess.ID]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	cp := *sess
	s.sessions[cp.ID] = &cp
	s.byHash[cp.RefreshTokenHash] = cp.ID

	return nil
}

// ActiveSessionByHash ищет активную сессию по отпечатку.
func (s *Storage) ActiveSessionByHash(ctx context.Context, hash string, now time.Time) (*models.DeviceSession, error) {
	const op = "storage.memory.ActiveSessionByHash"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byHash[hash]
	if !ok {
		return nil, notFound(op)
	}

	sess := s.sessions[id]
	if !sess.Active(now) {
		return nil, notFound(op)
	}

	return copySession(sess), nil
}

// ActiveSessionByID ищет активную сессию по ID.
func (s *Storage) ActiveSessionByID(ctx context.Context, id uuid.UUID, now time.Time) (*models.DeviceSession, error) {
	const op = "storage.memory.ActiveSessionByID"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || !sess.Active(now) {
		return nil, notFound(op)
	}

	return copySession(sess), nil
}

// RotateSessionHash — compare-and-set по (id, oldHash, активность).
func (s *Storage) RotateSessionHash(ctx context.Context, id uuid.UUID, oldHash, newHash string, now time.Time) error {
	const op = "storage.memory.RotateSessionHash"

	if err := check(op, ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.RefreshTokenHash != oldHash || !sess.Active(now) {
		return notFound(op)
	}

	if _, taken := s.byHash[newHash]; taken {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	delete(s.byHash, oldHash)
	sess.RefreshTokenHash = newHash
	sess.LastSeenAt = now
	s.byHash[newHash] = id

	return nil
}

// TouchSession обновляет last_seen_at активной сессии.
func (s *Storage) TouchSession(ctx context.Context, id uuid.UUID, now time.Time) error {
	const op = "storage.memory.TouchSession"

	if err := check(op, ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || !sess.Active(now) {
		return notFound(op)
	}

	sess.LastSeenAt = now

	return nil
}

// RevokeSession отзывает сессию, если она ещё не отозвана.
func (s *Storage) RevokeSession(ctx context.Context, id uuid.UUID, reason string, now time.Time) (bool, error) {
	const op = "storage.memory.RevokeSession"

	if err := check(op, ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.RevokedAt != nil {
		return false, nil
	}

	revoke(sess, reason, now)

	return true, nil
}

// RevokeUserSessions отзывает все активные сессии пользователя.
func (s *Storage) RevokeUserSessions(ctx context.Context, userID int64, reason string, now time.Time) (int64, error) {
	const op = "storage.memory.RevokeUserSessions"

	if err := check(op, ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, sess := range s.sessions {
		if sess.UserID == userID && sess.Active(now) {
			revoke(sess, reason, now)
			n++
		}
	}

	return n, nil
}

// ListActiveSessions возвращает активные сессии пользователя.
func (s *Storage) ListActiveSessions(ctx context.Context, userID int64, now time.Time) ([]models.SessionSummary, error) {
	const op = "storage.memory.ListActiveSessions"

	if err := check(op, ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.SessionSummary, 0)
	for _, sess := range s.sessions {
		if sess.UserID != userID || !sess.Active(now) {
			continue
		}
		out = append(out, models.SessionSummary{
			ID:         sess.ID,
			DeviceName: sess.DeviceName,
			LastSeenAt: sess.LastSeenAt,
			IPAddress:  sess.IPAddress,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastSeenAt.Equal(out[j].LastSeenAt) {
			return out[i].LastSeenAt.After(out[j].LastSeenAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	return out, nil
}

// DeleteExpiredSessions удаляет сессии с expires_at < now.
func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.memory.DeleteExpiredSessions"

	if err := check(op, ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sess := range s.sessions {
		if sess.ExpiresAt.Before(now) {
			delete(s.byHash, sess.RefreshTokenHash)
			delete(s.sessions, id)
			n++
		}
	}

	return n, nil
}

// SessionStats считает агрегаты по сессиям.
func (s *Storage) SessionStats(ctx context.Context, now time.Time) (models.SessionStats, error) {
	const op = "storage.memory.SessionStats"

	if err := check(op, ctx); err != nil {
		return models.SessionStats{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var st models.SessionStats
	for _, sess := range s.sessions {
		st.Total++
		if sess.Active(now) {
			st.Active++
		}
		if sess.ExpiresAt.Before(now) {
			st.Expired++
		}
	}

	return st, nil
}

func revoke(sess *models.DeviceSession, reason string, now time.Time) {
	at := now
	r := reason
	sess.RevokedAt = &at
	sess.RevocationReason = &r
}

func copySession(sess *models.DeviceSession) *models.DeviceSession {
	cp := *sess
	if sess.RevokedAt != nil {
		at := *sess.RevokedAt
		cp.RevokedAt = &at
	}
	if sess.RevocationReason != nil {
		r := *sess.RevocationReason
		cp.RevocationReason = &r
	}

	return &cp
}

// Проверка на соответствие интерфейсу Storage.
var _ storage.Storage = (*Storage)(nil)
