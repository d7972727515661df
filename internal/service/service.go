// service содержит бизнес-логику board-service: жизненный цикл сессий
// (signup/login/refresh/logout), CRUD досок и постов с проверкой владельца
// и учёт дельт счётчика постов.
//
// Основные аспекты:
//   - Service не хранит состояние запроса и безопасен для конкурентного
//     использования, если потокобезопасны переданные хранилища;
//   - ошибки аутентификации никогда не повторяются автоматически, ошибки
//     доступности хранилища отдаются как ErrUnavailable и могут повторяться
//     вызывающей стороной;
//   - транспорт маппит ошибки ниже на HTTP-коды.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-board/internal/config"
	"github.com/pribylovaa/go-board/internal/counter"
	"github.com/pribylovaa/go-board/internal/security/password"
	"github.com/pribylovaa/go-board/internal/security/secret"
	"github.com/pribylovaa/go-board/internal/security/token"
	"github.com/pribylovaa/go-board/internal/session"
	"github.com/pribylovaa/go-board/internal/storage"
)

var (
	// ErrInvalidCredentials — пользователь не найден или пароль неверен.
	// Оба случая неразличимы для клиента. Транспорт: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken — e-mail уже занят. Транспорт: 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidOrExpiredSession — сессия не найдена, истекла или отозвана,
	// либо refresh-секрет уже ротирован. Транспорт: 401.
	ErrInvalidOrExpiredSession = errors.New("invalid or expired session")

	// ErrUnauthenticated — access-токен не прошёл проверку (подпись, срок, формат).
	// Транспорт: 401.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnavailable — хранилище не ответило вовремя. Транспорт: 503.
	ErrUnavailable = errors.New("service unavailable")

	// ErrForbidden — операция над чужой сущностью. Транспорт: 403.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound — доска/пост/сессия не найдены. Транспорт: 404.
	ErrNotFound = errors.New("not found")

	// ErrBoardNameTaken — имя доски занято. Транспорт: 409.
	ErrBoardNameTaken = errors.New("board name already taken")

	// ErrInvalidArgument — некорректный ввод. Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSessionCollision — исчерпаны попытки создать сессию с уникальным
	// отпечатком. Транспорт: 500.
	ErrSessionCollision = errors.New("session fingerprint collision")
)

// Recorder получает события аутентификации для метрик.
type Recorder interface {
	AuthSucceeded(event string)
	AuthFailed(reason string)
}

// PasswordHasher — хэширование и сверка паролей.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

type nopRecorder struct{}

func (nopRecorder) AuthSucceeded(string) {}
func (nopRecorder) AuthFailed(string)    {}

// Service описывает бизнес-логику board-service.
type Service struct {
	storage   storage.Storage
	sessions  *session.Store
	tokens    *token.Codec
	hasher    PasswordHasher
	counter   *counter.Synchronizer
	rec       Recorder
	cfg       config.AuthConfig
	now       func() time.Time
	newSecret func() (string, error)
}

// Option настраивает Service.
type Option func(*Service)

// WithRecorder подключает метрики.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.rec = r
		}
	}
}

// WithClock подменяет часы сервиса, сессий и токенов (тесты).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHasher подменяет хэшер паролей.
func WithHasher(h PasswordHasher) Option {
	return func(s *Service) { s.hasher = h }
}

// WithSecretSource подменяет генератор refresh-секретов (тесты).
func WithSecretSource(gen func() (string, error)) Option {
	return func(s *Service) { s.newSecret = gen }
}

// New создаёт новый экземпляр Service.
func New(st storage.Storage, sync *counter.Synchronizer, cfg config.AuthConfig, opts ...Option) (*Service, error) {
	const op = "service.New"

	s := &Service{
		storage:   st,
		counter:   sync,
		hasher:    password.NewHasher(cfg.BcryptCost),
		rec:       nopRecorder{},
		cfg:       cfg,
		now:       time.Now,
		newSecret: secret.Generate,
	}

	for _, o := range opts {
		o(s)
	}

	codec, err := token.New(token.Config{
		Secret: cfg.JWTSecret,
		Issuer: cfg.Issuer,
		TTL:    cfg.AccessTokenTTL,
		Leeway: cfg.Leeway,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.tokens = codec.WithClock(s.now)
	s.sessions = session.New(st).WithClock(s.now)

	return s, nil
}

// Sessions возвращает хранилище сессий (для janitor и CLI).
func (s *Service) Sessions() *session.Store { return s.sessions }

// Counter возвращает синхронизатор счётчиков.
func (s *Service) Counter() *counter.Synchronizer { return s.counter }

// unavailable оборачивает ошибку недоступности хранилища, сохраняя цепочку.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
