// Package token выпускает и проверяет access-токены (JWT, HS256).
//
// Проверка не обращается к хранилищу: токен, подписанный действующим
// секретом и не истёкший, валиден даже после отзыва его сессии. Окно
// устаревания равно TTL access-токена.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-board/internal/models"
)

var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("malformed token")
	ErrEmptySecret      = errors.New("empty signing secret")
)

// Config — параметры кодека.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
	Leeway time.Duration
}

type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// New создаёт кодек. Пустой секрет — ошибка конфигурации.
func New(cfg Config) (*Codec, error) {
	const op = "security.token.New"

	if cfg.Secret == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptySecret)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Codec{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    ttl,
		leeway: cfg.Leeway,
		now:    time.Now,
	}, nil
}

// WithClock подменяет часы кодека (тесты).
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// TTL возвращает время жизни токенов по умолчанию.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Mint выпускает токен с TTL по умолчанию.
func (c *Codec) Mint(userID int64, sessionID uuid.UUID) (string, time.Time, error) {
	return c.MintWithTTL(userID, sessionID, c.ttl)
}

// MintWithTTL выпускает токен {sub, sid, exp, iat, iss}.
func (c *Codec) MintWithTTL(userID int64, sessionID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	const op = "security.token.Mint"

	now := c.now().UTC()
	exp := jwt.NewNumericDate(now.Add(ttl))

	cl := claims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: exp,
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return signed, exp.Time, nil
}

// Validate проверяет подпись, срок и обязательные поля токена.
func (c *Codec) Validate(tokenStr string) (models.AccessClaims, error) {
	const op = "security.token.Validate"

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(c.leeway),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	var cl claims
	_, err := jwt.ParseWithClaims(tokenStr, &cl, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return models.AccessClaims{}, fmt.Errorf("%s: %w", op, classify(err))
	}

	userID, err := strconv.ParseInt(cl.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return models.AccessClaims{}, fmt.Errorf("%s: bad sub: %w", op, ErrMalformed)
	}

	sid, err := uuid.Parse(cl.SessionID)
	if err != nil {
		return models.AccessClaims{}, fmt.Errorf("%s: bad sid: %w", op, ErrMalformed)
	}

	return models.AccessClaims{
		UserID:    userID,
		SessionID: sid,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}

// classify сводит ошибки jwt к трём классам пакета.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
