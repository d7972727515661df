package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessClaims — неизменяемые данные, извлечённые из access-токена.
// Передаются по цепочке вызовов вместо мутации объекта пользователя.
type AccessClaims struct {
	UserID    int64
	SessionID uuid.UUID
	ExpiresAt time.Time
}

// LoginResult — результат успешного входа.
//
// RefreshToken отдаётся клиенту ровно один раз: на сервере остаётся
// только его отпечаток.
type LoginResult struct {
	UserID       int64
	SessionID    uuid.UUID
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// RefreshResult — результат ротации refresh-секрета.
type RefreshResult struct {
	SessionID    uuid.UUID
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}
