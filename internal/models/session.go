package models

import (
	"time"

	"github.com/google/uuid"
)

// Причины отзыва сессии.
const (
	RevokeReasonUserLogout = "user_logout"
	RevokeReasonLogoutAll  = "logout_all"
	RevokeReasonRevoked    = "session_revoked"
)

// DeviceSession — сессия устройства, к которой привязан refresh-секрет.
//
// Описание:
//   - RefreshTokenHash — отпечаток (sha256, base64url) текущего refresh-секрета;
//     сам секрет на сервере не хранится;
//   - RevokedAt/RevocationReason выставляются вместе и больше не сбрасываются;
//   - сессия активна, пока RevokedAt == nil и ExpiresAt > now.
type DeviceSession struct {
	ID               uuid.UUID
	UserID           int64
	DeviceName       string
	IPAddress        string
	UserAgent        string
	RefreshTokenHash string
	CreatedAt        time.Time
	LastSeenAt       time.Time
	ExpiresAt        time.Time
	RevokedAt        *time.Time
	RevocationReason *string
}

// Active сообщает, жива ли сессия на момент now.
func (s *DeviceSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}

// SessionSummary — безопасное представление сессии для списка устройств.
// Не содержит ни секрета, ни его отпечатка.
type SessionSummary struct {
	ID         uuid.UUID
	DeviceName string
	LastSeenAt time.Time
	IPAddress  string
}

// SessionStats — агрегаты по таблице сессий для обслуживания.
type SessionStats struct {
	Total   int64
	Active  int64
	Expired int64
}
