package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/storage"
)

const sessionColumns = `
	id, user_id, device_name, ip_address, user_agent, refresh_token_hash,
	created_at, last_seen_at, expires_at, revoked_at, revocation_reason
`

// SaveSession сохраняет новую сессию устройства.
func (s *Storage) SaveSession(ctx context.Context, sess *models.DeviceSession) error {
	const op = "storage.postgres.SaveSession"

	query := `
		INSERT INTO sessions(id, user_id, device_name, ip_address, user_agent,
			refresh_token_hash, created_at, last_seen_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.Exec(ctx, query,
		sess.ID,
		sess.UserID,
		sess.DeviceName,
		sess.IPAddress,
		sess.UserAgent,
		sess.RefreshTokenHash,
		sess.CreatedAt,
		sess.LastSeenAt,
		sess.ExpiresAt,
	)

	if err != nil {
		return wrap(op, err)
	}

	return nil
}

// ActiveSessionByHash находит активную сессию по отпечатку refresh-секрета.
// Поиск идёт по уникальному индексу refresh_token_hash.
func (s *Storage) ActiveSessionByHash(ctx context.Context, hash string, now time.Time) (*models.DeviceSession, error) {
	const op = "storage.postgres.ActiveSessionByHash"

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE refresh_token_hash = $1 AND revoked_at IS NULL AND expires_at > $2
	`

	sess, err := scanSession(s.db.QueryRow(ctx, query, hash, now))
	if err != nil {
		return nil, wrap(op, err)
	}

	return sess, nil
}

// ActiveSessionByID находит активную сессию по ID.
func (s *Storage) ActiveSessionByID(ctx context.Context, id uuid.UUID, now time.Time) (*models.DeviceSession, error) {
	const op = "storage.postgres.ActiveSessionByID"

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = $1 AND revoked_at IS NULL AND expires_at > $2
	`

	sess, err := scanSession(s.db.QueryRow(ctx, query, id, now))
	if err != nil {
		return nil, wrap(op, err)
	}

	return sess, nil
}

// RotateSessionHash выполняет compare-and-set отпечатка.
// Из двух конкурентных ротаций одного и того же секрета строку обновит только одна:
// вторая уже не совпадёт по refresh_token_hash.
func (s *Storage) RotateSessionHash(ctx context.Context, id uuid.UUID, oldHash, newHash string, now time.Time) error {
	const op = "storage.postgres.RotateSessionHash"

	query := `
		UPDATE sessions
		SET refresh_token_hash = $3, last_seen_at = $4
		WHERE id = $1
		  AND refresh_token_hash = $2
		  AND revoked_at IS NULL
		  AND expires_at > $4
	`

	tag, err := s.db.Exec(ctx, query, id, oldHash, newHash, now)
	if err != nil {
		return wrap(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// TouchSession обновляет last_seen_at активной сессии.
func (s *Storage) TouchSession(ctx context.Context, id uuid.UUID, now time.Time) error {
	const op = "storage.postgres.TouchSession"

	query := `
		UPDATE sessions
		SET last_seen_at = $2
		WHERE id = $1 AND revoked_at IS NULL AND expires_at > $2
	`

	tag, err := s.db.Exec(ctx, query, id, now)
	if err != nil {
		return wrap(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// RevokeSession помечает сессию отозванной, если она ещё не отозвана.
// Возвращает:
//
//	(true, nil)  — сессия отозвана сейчас;
//	(false, nil) — сессия уже была отозвана или отсутствует.
func (s *Storage) RevokeSession(ctx context.Context, id uuid.UUID, reason string, now time.Time) (bool, error) {
	const op = "storage.postgres.RevokeSession"

	query := `
		UPDATE sessions
		SET revoked_at = $2, revocation_reason = $3
		WHERE id = $1 AND revoked_at IS NULL
	`

	tag, err := s.db.Exec(ctx, query, id, now, reason)
	if err != nil {
		return false, wrap(op, err)
	}

	return tag.RowsAffected() > 0, nil
}

// RevokeUserSessions отзывает все активные сессии пользователя.
func (s *Storage) RevokeUserSessions(ctx context.Context, userID int64, reason string, now time.Time) (int64, error) {
	const op = "storage.postgres.RevokeUserSessions"

	query := `
		UPDATE sessions
		SET revoked_at = $2, revocation_reason = $3
		WHERE user_id = $1 AND revoked_at IS NULL AND expires_at > $2
	`

	tag, err := s.db.Exec(ctx, query, userID, now, reason)
	if err != nil {
		return 0, wrap(op, err)
	}

	return tag.RowsAffected(), nil
}

// ListActiveSessions возвращает активные сессии пользователя (last_seen_at DESC).
func (s *Storage) ListActiveSessions(ctx context.Context, userID int64, now time.Time) ([]models.SessionSummary, error) {
	const op = "storage.postgres.ListActiveSessions"

	query := `
		SELECT id, device_name, last_seen_at, ip_address
		FROM sessions
		WHERE user_id = $1 AND revoked_at IS NULL AND expires_at > $2
		ORDER BY last_seen_at DESC, id
	`

	rows, err := s.db.Query(ctx, query, userID, now)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	out := make([]models.SessionSummary, 0, 4)
	for rows.Next() {
		var item models.SessionSummary
		if err := rows.Scan(&item.ID, &item.DeviceName, &item.LastSeenAt, &item.IPAddress); err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, item)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}

	return out, nil
}

// DeleteExpiredSessions удаляет все просроченные сессии независимо от отзыва.
func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.postgres.DeleteExpiredSessions"

	query := `
		DELETE FROM sessions
		WHERE expires_at < $1
	`

	tag, err := s.db.Exec(ctx, query, now)
	if err != nil {
		return 0, wrap(op, err)
	}

	return tag.RowsAffected(), nil
}

// SessionStats считает общее число сессий, активных и просроченных.
func (s *Storage) SessionStats(ctx context.Context, now time.Time) (models.SessionStats, error) {
	const op = "storage.postgres.SessionStats"

	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE revoked_at IS NULL AND expires_at > $1),
			count(*) FILTER (WHERE expires_at < $1)
		FROM sessions
	`

	var st models.SessionStats
	if err := s.db.QueryRow(ctx, query, now).Scan(&st.Total, &st.Active, &st.Expired); err != nil {
		return models.SessionStats{}, wrap(op, err)
	}

	return st, nil
}

func scanSession(row pgx.Row) (*models.DeviceSession, error) {
	var sess models.DeviceSession
	err := row.Scan(
		&sess.ID,
		&sess.UserID,
		&sess.DeviceName,
		&sess.IPAddress,
		&sess.UserAgent,
		&sess.RefreshTokenHash,
		&sess.CreatedAt,
		&sess.LastSeenAt,
		&sess.ExpiresAt,
		&sess.RevokedAt,
		&sess.RevocationReason,
	)
	if err != nil {
		return nil, err
	}

	return &sess, nil
}
