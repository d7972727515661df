package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-board/internal/device"
	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/pkg/log"
	"github.com/pribylovaa/go-board/internal/pkg/redact"
	"github.com/pribylovaa/go-board/internal/security/token"
	"github.com/pribylovaa/go-board/internal/session"
	"github.com/pribylovaa/go-board/internal/storage"
)

// maxSecretAttempts — попытки сгенерировать секрет с уникальным отпечатком.
const maxSecretAttempts = 5

// LoginInput — данные входа с устройства.
type LoginInput struct {
	Email      string
	Password   string
	DeviceName string
	IPAddress  string
	UserAgent  string
}

// Signup регистрирует пользователя и возвращает его ID.
func (s *Service) Signup(ctx context.Context, fullname, email, password string) (int64, error) {
	const op = "service.auth.Signup"

	lg := log.From(ctx)

	fullname = strings.TrimSpace(fullname)
	if fullname == "" || utf8.RuneCountInString(fullname) > 100 {
		return 0, fmt.Errorf("%s: fullname: %w", op, ErrInvalidArgument)
	}

	normEmail, err := normalizeEmail(email)
	if err != nil {
		return 0, fmt.Errorf("%s: email: %w", op, ErrInvalidArgument)
	}

	if password == "" {
		return 0, fmt.Errorf("%s: password: %w", op, ErrInvalidArgument)
	}

	_, err = s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		lg.Info("signup_email_taken",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
		)
		return 0, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, wrapStorage(op, err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		Fullname:     fullname,
		Email:        normEmail,
		PasswordHash: digest,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return 0, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return 0, wrapStorage(op, err)
	}

	s.rec.AuthSucceeded("signup")
	lg.Info("signup_ok",
		slog.String("op", op),
		slog.Int64("user_id", user.ID),
		slog.String("email", redact.Email(normEmail)),
	)

	return user.ID, nil
}

// Login проверяет учётные данные, создаёт сессию устройства и выпускает
// access-токен. Сессия сохраняется до выпуска токена: если выпуск
// не удался, сессия остаётся валидной.
func (s *Service) Login(ctx context.Context, in LoginInput) (*models.LoginResult, error) {
	const op = "service.auth.Login"

	lg := log.From(ctx)

	normEmail, err := normalizeEmail(in.Email)
	if err != nil || in.Password == "" {
		s.rec.AuthFailed("invalid_credentials")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.rec.AuthFailed("invalid_credentials")
			lg.Warn("login_rejected",
				slog.String("op", op),
				slog.String("reason", "user_not_found"),
				slog.String("email", redact.Email(normEmail)),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, wrapStorage(op, err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		s.rec.AuthFailed("invalid_credentials")
		lg.Warn("login_rejected",
			slog.String("op", op),
			slog.String("reason", "password_mismatch"),
			slog.Int64("user_id", user.ID),
			slog.String("password", redact.Password()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	refresh, sid, err := s.createSession(ctx, user.ID, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	access, _, err := s.tokens.Mint(user.ID, sid)
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("session_id", sid.String()),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.rec.AuthSucceeded("login")
	lg.Info("login_ok",
		slog.String("op", op),
		slog.Int64("user_id", user.ID),
		slog.String("session_id", sid.String()),
	)

	return &models.LoginResult{
		UserID:       user.ID,
		SessionID:    sid,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.tokens.TTL(),
	}, nil
}

// createSession генерирует секрет и сохраняет сессию; редкая коллизия
// отпечатка повторяется ограниченное число раз.
func (s *Service) createSession(ctx context.Context, userID int64, in LoginInput) (string, uuid.UUID, error) {
	const op = "service.auth.createSession"

	lg := log.From(ctx)

	for attempt := 0; attempt < maxSecretAttempts; attempt++ {
		refresh, err := s.newSecret()
		if err != nil {
			lg.Error("refresh_rand_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", uuid.Nil, fmt.Errorf("%s: %w", op, err)
		}

		sid, err := s.sessions.Create(ctx, session.NewSession{
			UserID:     userID,
			Secret:     refresh,
			DeviceName: device.Name(in.DeviceName, in.UserAgent),
			IPAddress:  in.IPAddress,
			UserAgent:  in.UserAgent,
			TTL:        s.cfg.RefreshTokenTTL,
		})
		if err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Редкая коллизия — пробуем сгенерировать заново.
				continue
			}

			return "", uuid.Nil, wrapStorage(op, err)
		}

		return refresh, sid, nil
	}

	lg.Error("refresh_collision_exceeded", slog.String("op", op))

	return "", uuid.Nil, fmt.Errorf("%s: %w", op, ErrSessionCollision)
}

// Refresh обменивает refresh-секрет на новый и выпускает access-токен
// для той же сессии. Старый секрет перестаёт работать атомарно: из двух
// конкурентных обменов одного секрета успешен ровно один.
func (s *Service) Refresh(ctx context.Context, refreshSecret string) (*models.RefreshResult, error) {
	const op = "service.auth.Refresh"

	lg := log.From(ctx)

	if refreshSecret == "" {
		s.rec.AuthFailed("refresh_missing")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidOrExpiredSession)
	}

	sess, err := s.sessions.FindActiveByRefreshSecret(ctx, refreshSecret)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.rec.AuthFailed("refresh_not_found")
			lg.Warn("refresh_rejected",
				slog.String("op", op),
				slog.String("reason", "not_found_revoked_or_expired"),
				slog.String("refresh_token", redact.Token()),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidOrExpiredSession)
		}

		return nil, wrapStorage(op, err)
	}

	var next string
	for attempt := 0; ; attempt++ {
		if attempt == maxSecretAttempts {
			lg.Error("refresh_collision_exceeded", slog.String("op", op))
			return nil, fmt.Errorf("%s: %w", op, ErrSessionCollision)
		}

		next, err = s.newSecret()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		err = s.sessions.Rotate(ctx, sess.ID, refreshSecret, next)
		if err == nil {
			break
		}

		if errors.Is(err, storage.ErrAlreadyExists) {
			continue
		}

		if errors.Is(err, storage.ErrNotFound) {
			s.rec.AuthFailed("refresh_rotated_concurrently")
			lg.Warn("refresh_rejected",
				slog.String("op", op),
				slog.String("reason", "rotated_or_revoked"),
				slog.String("session_id", sess.ID.String()),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidOrExpiredSession)
		}

		return nil, wrapStorage(op, err)
	}

	access, _, err := s.tokens.Mint(sess.UserID, sess.ID)
	if err != nil {
		// Секрет уже ротирован: клиент повторит refresh с ним.
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("session_id", sess.ID.String()),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.rec.AuthSucceeded("refresh")
	lg.Debug("refresh_ok",
		slog.String("op", op),
		slog.Int64("user_id", sess.UserID),
		slog.String("session_id", sess.ID.String()),
	)

	return &models.RefreshResult{
		SessionID:    sess.ID,
		AccessToken:  access,
		RefreshToken: next,
		ExpiresIn:    s.tokens.TTL(),
	}, nil
}

// LogoutCurrent отзывает ровно указанную сессию. Повторный вызов — no-op.
func (s *Service) LogoutCurrent(ctx context.Context, sessionID uuid.UUID) error {
	const op = "service.auth.LogoutCurrent"

	revoked, err := s.sessions.Revoke(ctx, sessionID, models.RevokeReasonUserLogout)
	if err != nil {
		return wrapStorage(op, err)
	}

	if revoked {
		s.rec.AuthSucceeded("logout")
		log.From(ctx).Info("logout_ok",
			slog.String("op", op),
			slog.String("session_id", sessionID.String()),
		)
	}

	return nil
}

// LogoutAll отзывает все активные сессии пользователя. Уже выпущенные
// access-токены остаются валидными до истечения своего TTL.
func (s *Service) LogoutAll(ctx context.Context, userID int64) (int64, error) {
	const op = "service.auth.LogoutAll"

	n, err := s.sessions.RevokeAllForUser(ctx, userID, models.RevokeReasonLogoutAll)
	if err != nil {
		return 0, wrapStorage(op, err)
	}

	s.rec.AuthSucceeded("logout_all")
	log.From(ctx).Info("logout_all_ok",
		slog.String("op", op),
		slog.Int64("user_id", userID),
		slog.Int64("revoked", n),
	)

	return n, nil
}

// ListSessions возвращает активные сессии пользователя для отображения.
func (s *Service) ListSessions(ctx context.Context, userID int64, current uuid.UUID) ([]models.SessionSummary, error) {
	const op = "service.auth.ListSessions"

	// Просмотр списка устройств — активность текущей сессии.
	if current != uuid.Nil {
		if err := s.sessions.Touch(ctx, current); err != nil {
			log.From(ctx).Warn("session_touch_failed",
				slog.String("op", op),
				slog.String("session_id", current.String()),
				slog.String("err", err.Error()),
			)
		}
	}

	list, err := s.sessions.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	return list, nil
}

// RevokeSession отзывает одну из сессий пользователя (например, потерянное
// устройство). Чужая или неактивная сессия — ErrNotFound.
func (s *Service) RevokeSession(ctx context.Context, userID int64, sessionID uuid.UUID) error {
	const op = "service.auth.RevokeSession"

	sess, err := s.sessions.FindActiveByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return wrapStorage(op, err)
	}

	if sess.UserID != userID {
		log.From(ctx).Warn("revoke_session_foreign",
			slog.String("op", op),
			slog.Int64("user_id", userID),
			slog.String("session_id", sessionID.String()),
		)
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if _, err := s.sessions.Revoke(ctx, sessionID, models.RevokeReasonRevoked); err != nil {
		return wrapStorage(op, err)
	}

	s.rec.AuthSucceeded("revoke_session")

	return nil
}

// Authenticate проверяет access-токен без обращения к хранилищу.
// Токен отозванной сессии остаётся валидным до своего exp.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (models.AccessClaims, error) {
	const op = "service.auth.Authenticate"

	claims, err := s.tokens.Validate(accessToken)
	if err != nil {
		reason := "token_malformed"
		switch {
		case errors.Is(err, token.ErrExpired):
			reason = "token_expired"
		case errors.Is(err, token.ErrInvalidSignature):
			reason = "token_invalid_signature"
		}

		s.rec.AuthFailed(reason)
		log.From(ctx).Warn("access_token_rejected",
			slog.String("op", op),
			slog.String("reason", reason),
			slog.String("token", redact.Token()),
		)
		return models.AccessClaims{}, fmt.Errorf("%s: %w: %w", op, ErrUnauthenticated, err)
	}

	return claims, nil
}

// normalizeEmail приводит e-mail к нижнему регистру и проверяет формат.
func normalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return "", ErrInvalidArgument
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", ErrInvalidArgument
	}

	return e, nil
}

// wrapStorage переводит ErrUnavailable хранилища в ErrUnavailable сервиса.
func wrapStorage(op string, err error) error {
	if errors.Is(err, storage.ErrUnavailable) {
		return unavailable(op, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
