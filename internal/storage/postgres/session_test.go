package postgres

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/storage"
	"github.com/stretchr/testify/require"
)

func newSession(userID int64, hash string, now time.Time, ttl time.Duration) *models.DeviceSession {
	return &models.DeviceSession{
		ID:               uuid.New(),
		UserID:           userID,
		DeviceName:       "Chrome on Linux",
		IPAddress:        "10.0.0.1",
		UserAgent:        "Mozilla/5.0",
		RefreshTokenHash: hash,
		CreatedAt:        now,
		LastSeenAt:       now,
		ExpiresAt:        now.Add(ttl),
	}
}

func TestIntegration_Session_SaveAndLookup(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	uid := seedUser(t, st, "s@x.com")
	now := time.Now().UTC().Truncate(time.Microsecond)

	sess := newSession(uid, "hash-1", now, time.Hour)
	require.NoError(t, st.SaveSession(ctx, sess))

	got, err := st.ActiveSessionByHash(ctx, "hash-1", now)
	require.NoError(t, err)
	require.Equal(t, sess.ID, got.ID)
	require.Nil(t, got.RevokedAt)

	got, err = st.ActiveSessionByID(ctx, sess.ID, now)
	require.NoError(t, err)
	require.Equal(t, "Chrome on Linux", got.DeviceName)

	// уникальность отпечатка
	dup := newSession(uid, "hash-1", now, time.Hour)
	require.ErrorIs(t, st.SaveSession(ctx, dup), storage.ErrAlreadyExists)

	// после expires_at сессия логически мертва
	_, err = st.ActiveSessionByHash(ctx, "hash-1", now.Add(2*time.Hour))
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Session_RotateCAS(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	uid := seedUser(t, st, "r@x.com")
	now := time.Now().UTC()

	sess := newSession(uid, "old", now, time.Hour)
	require.NoError(t, st.SaveSession(ctx, sess))

	later := now.Add(time.Minute)
	require.NoError(t, st.RotateSessionHash(ctx, sess.ID, "old", "new", later))

	// старый отпечаток больше не совпадает
	require.ErrorIs(t, st.RotateSessionHash(ctx, sess.ID, "old", "newer", later), storage.ErrNotFound)
	_, err := st.ActiveSessionByHash(ctx, "old", later)
	require.ErrorIs(t, err, storage.ErrNotFound)

	got, err := st.ActiveSessionByHash(ctx, "new", later)
	require.NoError(t, err)
	require.WithinDuration(t, later, got.LastSeenAt, time.Millisecond)
}

func TestIntegration_Session_ConcurrentRotate_ExactlyOneWins(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	uid := seedUser(t, st, "race@x.com")
	now := time.Now().UTC()

	sess := newSession(uid, "shared", now, time.Hour)
	require.NoError(t, st.SaveSession(ctx, sess))

	const n = 8
	var wins, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := st.RotateSessionHash(ctx, sess.ID, "shared", uuid.NewString(), now)
			if err == nil {
				wins.Add(1)
				return
			}
			if errors.Is(err, storage.ErrNotFound) {
				rejected.Add(1)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
	require.Equal(t, int32(n-1), rejected.Load())
}

func TestIntegration_Session_RevokeIsTerminalAndIdempotent(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	uid := seedUser(t, st, "rv@x.com")
	now := time.Now().UTC()

	sess := newSession(uid, "h", now, time.Hour)
	require.NoError(t, st.SaveSession(ctx, sess))

	ok, err := st.RevokeSession(ctx, sess.ID, models.RevokeReasonUserLogout, now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.RevokeSession(ctx, sess.ID, models.RevokeReasonLogoutAll, now.Add(time.Minute))
	require.NoError(t, err)
	require.False(t, ok, "second revoke is a no-op")

	// ротация отозванной сессии отклоняется и не снимает revoked_at
	require.ErrorIs(t, st.RotateSessionHash(ctx, sess.ID, "h", "h2", now), storage.ErrNotFound)
	require.ErrorIs(t, st.TouchSession(ctx, sess.ID, now), storage.ErrNotFound)

	var reason string
	require.NoError(t, st.db.QueryRow(ctx, `SELECT revocation_reason FROM sessions WHERE id = $1`, sess.ID).Scan(&reason))
	require.Equal(t, models.RevokeReasonUserLogout, reason)
}

func TestIntegration_Session_RevokeAllListSweepStats(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	uid := seedUser(t, st, "all@x.com")
	other := seedUser(t, st, "other@x.com")
	now := time.Now().UTC()

	s1 := newSession(uid, "a", now.Add(-2*time.Minute), time.Hour)
	s2 := newSession(uid, "b", now.Add(-time.Minute), time.Hour)
	dead := newSession(uid, "c", now.Add(-2*time.Hour), time.Hour)
	foreign := newSession(other, "d", now, time.Hour)
	for _, s := range []*models.DeviceSession{s1, s2, dead, foreign} {
		require.NoError(t, st.SaveSession(ctx, s))
	}

	list, err := st.ListActiveSessions(ctx, uid, now)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, s2.ID, list[0].ID, "most recently used first")
	require.Equal(t, s1.ID, list[1].ID)

	stats, err := st.SessionStats(ctx, now)
	require.NoError(t, err)
	require.Equal(t, models.SessionStats{Total: 4, Active: 3, Expired: 1}, stats)

	n, err := st.RevokeUserSessions(ctx, uid, models.RevokeReasonLogoutAll, now)
	require.NoError(t, err)
	require.Equal(t, int64(2), n, "expired session is not counted")

	list, err = st.ListActiveSessions(ctx, uid, now)
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = st.ActiveSessionByID(ctx, foreign.ID, now)
	require.NoError(t, err, "other users are untouched")

	deleted, err := st.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)
}
