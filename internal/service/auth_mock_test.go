package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/security/password"
	"github.com/pribylovaa/go-board/internal/security/secret"
	"github.com/pribylovaa/go-board/internal/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := password.NewHasher(bcrypt.MinCost).Hash(pw)
	require.NoError(t, err)
	return h
}

func TestSignup_NormalizesEmailAndHashes(t *testing.T) {
	t.Parallel()

	svc, st, _ := newMockSvc(t)

	st.EXPECT().UserByEmail(gomock.Any(), "ada@x.com").Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
		require.Equal(t, "ada@x.com", u.Email)
		require.Equal(t, "Ada", u.Fullname)
		require.NotEqual(t, "pw", u.PasswordHash)
		require.True(t, password.NewHasher(bcrypt.MinCost).Verify("pw", u.PasswordHash))
		u.ID = 1
		return nil
	})

	id, err := svc.Signup(context.Background(), " Ada ", " Ada@X.com ", "pw")
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
}

func TestSignup_EmailTaken_OnLookupAndOnInsert(t *testing.T) {
	t.Parallel()

	svc, st, _ := newMockSvc(t)

	st.EXPECT().UserByEmail(gomock.Any(), "ada@x.com").Return(&models.User{ID: 1}, nil)
	_, err := svc.Signup(context.Background(), "Ada", "ada@x.com", "pw")
	require.ErrorIs(t, err, ErrEmailTaken)

	st.EXPECT().UserByEmail(gomock.Any(), "ada@x.com").Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)
	_, err = svc.Signup(context.Background(), "Ada", "ada@x.com", "pw")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_InvalidInput(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMockSvc(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ada", "not-an-email", "pw")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Signup(ctx, "Ada", "ada@x.com", "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Signup(ctx, "  ", "ada@x.com", "pw")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSignup_StorageUnavailable(t *testing.T) {
	t.Parallel()

	svc, st, _ := newMockSvc(t)
	st.EXPECT().UserByEmail(gomock.Any(), "ada@x.com").Return(nil, storage.ErrUnavailable)

	_, err := svc.Signup(context.Background(), "Ada", "ada@x.com", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestLogin_UnknownUserAndWrongPassword_SameError(t *testing.T) {
	t.Parallel()

	svc, st, _ := newMockSvc(t)
	ctx := context.Background()

	st.EXPECT().UserByEmail(gomock.Any(), "ghost@x.com").Return(nil, storage.ErrNotFound)
	_, errUnknown := svc.Login(ctx, LoginInput{Email: "ghost@x.com", Password: "pw"})
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)

	st.EXPECT().UserByEmail(gomock.Any(), "ada@x.com").
		Return(&models.User{ID: 1, Email: "ada@x.com", PasswordHash: mustHashPW(t, "pw")}, nil)
	_, errWrong := svc.Login(ctx, LoginInput{Email: "ada@x.com", Password: "nope"})
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)

	require.False(t, errors.Is(errUnknown, storage.ErrNotFound), "lookup miss must not leak")
}

func TestLogin_PersistsFingerprintThenMints(t *testing.T) {
	t.Parallel()

	svc, st, clk := newMockSvc(t)
	ctx := context.Background()

	var saved *models.DeviceSession
	gomock.InOrder(
		st.EXPECT().UserByEmail(gomock.Any(), "ada@x.com").
			Return(&models.User{ID: 7, Email: "ada@x.com", PasswordHash: mustHashPW(t, "pw")}, nil),
		st.EXPECT().SaveSession(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *models.DeviceSession) error {
			saved = s
			return nil
		}),
	)

	res, err := svc.Login(ctx, LoginInput{Email: "ada@x.com", Password: "pw", DeviceName: "laptop", IPAddress: "1.2.3.4"})
	require.NoError(t, err)

	require.NotNil(t, saved)
	require.Equal(t, int64(7), saved.UserID)
	require.Equal(t, "laptop", saved.DeviceName)
	require.Equal(t, "1.2.3.4", saved.IPAddress)
	require.Equal(t, secret.Fingerprint(res.RefreshToken), saved.RefreshTokenHash)
	require.NotEqual(t, res.RefreshToken, saved.RefreshTokenHash)
	require.Equal(t, clk.Now().Add(testCfg().RefreshTokenTTL), saved.ExpiresAt)
	require.Equal(t, saved.ID, res.SessionID)

	claims, err := svc.Authenticate(ctx, res.AccessToken)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, saved.ID, claims.SessionID)
}

func TestLogin_RetriesFingerprintCollision(t *testing.T) {
	t.Parallel()

	svc, st, _ := newMockSvc(t)

	st.EXPECT().UserByEmail(gomock.Any(), "ada@x.com").
		Return(&models.User{ID: 1, PasswordHash: mustHashPW(t, "pw")}, nil)
	st.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists).Times(2)
	st.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "pw"})
	require.NoError(t, err)
}

func TestLogin_CollisionExhausted(t *testing.T) {
	t.Parallel()

	svc, st, _ := newMockSvc(t)

	st.EXPECT().UserByEmail(gomock.Any(), "ada@x.com").
		Return(&models.User{ID: 1, PasswordHash: mustHashPW(t, "pw")}, nil)
	st.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists).Times(maxSecretAttempts)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "pw"})
	require.ErrorIs(t, err, ErrSessionCollision)
}

func TestRefresh_RotationLostRace_InvalidSession(t *testing.T) {
	t.Parallel()

	svc, st, _ := newMockSvc(t)
	sid := uuid.New()

	st.EXPECT().ActiveSessionByHash(gomock.Any(), secret.Fingerprint("R1"), gomock.Any()).
		Return(&models.DeviceSession{ID: sid, UserID: 1}, nil)
	st.EXPECT().RotateSessionHash(gomock.Any(), sid, secret.Fingerprint("R1"), gomock.Any(), gomock.Any()).
		Return(storage.ErrNotFound)

	_, err := svc.Refresh(context.Background(), "R1")
	require.ErrorIs(t, err, ErrInvalidOrExpiredSession)
}

func TestRefresh_StorageTimeout_Unavailable(t *testing.T) {
	t.Parallel()

	svc, st, _ := newMockSvc(t)

	st.EXPECT().ActiveSessionByHash(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrUnavailable)

	_, err := svc.Refresh(context.Background(), "R1")
	require.ErrorIs(t, err, ErrUnavailable)
	require.False(t, errors.Is(err, ErrInvalidOrExpiredSession))
}

func TestRefresh_Empty(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMockSvc(t)
	_, err := svc.Refresh(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidOrExpiredSession)
}

func TestRevokeSession_ForeignSessionIsNotFound(t *testing.T) {
	t.Parallel()

	svc, st, _ := newMockSvc(t)
	sid := uuid.New()

	st.EXPECT().ActiveSessionByID(gomock.Any(), sid, gomock.Any()).
		Return(&models.DeviceSession{ID: sid, UserID: 2}, nil)

	err := svc.RevokeSession(context.Background(), 1, sid)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticate_RejectsGarbage(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMockSvc(t)
	_, err := svc.Authenticate(context.Background(), "garbage")
	require.ErrorIs(t, err, ErrUnauthenticated)
}
