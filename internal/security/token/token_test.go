package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newCodec(t *testing.T, clk *fakeClock) *Codec {
	t.Helper()
	c, err := New(Config{Secret: "test-secret", Issuer: "board-service", TTL: 5 * time.Minute})
	require.NoError(t, err)
	return c.WithClock(clk.Now)
}

func TestMintValidate_RoundTrip(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := newCodec(t, clk)
	sid := uuid.New()

	tok, exp, err := c.Mint(1, sid)
	require.NoError(t, err)
	require.Equal(t, clk.t.Add(5*time.Minute), exp)
	require.NotContains(t, tok, "+")
	require.NotContains(t, tok, "/")

	cl, err := c.Validate(tok)
	require.NoError(t, err)
	require.Equal(t, int64(1), cl.UserID)
	require.Equal(t, sid, cl.SessionID)
	require.True(t, exp.Equal(cl.ExpiresAt))
}

func TestValidate_Expired(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	c := newCodec(t, clk)

	tok, _, err := c.MintWithTTL(1, uuid.New(), time.Minute)
	require.NoError(t, err)

	clk.t = clk.t.Add(2 * time.Minute)
	_, err = c.Validate(tok)
	require.ErrorIs(t, err, ErrExpired)
}

func TestValidate_LeewayTolerance(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	c, err := New(Config{Secret: "s", TTL: time.Minute, Leeway: 30 * time.Second})
	require.NoError(t, err)
	c.WithClock(clk.Now)

	tok, _, err := c.Mint(1, uuid.New())
	require.NoError(t, err)

	clk.t = clk.t.Add(70 * time.Second)
	_, err = c.Validate(tok)
	require.NoError(t, err)
}

func TestValidate_WrongSecret_InvalidSignature(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	c := newCodec(t, clk)

	other, err := New(Config{Secret: "other-secret", Issuer: "board-service"})
	require.NoError(t, err)
	tok, _, err := other.WithClock(clk.Now).Mint(1, uuid.New())
	require.NoError(t, err)

	_, err = c.Validate(tok)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

// TestValidate_TamperedPayload — подмена sub при сохранённой подписи.
func TestValidate_TamperedPayload(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	c := newCodec(t, clk)

	tok, _, err := c.Mint(1, uuid.New())
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	payload["sub"] = "2"
	raw, err = json.Marshal(payload)
	require.NoError(t, err)

	parts[1] = base64.RawURLEncoding.EncodeToString(raw)
	_, err = c.Validate(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidate_AlgNoneRejected(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	c := newCodec(t, clk)

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1",
		"sid": uuid.NewString(),
		"exp": clk.t.Add(time.Minute).Unix(),
		"iss": "board-service",
	})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = c.Validate(s)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidate_Malformed(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	c := newCodec(t, clk)

	sign := func(mc jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return s
	}
	exp := clk.t.Add(time.Minute).Unix()

	cases := map[string]string{
		"garbage":     "not.a.jwt",
		"empty":       "",
		"missing exp": sign(jwt.MapClaims{"sub": "1", "sid": uuid.NewString(), "iss": "board-service"}),
		"missing sid": sign(jwt.MapClaims{"sub": "1", "exp": exp, "iss": "board-service"}),
		"bad sub":     sign(jwt.MapClaims{"sub": "ada", "sid": uuid.NewString(), "exp": exp, "iss": "board-service"}),
		"missing sub": sign(jwt.MapClaims{"sid": uuid.NewString(), "exp": exp, "iss": "board-service"}),
		"wrong iss":   sign(jwt.MapClaims{"sub": "1", "sid": uuid.NewString(), "exp": exp, "iss": "evil"}),
	}

	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Validate(tok)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestNew_EmptySecret(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrEmptySecret)
}
