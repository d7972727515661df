package password

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("pw")
	require.NoError(t, err)
	require.NotEqual(t, "pw", digest)

	require.True(t, h.Verify("pw", digest))
	require.False(t, h.Verify("PW", digest))
	require.False(t, h.Verify("pw", "not-a-bcrypt-hash"))

	other, err := h.Hash("pw")
	require.NoError(t, err)
	require.NotEqual(t, digest, other, "salted")
}

func TestNewHasher_ClampsCost(t *testing.T) {
	require.Equal(t, bcrypt.DefaultCost, NewHasher(0).Cost)
	require.Equal(t, bcrypt.MinCost, NewHasher(1).Cost)
	require.Equal(t, bcrypt.MaxCost, NewHasher(100).Cost)
	require.Equal(t, 12, NewHasher(12).Cost)
}
