package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)

	hashed, err := h.Hash("pass1")
	require.NoError(t, err)

	assert.NotEqual(t, "pass1", hashed)
	assert.True(t, h.Verify("pass1", hashed))
	assert.False(t, h.Verify("pass2", hashed))
}

func TestPasswordHasher_Salted(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same", first))
	assert.True(t, h.Verify("same", second))
}

func TestPasswordHasher_VerifyAgainstOtherHash(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)

	other, err := h.Hash("otherPassword")
	require.NoError(t, err)
	assert.False(t, h.Verify("password", other))
}

func TestPasswordHasher_MalformedHashIsMismatch(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("pass1", ""))
	assert.False(t, h.Verify("pass1", "not-a-hash"))
}

func TestPasswordHasher_TooLong(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(99).Cost())
	assert.Equal(t, 5, NewPasswordHasher(5).Cost())
}

func TestIsHash(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)
	hashed, err := h.Hash("x")
	require.NoError(t, err)

	assert.True(t, h.IsHash(hashed))
	assert.False(t, h.IsHash("plaintext"))
}
