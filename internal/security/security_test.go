package security

import (
	"strings"
	"testing"
	"time"

	"scribe/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Password123")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123", hash)

	assert.True(t, h.Check("Password123", hash))
	assert.False(t, h.Check("Password124", hash))
	assert.False(t, h.Check("Password123", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_Salted(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("SamePassword1")
	require.NoError(t, err)
	b, err := h.Hash("SamePassword1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Check("SamePassword1", a))
	assert.True(t, h.Check("SamePassword1", b))
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}

func TestBcryptHasher_LongestValidPassword(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher(bcrypt.MinCost)

	longest := "A1" + strings.Repeat("x", validation.MaxPasswordBytes-2)
	require.NoError(t, validation.ValidatePassword(longest))

	hash, err := h.Hash(longest)
	require.NoError(t, err)
	assert.True(t, h.Check(longest, hash))

	// one byte more is rejected by validation before it can reach bcrypt
	tooLong := longest + "x"
	assert.ErrorIs(t, validation.ValidatePassword(tooLong), validation.ErrPasswordTooLong)
	_, err = h.Hash(tooLong)
	assert.Error(t, err)
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, err := NewTokenService(testSecret, 24*time.Hour)
	require.NoError(t, err)
	svc.WithClock(func() time.Time { return now })

	token, err := svc.Issue(42)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.True(t, now.Equal(claims.IssuedAtTime()))
	assert.NotEmpty(t, claims.ID)
}

func TestTokenService_Expiry(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := issued
	svc, err := NewTokenService(testSecret, 24*time.Hour)
	require.NoError(t, err)
	svc.WithClock(func() time.Time { return clock })

	token, err := svc.Issue(7)
	require.NoError(t, err)

	clock = issued.Add(23 * time.Hour)
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	clock = issued.Add(24*time.Hour + time.Second)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Rejects(t *testing.T) {
	svc, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewTokenService("another-secret-another-secret-1234", time.Hour)
	require.NoError(t, err)

	valid, err := svc.Issue(5)
	require.NoError(t, err)
	foreign, err := other.Issue(5)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tamperedClaims, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  6,
		"iss": tokenIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SigningString()
	require.NoError(t, err)
	tampered := tamperedClaims + "." + parts[2]

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": tokenIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  5,
		"iss": tokenIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "malformed.token.here"},
		{"wrong secret", foreign},
		{"tampered payload", tampered},
		{"missing user id", noUser},
		{"none algorithm", noneAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
