package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/orderdesk/pkg/auth"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func newService(c *clock) *auth.TokenService {
	return auth.NewTokenService("test-secret", time.Hour, 72*time.Hour, c.Now)
}

func TestIssueAndVerify(t *testing.T) {
	c := &clock{t: time.Now()}
	s := newService(c)

	access, err := s.IssueAccessToken("alice")
	require.NoError(t, err)
	sub, err := s.Verify(access, auth.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)

	refresh, err := s.IssueRefreshToken("alice")
	require.NoError(t, err)
	sub, err = s.Verify(refresh, auth.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestVerify_WrongKind(t *testing.T) {
	s := newService(&clock{t: time.Now()})

	refresh, err := s.IssueRefreshToken("alice")
	require.NoError(t, err)

	_, err = s.Verify(refresh, auth.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_Expiry(t *testing.T) {
	c := &clock{t: time.Now()}
	s := newService(c)

	access, err := s.IssueAccessToken("alice")
	require.NoError(t, err)
	refresh, err := s.IssueRefreshToken("alice")
	require.NoError(t, err)

	c.t = c.t.Add(61 * time.Minute)
	_, err = s.Verify(access, auth.AccessToken)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = s.Verify(refresh, auth.RefreshToken)
	assert.NoError(t, err, "refresh token lives three days")

	c.t = c.t.Add(72 * time.Hour)
	_, err = s.Verify(refresh, auth.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestVerify_Tampered(t *testing.T) {
	s := newService(&clock{t: time.Now()})
	other := auth.NewTokenService("other-secret", time.Hour, time.Hour, nil)

	forged, err := other.IssueAccessToken("mallory")
	require.NoError(t, err)

	_, err = s.Verify(forged, auth.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = s.Verify("not.a.jwt", auth.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = s.Verify("", auth.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_RejectsNoneAlg(t *testing.T) {
	s := newService(&clock{t: time.Now()})

	claims := auth.Claims{
		Kind: auth.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(raw, auth.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPasswordHasher(t *testing.T) {
	h := auth.NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw123456")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123456", hash)

	ok, err := h.Check(hash, "pw123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Check(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.Check("garbage", "pw123456")
	require.NoError(t, err)
	assert.False(t, ok)
}
