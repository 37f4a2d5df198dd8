package jwtx_test

import (
	"testing"
	"time"

	"github.com/linkmark/linkmark/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, secret string) *jwtx.Signer {
	t.Helper()
	s, err := jwtx.NewSigner([]byte(secret), "linkmark-auth", jwtx.DefaultSessionTTL)
	require.NoError(t, err)
	return s
}

func TestNewSignerRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSigner(nil, "linkmark-auth", 0)
	require.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "test-secret")

	now := time.Now().UTC()
	token, expiresAt, err := signer.Issue("01ARZ3NDEKTSV4RRFFQ69G5FAV", "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Expiry sits two hours out, give or take scheduling slop.
	require.WithinDuration(t, now.Add(2*time.Hour), expiresAt, 5*time.Second)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", claims.UserID())
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, "linkmark-auth", claims.Issuer)
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "test-secret")

	// Issued three hours ago with a two hour TTL.
	token, _, err := signer.IssueAt("user-1", "a@x.com", time.Now().UTC().Add(-3*time.Hour))
	require.NoError(t, err)

	_, err = signer.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "test-secret")
	forger := newTestSigner(t, "attacker-secret")

	token, _, err := forger.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = signer.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)

	// Forged and expired must never be conflated.
	require.NotErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "test-secret")

	_, err := signer.Verify("definitely.not.a-jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)

	_, err = signer.Verify("")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	other, err := jwtx.NewSigner([]byte("test-secret"), "someone-else", 0)
	require.NoError(t, err)
	token, _, err := other.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	signer := newTestSigner(t, "test-secret")
	_, err = signer.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}
