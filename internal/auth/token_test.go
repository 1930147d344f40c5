package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_Roundtrip(t *testing.T) {
	m := NewTokenManager([]byte("secret"), time.Hour)
	u := uuid.New()

	token, err := m.Issue(u, "a@x.com")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, u.String(), claims.Subject)
	require.Equal(t, "a@x.com", claims.Email)

	id, err := claims.SubjectID()
	require.NoError(t, err)
	require.Equal(t, u, id)
}

func TestTokenManager_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	m := NewTokenManager([]byte("secret"), time.Hour, WithClock(func() time.Time { return now }))

	token, err := m.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	// one second before expiry the token is still valid
	now = issuedAt.Add(time.Hour - time.Second)
	_, err = m.Verify(token)
	require.NoError(t, err)

	// exp == now is already expired, no leeway
	now = issuedAt.Add(time.Hour)
	_, err = m.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)

	now = issuedAt.Add(2 * time.Hour)
	_, err = m.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_TamperedSignature(t *testing.T) {
	m := NewTokenManager([]byte("secret"), time.Hour)

	token, err := m.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := parts[2]
	flipped := "A"
	if strings.HasPrefix(sig, "A") {
		flipped = "B"
	}
	parts[2] = flipped + sig[1:]

	_, err = m.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrTokenInvalidSignature)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager([]byte("secret"), time.Hour)
	verifier := NewTokenManager([]byte("other-secret"), time.Hour)

	token, err := issuer.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalidSignature)
}

func TestTokenManager_Malformed(t *testing.T) {
	m := NewTokenManager([]byte("secret"), time.Hour)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := m.Verify(token)
		require.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}
