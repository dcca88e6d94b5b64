package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)
	p := Principal{Key: "wm_key_2024", App: "CargoHUB", Role: RoleWarehouseManager}

	signed, err := issuer.Issue(p)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := issuer.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, p.Key, claims.Key)
	require.Equal(t, p.Role, claims.Role)
	require.Equal(t, p.App, claims.App)
	require.NotEmpty(t, claims.ID)

	remaining := time.Until(claims.ExpiresAt.Time)
	require.Greater(t, remaining, 29*time.Minute)
	require.LessOrEqual(t, remaining, 30*time.Minute)
}

func TestTokenDefaultTTL(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 0)
	require.Equal(t, time.Hour, issuer.TTL())
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("different-secret", time.Hour)

	signed, err := issuer.Issue(Principal{Key: "k", Role: RoleAnalyst})
	require.NoError(t, err)

	_, err = other.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbageRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestTokenUniqueIDs(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	p := Principal{Key: "k", Role: RoleSales}

	first, err := issuer.Issue(p)
	require.NoError(t, err)
	second, err := issuer.Issue(p)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
