package auth_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cargohub/cargohub/internal/auth"
)

func newTokenHandler(repo *gateRepo) (*auth.Handler, *auth.TokenIssuer) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := auth.NewTokenIssuer("test-secret", 15*time.Minute)
	return auth.NewHandler(logger, auth.NewService(repo), issuer), issuer
}

func TestIssueTokenHappyPath(t *testing.T) {
	handler, issuer := newTokenHandler(fixtureRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/token", nil)
	req.Header.Set(auth.HeaderAPIKey, "super_key")
	rec := httptest.NewRecorder()
	handler.IssueToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		ExpiresIn int64  `json:"expires_in"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "Bearer", body.TokenType)
	require.Equal(t, int64(900), body.ExpiresIn)

	claims, err := issuer.Verify(body.Token)
	require.NoError(t, err)
	require.Equal(t, "super_key", claims.Key)
	require.Equal(t, auth.RoleSupervisor, claims.Role)
}

func TestIssueTokenRejectsBadKeys(t *testing.T) {
	handler, _ := newTokenHandler(fixtureRepo())

	for _, key := range []string{"", "no_such_key"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/token", nil)
		if key != "" {
			req.Header.Set(auth.HeaderAPIKey, key)
		}
		rec := httptest.NewRecorder()
		handler.IssueToken(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "key %q", key)
	}
}
