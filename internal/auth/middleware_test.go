package auth_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cargohub/cargohub/internal/auth"
)

type gateRepo struct {
	principals map[string]auth.Principal
	rules      map[string]auth.PermissionRule
}

func (g *gateRepo) FindByKey(ctx context.Context, key string) (auth.Principal, error) {
	if p, ok := g.principals[key]; ok {
		return p, nil
	}
	return auth.Principal{}, auth.ErrNotFound
}

func (g *gateRepo) GetRule(ctx context.Context, role auth.Role, resource string) (auth.PermissionRule, error) {
	if rule, ok := g.rules[string(role)+"|"+resource]; ok {
		return rule, nil
	}
	return auth.PermissionRule{}, auth.ErrNotFound
}

func newGate(repo *gateRepo) auth.Middleware {
	return auth.Middleware{Service: auth.NewService(repo)}
}

func fixtureRepo() *gateRepo {
	return &gateRepo{
		principals: map[string]auth.Principal{
			"super_key": {ID: 7, Key: "super_key", App: "Dashboard", Role: auth.RoleSupervisor},
			"admin_key": {ID: 1, Key: "admin_key", App: "CargoHUB", Role: auth.RoleAdmin},
		},
		rules: map[string]auth.PermissionRule{
			string(auth.RoleSupervisor) + "|items": {
				Role: auth.RoleSupervisor, Resource: "items", CanView: true,
			},
		},
	}
}

func serveGate(t *testing.T, gate auth.Middleware, method, target, key string, next http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	if next == nil {
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}
	req := httptest.NewRequest(method, target, nil)
	if key != "" {
		req.Header.Set(auth.HeaderAPIKey, key)
	}
	rec := httptest.NewRecorder()
	gate.Gate(next).ServeHTTP(rec, req)
	return rec
}

func TestGateMissingKey(t *testing.T) {
	gate := newGate(fixtureRepo())
	rec := serveGate(t, gate, http.MethodGet, "/api/v1/items", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGateUnknownKeyIndistinguishableFromMissing(t *testing.T) {
	gate := newGate(fixtureRepo())

	missing := serveGate(t, gate, http.MethodGet, "/api/v1/items", "", nil)
	unknown := serveGate(t, gate, http.MethodGet, "/api/v1/items", "no_such_key", nil)

	require.Equal(t, http.StatusUnauthorized, missing.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)

	missingBody, err := io.ReadAll(missing.Body)
	require.NoError(t, err)
	unknownBody, err := io.ReadAll(unknown.Body)
	require.NoError(t, err)
	require.Equal(t, string(missingBody), string(unknownBody))
}

func TestGateNoResourceSegment(t *testing.T) {
	gate := newGate(fixtureRepo())
	rec := serveGate(t, gate, http.MethodGet, "/api/v1", "super_key", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGateAllowedAttachesPrincipal(t *testing.T) {
	gate := newGate(fixtureRepo())

	var seen auth.Principal
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, found = auth.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := serveGate(t, gate, http.MethodGet, "/api/v1/items/42", "super_key", next)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, found)
	require.Equal(t, int64(7), seen.ID)
	require.Equal(t, auth.RoleSupervisor, seen.Role)
}

func TestGateDeniedMethod(t *testing.T) {
	gate := newGate(fixtureRepo())

	// Supervisor may view items but not create them.
	rec := serveGate(t, gate, http.MethodPost, "/api/v1/items", "super_key", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGateAdminPassesEverywhere(t *testing.T) {
	gate := newGate(fixtureRepo())

	for _, target := range []string{"/api/v1/items", "/api/v1/keys/all", "/api/v1/unmapped"} {
		rec := serveGate(t, gate, http.MethodDelete, target, "admin_key", nil)
		require.Equal(t, http.StatusOK, rec.Code, "target %s", target)
	}
}

func TestResourceFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/api/v1/items", "items"},
		{"/api/v1/Items/5", "items"},
		{"/api/v1/keys/all", "keys"},
		{"//api//v1//orders", "orders"},
		{"/api/v1", ""},
		{"/api/v1/", ""},
		{"/healthz", ""},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, auth.ResourceFromPath(tc.path), "path %q", tc.path)
	}
}
