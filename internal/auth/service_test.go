package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	principals map[string]Principal
	rules      map[string]PermissionRule
	err        error
}

func ruleKey(role Role, resource string) string {
	return string(role) + "|" + resource
}

func (s *stubRepo) FindByKey(ctx context.Context, key string) (Principal, error) {
	if s.err != nil {
		return Principal{}, s.err
	}
	if p, ok := s.principals[key]; ok {
		return p, nil
	}
	return Principal{}, ErrNotFound
}

func (s *stubRepo) GetRule(ctx context.Context, role Role, resource string) (PermissionRule, error) {
	if s.err != nil {
		return PermissionRule{}, s.err
	}
	if rule, ok := s.rules[ruleKey(role, resource)]; ok {
		return rule, nil
	}
	return PermissionRule{}, ErrNotFound
}

func TestResolveKey(t *testing.T) {
	repo := &stubRepo{principals: map[string]Principal{
		"secret": {ID: 1, Key: "secret", Role: RoleOperative},
	}}
	svc := NewService(repo)
	ctx := context.Background()

	p, err := svc.ResolveKey(ctx, "secret")
	require.NoError(t, err)
	require.Equal(t, int64(1), p.ID)

	_, err = svc.ResolveKey(ctx, "unknown")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ResolveKey(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAuthorizeAdminBypassesMatrix(t *testing.T) {
	svc := NewService(&stubRepo{})
	ctx := context.Background()
	admin := Principal{Role: RoleAdmin}

	for _, resource := range append(SeedResources(), "keys", "anything") {
		for _, method := range []string{"GET", "POST", "PUT", "DELETE", "PATCH"} {
			allowed, err := svc.Authorize(ctx, admin, resource, method)
			require.NoError(t, err)
			require.True(t, allowed, "admin denied %s %s", method, resource)
		}
	}
}

func TestAuthorizeFailsClosedWithoutRule(t *testing.T) {
	svc := NewService(&stubRepo{})
	ctx := context.Background()
	operative := Principal{Role: RoleOperative}

	for _, method := range []string{"GET", "POST", "PUT", "DELETE"} {
		allowed, err := svc.Authorize(ctx, operative, "orders", method)
		require.NoError(t, err)
		require.False(t, allowed)
	}
}

func TestAuthorizeMatrixLookup(t *testing.T) {
	repo := &stubRepo{rules: map[string]PermissionRule{
		ruleKey(RoleWarehouseManager, "warehouses"): {
			Role:     RoleWarehouseManager,
			Resource: "warehouses",
			CanView:  true,
		},
	}}
	svc := NewService(repo)
	ctx := context.Background()
	manager := Principal{Role: RoleWarehouseManager}

	allowed, err := svc.Authorize(ctx, manager, "warehouses", "GET")
	require.NoError(t, err)
	require.True(t, allowed)

	// Method comparison is case-insensitive.
	allowed, err = svc.Authorize(ctx, manager, "warehouses", "get")
	require.NoError(t, err)
	require.True(t, allowed)

	// Resource comparison is case-insensitive too.
	allowed, err = svc.Authorize(ctx, manager, "Warehouses", "GET")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = svc.Authorize(ctx, manager, "warehouses", "POST")
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestAuthorizeDeniesUnknownMethodAndEmptyResource(t *testing.T) {
	repo := &stubRepo{rules: map[string]PermissionRule{
		ruleKey(RoleSupervisor, "items"): {
			Role: RoleSupervisor, Resource: "items",
			CanView: true, CanCreate: true, CanUpdate: true, CanDelete: true,
		},
	}}
	svc := NewService(repo)
	ctx := context.Background()
	supervisor := Principal{Role: RoleSupervisor}

	allowed, err := svc.Authorize(ctx, supervisor, "items", "PATCH")
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, err = svc.Authorize(ctx, supervisor, "", "GET")
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestAuthorizePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	svc := NewService(&stubRepo{err: storeErr})
	ctx := context.Background()

	_, err := svc.Authorize(ctx, Principal{Role: RoleOperative}, "items", "GET")
	require.ErrorIs(t, err, storeErr)
}

func TestActionFromMethod(t *testing.T) {
	cases := []struct {
		method string
		action Action
		ok     bool
	}{
		{"GET", ActionView, true},
		{"get", ActionView, true},
		{"POST", ActionCreate, true},
		{"PUT", ActionUpdate, true},
		{"delete", ActionDelete, true},
		{"PATCH", 0, false},
		{"OPTIONS", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		action, ok := ActionFromMethod(tc.method)
		require.Equal(t, tc.ok, ok, "method %q", tc.method)
		if tc.ok {
			require.Equal(t, tc.action, action, "method %q", tc.method)
		}
	}
}
