package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRulesUniquePerRoleResource(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range DefaultRules() {
		key := string(r.Role) + "|" + r.Resource
		require.False(t, seen[key], "duplicate rule for %s", key)
		seen[key] = true
	}
}

func TestDefaultRulesWellFormed(t *testing.T) {
	for _, r := range DefaultRules() {
		require.True(t, r.Role.Valid(), "unknown role %q", r.Role)
		require.NotEmpty(t, r.Resource)
		require.Equal(t, strings.ToLower(r.Resource), r.Resource, "resource %q not lower-cased", r.Resource)
	}
}

func TestDefaultRulesAdminCoversAllResources(t *testing.T) {
	admin := make(map[string]PermissionRule)
	for _, r := range DefaultRules() {
		if r.Role == RoleAdmin {
			admin[r.Resource] = r
		}
	}
	for _, resource := range append(SeedResources(), "keys") {
		r, ok := admin[resource]
		require.True(t, ok, "no Admin rule for %s", resource)
		require.True(t, r.CanView && r.CanCreate && r.CanUpdate && r.CanDelete, "Admin not full on %s", resource)
	}
}

func TestBootstrapPrincipalsUniqueKeys(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range BootstrapPrincipals() {
		require.True(t, p.Role.Valid(), "unknown role %q for %s", p.Role, p.Key)
		require.NotEmpty(t, p.Key)
		require.False(t, seen[p.Key], "duplicate bootstrap key %s", p.Key)
		seen[p.Key] = true
	}
}
