package auth

import (
	"context"
	"errors"
	"strings"
)

// RepositoryPort defines the lookups the evaluator needs.
type RepositoryPort interface {
	FindByKey(ctx context.Context, key string) (Principal, error)
	GetRule(ctx context.Context, role Role, resource string) (PermissionRule, error)
}

// Service resolves API keys to principals and evaluates the permission
// matrix. Decisions fail closed: a missing rule, an unknown verb, or an
// empty resource all deny.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ResolveKey returns the principal owning the presented key, or ErrNotFound.
func (s *Service) ResolveKey(ctx context.Context, key string) (Principal, error) {
	if key == "" {
		return Principal{}, ErrNotFound
	}
	return s.repo.FindByKey(ctx, key)
}

// Authorize reports whether the principal may perform the HTTP method on the
// named resource. Admin principals pass unconditionally, regardless of any
// stored rule.
func (s *Service) Authorize(ctx context.Context, p Principal, resource, method string) (bool, error) {
	if p.Role.IsAdmin() {
		return true, nil
	}
	action, ok := ActionFromMethod(method)
	if !ok {
		return false, nil
	}
	resource = strings.ToLower(strings.TrimSpace(resource))
	if resource == "" {
		return false, nil
	}
	rule, err := s.repo.GetRule(ctx, p.Role, resource)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return rule.Allows(action), nil
}
