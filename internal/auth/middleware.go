package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cargohub/cargohub/internal/observability"
	"github.com/cargohub/cargohub/internal/platform/httpx"
)

// HeaderAPIKey is the fixed request header carrying the raw secret key.
const HeaderAPIKey = "API_KEY"

// Middleware is the access gate: it runs once per inbound request, resolves
// the caller identity, evaluates the permission matrix against the resource
// segment of the path, and either terminates the request or attaches the
// principal to the downstream context.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Gate enforces authentication and authorization for the wrapped handler.
// Missing and unknown keys are indistinguishable in the response.
func (m Middleware) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(HeaderAPIKey)
		if key == "" {
			m.Metrics.RecordAuthDecision("unauthenticated")
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
			return
		}

		principal, err := m.Service.ResolveKey(r.Context(), key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				m.Metrics.RecordAuthDecision("unauthenticated")
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
				return
			}
			if m.Logger != nil {
				m.Logger.Error("resolve api key", slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}

		// An unparseable resource is "no permission", never "allow".
		resource := ResourceFromPath(r.URL.Path)
		if resource == "" {
			m.Metrics.RecordAuthDecision("forbidden")
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "access denied")
			return
		}

		allowed, err := m.Service.Authorize(r.Context(), principal, resource, r.Method)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Error("authorize request", slog.Any("error", err), slog.String("resource", resource))
			}
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		if !allowed {
			m.Metrics.RecordAuthDecision("forbidden")
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "access denied")
			return
		}

		m.Metrics.RecordAuthDecision("allowed")
		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
	})
}

// ResourceFromPath isolates the resource segment: the first non-empty path
// component after the /api/{version} prefix, lower-cased. Returns "" when
// the path ends at the version prefix.
func ResourceFromPath(path string) string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) < 3 {
		return ""
	}
	return strings.ToLower(segments[2])
}
