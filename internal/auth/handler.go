package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cargohub/cargohub/internal/platform/httpx"
)

// Handler exposes the bearer-token handshake. It sits outside the permission
// matrix: a valid key yields a token restating the caller's own identity and
// nothing more.
type Handler struct {
	logger  *slog.Logger
	service *Service
	issuer  *TokenIssuer
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, issuer *TokenIssuer) *Handler {
	return &Handler{logger: logger, service: service, issuer: issuer}
}

type tokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// IssueToken authenticates the raw key and responds with a signed assertion.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get(HeaderAPIKey)
	if key == "" {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	principal, err := h.service.ResolveKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
			return
		}
		h.logger.Error("resolve api key for token", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	token, err := h.issuer.Issue(principal)
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(h.issuer.TTL().Seconds()),
	})
}
