package keys

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/cargohub/cargohub/internal/auth"
	"github.com/cargohub/cargohub/internal/platform/httpx"
)

// resource is the matrix column key for key-management endpoints.
const resource = "keys"

// Handler wires the /keys HTTP surface. Every endpoint re-checks the
// permission matrix before touching the service even though the access gate
// already ran: defense in depth against misrouted mounts.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	auth      *auth.Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, authService *auth.Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		auth:      authService,
		validator: validator.New(),
	}
}

// MountRoutes registers key management routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/all", h.list)
	r.Get("/roles", h.roles)
	r.Get("/{id}", h.get)
	r.Post("/", h.create)
	r.Post("/generate", h.generate)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.deleteKey)
}

// caller recovers the gate-attached principal and re-evaluates the matrix.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return auth.Principal{}, false
	}
	allowed, err := h.auth.Authorize(r.Context(), principal, resource, r.Method)
	if err != nil {
		h.logger.Error("authorize keys endpoint", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return auth.Principal{}, false
	}
	if !allowed {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "access denied")
		return auth.Principal{}, false
	}
	return principal, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.caller(w, r)
	if !ok {
		return
	}
	keys, err := h.service.ListVisible(r.Context(), principal)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	if keys == nil {
		keys = []auth.Principal{}
	}
	httpx.JSON(w, http.StatusOK, keys)
}

func (h *Handler) roles(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.caller(w, r); !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, auth.Roles())
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid key id")
		return
	}
	key, err := h.service.GetVisible(r.Context(), principal, id)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, key)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.caller(w, r)
	if !ok {
		return
	}
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	key, err := h.service.Create(r.Context(), principal, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, key)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.caller(w, r)
	if !ok {
		return
	}
	var in GenerateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	key, err := h.service.Generate(r.Context(), principal, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, key)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid key id")
		return
	}
	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), principal, id, in); err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) deleteKey(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid key id")
		return
	}
	if err := h.service.Delete(r.Context(), principal, id); err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.NoContent(w)
}

// respondErr maps service errors to HTTP problems. Guard failures keep their
// human-readable reason so a legitimate caller can tell "you may not" from
// "does not exist".
func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "api key not found")
	case errors.Is(err, ErrAdminOnly), errors.Is(err, ErrTenantScope):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, ErrUnknownRole):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrDuplicateKey):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		h.logger.Error("keys operation", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
