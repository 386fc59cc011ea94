package auth

import (
	"encoding/json"
	"net/http"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/transport"
	"github.com/nalharbi/inspection-management/pkg/logger"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (TokenResponse, error)
	Authenticate(dto LoginDTO) (TokenResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// Register handles POST /api/auth/register. The route itself is bearer-gated:
// only an authenticated caller may create new credentials.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Register(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, tokens)
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout handles POST /api/auth/logout. Tokens are stateless and never
// revoked server-side, so this only acknowledges the request.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// AuthMiddleware is the bearer gate: it rejects requests without a valid
// token and attaches the resolved subject id to the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := internal.ContextWithSubject(r.Context(), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
