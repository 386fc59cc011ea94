package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/pkg/logger"
)

// BaseHandler provides the response helpers shared by all HTTP handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes a {"message": ...} error response.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.WriteJSON(w, status, map[string]string{"message": message})
}

// WriteValidationErrors writes a 422 {"errors": [...]} response.
func (h *BaseHandler) WriteValidationErrors(w http.ResponseWriter, messages []string) {
	h.WriteJSON(w, http.StatusUnprocessableEntity, map[string][]string{"errors": messages})
}

// HandleServiceError maps a service error onto the wire format: validation
// errors render as 422 with the field-message list, other application errors
// carry their own status, and anything unrecognized becomes a generic 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		if appErr.IsValidation() {
			h.WriteValidationErrors(w, appErr.Messages)
			return
		}
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.Logger.Error("internal error", "error", appErr.Error())
			h.WriteError(w, appErr.StatusCode, "internal server error")
			return
		}
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}

	h.Logger.Error("unexpected error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// ExtractTokenFromHeader extracts the bearer token from the Authorization
// header, returning "" when the header is absent or not in Bearer form.
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
