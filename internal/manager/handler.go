package manager

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/nalharbi/inspection-management/internal/transport"
	"github.com/nalharbi/inspection-management/pkg/logger"
)

type ServiceAPI interface {
	CreateManager(dto CreateManagerDTO) (*Manager, error)
	ListManagers() ([]*Manager, error)
	GetManager(id string) (*Manager, error)
	UpdateManager(id string, dto UpdateManagerDTO) (*Manager, error)
	DeleteManager(id string) error
	GetSummary(id string) (*SummaryResponse, error)
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

// CreateManager handles POST /api/managers.
func (h *Handler) CreateManager(w http.ResponseWriter, r *http.Request) {
	var dto CreateManagerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	manager, err := h.Service.CreateManager(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, manager)
}

// ListManagers handles GET /api/managers.
func (h *Handler) ListManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := h.Service.ListManagers()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, managers)
}

// GetManager handles GET /api/managers/{id}.
func (h *Handler) GetManager(w http.ResponseWriter, r *http.Request) {
	manager, err := h.Service.GetManager(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, manager)
}

// GetSummary handles GET /api/managers/{id}/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.GetSummary(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

// UpdateManager handles PUT /api/managers/{id}.
func (h *Handler) UpdateManager(w http.ResponseWriter, r *http.Request) {
	var dto UpdateManagerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	manager, err := h.Service.UpdateManager(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, manager)
}

// DeleteManager handles DELETE /api/managers/{id}.
func (h *Handler) DeleteManager(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteManager(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "manager deleted"})
}
