package round

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/nalharbi/inspection-management/internal/transport"
	"github.com/nalharbi/inspection-management/pkg/logger"
)

type ServiceAPI interface {
	CreateRound(dto CreateRoundDTO) (*Round, error)
	ListRounds() ([]*Round, error)
	GetRound(id string) (*Round, error)
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

// CreateRound handles POST /api/rounds.
func (h *Handler) CreateRound(w http.ResponseWriter, r *http.Request) {
	var dto CreateRoundDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	round, err := h.Service.CreateRound(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, round)
}

// ListRounds handles GET /api/rounds.
func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.Service.ListRounds()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rounds)
}

// GetRound handles GET /api/rounds/{id}.
func (h *Handler) GetRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.Service.GetRound(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, round)
}
