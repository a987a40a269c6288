package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	appprofile "inaltera/ms_sionver_dashboard/internal/application/profile"
	"inaltera/ms_sionver_dashboard/internal/core/billing"
	coreprofile "inaltera/ms_sionver_dashboard/internal/core/profile"
	"inaltera/ms_sionver_dashboard/internal/core/sealing"
	httperrors "inaltera/ms_sionver_dashboard/internal/infrastructure/http"
)

// Handler bridges HTTP traffic with the profile application service.
type Handler struct {
	service *appprofile.Service
}

func NewHandler(service *appprofile.Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /api/v1/perfil requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context())
	if err != nil {
		writeProfileError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, p, nil)
}

// Update handles POST /api/v1/perfil requests.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var p coreprofile.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El cuerpo de la petición no es válido"}, nil)
		return
	}

	if err := h.service.Update(r.Context(), p); err != nil {
		writeProfileError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, p, nil)
}

// Subscription handles GET /api/v1/perfil/suscripcion requests.
func (h *Handler) Subscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.SubscriptionStatus(r.Context())
	if err != nil {
		writeProfileError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, sub, nil)
}

func writeProfileError(w http.ResponseWriter, err error) {
	var verr *billing.ValidationError
	var berr *sealing.BackendError

	switch {
	case errors.As(err, &verr):
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", verr.Fields, nil)
	case errors.As(err, &berr):
		httperrors.WriteError(w, http.StatusBadGateway, "Error del servicio de sellado", []string{berr.Message}, nil)
	default:
		httperrors.WriteError(w, http.StatusInternalServerError, "Error Interno", []string{err.Error()}, nil)
	}
}
