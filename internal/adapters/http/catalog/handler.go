package catalog

import (
	"errors"
	"net/http"

	appcatalog "inaltera/ms_sionver_dashboard/internal/application/catalog"
	"inaltera/ms_sionver_dashboard/internal/core/sealing"
	httperrors "inaltera/ms_sionver_dashboard/internal/infrastructure/http"
)

// Handler bridges HTTP traffic with the catalog application service.
type Handler struct {
	service *appcatalog.Service
}

func NewHandler(service *appcatalog.Service) *Handler {
	return &Handler{service: service}
}

// Clients handles GET /api/v1/catalogo/clientes requests.
func (h *Handler) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.Clients(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, clients, nil)
}

// Products handles GET /api/v1/catalogo/productos requests.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Products(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, products, nil)
}

func writeCatalogError(w http.ResponseWriter, err error) {
	var berr *sealing.BackendError
	if errors.As(err, &berr) {
		httperrors.WriteError(w, http.StatusBadGateway, "Error del servicio de sellado", []string{berr.Message}, nil)
		return
	}
	httperrors.WriteError(w, http.StatusInternalServerError, "Error Interno", []string{err.Error()}, nil)
}
