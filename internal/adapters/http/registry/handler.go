package registry

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	appregistry "inaltera/ms_sionver_dashboard/internal/application/registry"
	coreregistry "inaltera/ms_sionver_dashboard/internal/core/registry"
	"inaltera/ms_sionver_dashboard/internal/core/sealing"
	httperrors "inaltera/ms_sionver_dashboard/internal/infrastructure/http"
)

// Handler bridges HTTP traffic with the registry application service.
type Handler struct {
	service *appregistry.Service
}

func NewHandler(service *appregistry.Service) *Handler {
	return &Handler{service: service}
}

// ListResponse is the paginated registry view returned to the renderer.
type ListResponse struct {
	Entries    []coreregistry.Entry `json:"entries"`
	TotalCount int                  `json:"totalCount"`
	TotalPages int                  `json:"totalPages"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
}

// List handles GET /api/v1/registro requests. Filters come as query
// parameters: search, date_from, date_to (YYYY-MM-DD, inclusive) and page.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := coreregistry.NewQuery(h.service.PageSize())
	if search := params.Get("search"); search != "" {
		query = query.WithSearch(search)
	}

	if raw := params.Get("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"date_from debe tener el formato YYYY-MM-DD"}, nil)
			return
		}
		query = query.WithDateFrom(&from)
	}

	if raw := params.Get("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"date_to debe tener el formato YYYY-MM-DD"}, nil)
			return
		}
		query = query.WithDateTo(&to)
	}

	if raw := params.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"page debe ser un número entero"}, nil)
			return
		}
		query = query.WithPage(page)
	}

	result, err := h.service.List(r.Context(), query)
	if err != nil {
		var berr *sealing.BackendError
		if errors.As(err, &berr) {
			httperrors.WriteError(w, http.StatusBadGateway, "Error del servicio de sellado", []string{berr.Message}, nil)
			return
		}
		httperrors.WriteError(w, http.StatusInternalServerError, "Error Interno", []string{err.Error()}, nil)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, ListResponse{
		Entries:    result.PageEntries,
		TotalCount: result.TotalCount,
		TotalPages: result.TotalPages,
		Page:       result.Page,
		PageSize:   h.service.PageSize(),
	}, nil)
}
