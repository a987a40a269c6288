package billing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbilling "inaltera/ms_sionver_dashboard/internal/application/billing"
	corebilling "inaltera/ms_sionver_dashboard/internal/core/billing"
	"inaltera/ms_sionver_dashboard/internal/core/sealing"
	httperrors "inaltera/ms_sionver_dashboard/internal/infrastructure/http"
)

// Handler bridges HTTP traffic with the billing application service: draft
// edits, product selection and both intake paths.
type Handler struct {
	service        *appbilling.Service
	maxUploadBytes int64
}

// NewHandler creates a new billing HTTP handler. maxUploadBytes bounds the
// multipart body of the PDF staging endpoint.
func NewHandler(service *appbilling.Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

// GetDraft handles GET /api/v1/facturacion/borrador.
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	httperrors.WriteJSON(w, http.StatusOK, h.service.Draft(r.Context()), nil)
}

// ResetDraft handles DELETE /api/v1/facturacion/borrador.
func (h *Handler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	httperrors.WriteJSON(w, http.StatusOK, h.service.ResetDraft(r.Context()), nil)
}

// GetStatus handles GET /api/v1/facturacion/estado.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	httperrors.WriteJSON(w, http.StatusOK, h.service.Status(r.Context()), nil)
}

// AddLine handles POST /api/v1/facturacion/borrador/lineas.
func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	httperrors.WriteJSON(w, http.StatusOK, h.service.AddLine(r.Context()), nil)
}

// RemoveLine handles DELETE /api/v1/facturacion/borrador/lineas/{lineID}.
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	lineID, ok := h.lineID(w, r)
	if !ok {
		return
	}
	snap, err := h.service.RemoveLine(r.Context(), lineID)
	h.writeDraftResult(w, snap, err)
}

// UpdateLineRequest carries one optional field per editable line attribute;
// exactly the fields present are applied.
type UpdateLineRequest struct {
	Description *string `json:"description,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	UnitPrice   *string `json:"unitPrice,omitempty"`
	TaxRate     *int64  `json:"taxRate,omitempty"`
}

// UpdateLine handles PATCH /api/v1/facturacion/borrador/lineas/{lineID}.
func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	lineID, ok := h.lineID(w, r)
	if !ok {
		return
	}

	var reqBody UpdateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El cuerpo de la petición no es válido"}, nil)
		return
	}

	ctx := r.Context()
	var snap corebilling.Snapshot
	var err error

	switch {
	case reqBody.Description != nil:
		snap, err = h.service.SetLineDescription(ctx, lineID, *reqBody.Description)
	case reqBody.Quantity != nil:
		snap, err = h.service.SetLineQuantity(ctx, lineID, *reqBody.Quantity)
	case reqBody.UnitPrice != nil:
		price, perr := decimal.NewFromString(*reqBody.UnitPrice)
		if perr != nil {
			httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El precio no es un número válido"}, nil)
			return
		}
		snap, err = h.service.SetLineUnitPrice(ctx, lineID, price)
	case reqBody.TaxRate != nil:
		snap, err = h.service.SetLineTaxRate(ctx, lineID, corebilling.TaxRate(*reqBody.TaxRate))
	default:
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"Indica un campo a modificar"}, nil)
		return
	}

	h.writeDraftResult(w, snap, err)
}

// SelectProductRequest identifies the catalog product to apply to a line.
type SelectProductRequest struct {
	ProductID string `json:"productId"`
}

// SelectProduct handles PUT /api/v1/facturacion/borrador/lineas/{lineID}/producto.
func (h *Handler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	lineID, ok := h.lineID(w, r)
	if !ok {
		return
	}

	var reqBody SelectProductRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil || reqBody.ProductID == "" {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"Indica un producto"}, nil)
		return
	}

	snap, err := h.service.SelectProduct(r.Context(), lineID, reqBody.ProductID)
	h.writeDraftResult(w, snap, err)
}

// SetClientRequest identifies the draft counterparty.
type SetClientRequest struct {
	ClientID string `json:"clientId"`
}

// SetClient handles PUT /api/v1/facturacion/borrador/cliente.
func (h *Handler) SetClient(w http.ResponseWriter, r *http.Request) {
	var reqBody SetClientRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El cuerpo de la petición no es válido"}, nil)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, h.service.SetClient(r.Context(), reqBody.ClientID), nil)
}

// SetNotesRequest carries the draft's free-text notes.
type SetNotesRequest struct {
	Notes string `json:"notes"`
}

// SetNotes handles PUT /api/v1/facturacion/borrador/notas.
func (h *Handler) SetNotes(w http.ResponseWriter, r *http.Request) {
	var reqBody SetNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El cuerpo de la petición no es válido"}, nil)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, h.service.SetNotes(r.Context(), reqBody.Notes), nil)
}

// SubmitDraft handles POST /api/v1/facturacion/emitir.
func (h *Handler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.service.SubmitDraft(r.Context())
	if err != nil {
		h.writeSubmissionError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusCreated, receipt, nil)
}

// StagePDF handles POST /api/v1/facturacion/pdf.
func (h *Handler) StagePDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		httperrors.WriteError(w, http.StatusRequestEntityTooLarge, "Error de Validación", []string{"El archivo supera el tamaño máximo permitido"}, nil)
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"Selecciona un archivo PDF"}, nil)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"No se pudo leer el archivo"}, nil)
		return
	}

	upload, err := h.service.StagePDF(r.Context(), header.Filename, content)
	if err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"Solo se admiten archivos PDF"}, nil)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"filename":  upload.Filename,
		"sizeBytes": upload.SizeBytes,
		"mimeType":  upload.MIMEType,
	}, nil)
}

// ClearPDF handles DELETE /api/v1/facturacion/pdf.
func (h *Handler) ClearPDF(w http.ResponseWriter, r *http.Request) {
	h.service.ClearPDF(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// SubmitPDF handles POST /api/v1/facturacion/pdf/sellar.
func (h *Handler) SubmitPDF(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.service.SubmitPDF(r.Context())
	if err != nil {
		h.writeSubmissionError(w, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusCreated, receipt, nil)
}

func (h *Handler) lineID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "lineID"))
	if err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El identificador de línea no es válido"}, nil)
		return uuid.Nil, false
	}
	return id, true
}

// writeDraftResult maps draft operation outcomes: the snapshot travels on
// success, domain rejections become 4xx with a user-facing message.
func (h *Handler) writeDraftResult(w http.ResponseWriter, snap corebilling.Snapshot, err error) {
	switch {
	case err == nil:
		httperrors.WriteJSON(w, http.StatusOK, snap, nil)
	case errors.Is(err, corebilling.ErrLineNotFound):
		httperrors.WriteError(w, http.StatusNotFound, "Error de Validación", []string{"La línea no existe"}, nil)
	case errors.Is(err, corebilling.ErrProductNotFound):
		httperrors.WriteError(w, http.StatusNotFound, "Error de Validación", []string{"El producto no existe en el catálogo"}, nil)
	case errors.Is(err, corebilling.ErrCannotRemoveLastLine):
		httperrors.WriteError(w, http.StatusConflict, "Error de Validación", []string{"La factura debe tener al menos una línea"}, nil)
	case errors.Is(err, corebilling.ErrInvalidQuantity):
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"La cantidad debe ser al menos 1"}, nil)
	case errors.Is(err, corebilling.ErrInvalidUnitPrice):
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El precio no puede ser negativo"}, nil)
	case errors.Is(err, corebilling.ErrInvalidTaxRate):
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El tipo de IVA no es válido"}, nil)
	default:
		httperrors.WriteError(w, http.StatusInternalServerError, "Error Interno", []string{err.Error()}, nil)
	}
}

// writeSubmissionError maps intake workflow failures to HTTP answers.
// Backend messages travel verbatim; the renderer shows them as-is.
func (h *Handler) writeSubmissionError(w http.ResponseWriter, err error) {
	var verr *corebilling.ValidationError
	var berr *sealing.BackendError

	switch {
	case errors.As(err, &verr):
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", verr.Fields, nil)
	case errors.Is(err, appbilling.ErrSubmissionInFlight):
		httperrors.WriteError(w, http.StatusConflict, "Envío en curso", []string{"Ya hay un envío en curso, espera a que termine"}, nil)
	case errors.Is(err, appbilling.ErrNoUploadStaged):
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"Selecciona un archivo PDF"}, nil)
	case errors.As(err, &berr):
		httperrors.WriteError(w, http.StatusBadGateway, "Error del servicio de sellado", []string{berr.Message}, nil)
	default:
		httperrors.WriteError(w, http.StatusInternalServerError, "Error Interno", []string{err.Error()}, nil)
	}
}
