package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/service"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// List godoc
// @Summary List invoices
// @Description Get paginated list of invoices with optional filters
// @Tags Invoices
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param status query string false "Filter by status" Enums(draft, sent, paid, overdue, cancelled)
// @Param projectId query string false "Filter by project" format(uuid)
// @Param clientId query string false "Filter by client" format(uuid)
// @Success 200 {object} handler.listResponse{data=[]domain.InvoiceDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := domain.InvoiceStatus(r.URL.Query().Get("status"))

	projectID, err := optionalUUIDQuery(r, "projectId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid projectId: must be a valid UUID")
		return
	}
	clientID, err := optionalUUIDQuery(r, "clientId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid clientId: must be a valid UUID")
		return
	}

	invoices, total, err := h.invoiceService.List(r.Context(), page, pageSize, status, projectID, clientID)
	if err != nil {
		h.logger.Error("failed to list invoices", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: invoices, Total: total, Page: page, PageSize: pageSize})
}

// GetByID godoc
// @Summary Get invoice by ID
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID: must be a valid UUID")
		return
	}

	invoice, err := h.invoiceService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// Create godoc
// @Summary Create invoice
// @Description Create an invoice. When no invoice number is supplied the next number in the yearly sequence is assigned.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body domain.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create invoice", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, invoice)
}

// Update godoc
// @Summary Update invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Param request body domain.UpdateInvoiceRequest true "Invoice data"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID: must be a valid UUID")
		return
	}

	var req domain.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// Delete godoc
// @Summary Delete invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID: must be a valid UUID")
		return
	}

	if err := h.invoiceService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// MarkPaid godoc
// @Summary Mark invoice paid
// @Description Record payment of an invoice. Paid and cancelled invoices are rejected.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Param request body domain.MarkInvoicePaidRequest true "Payment details"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /invoices/{id}/mark-paid [post]
func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID: must be a valid UUID")
		return
	}

	var req domain.MarkInvoicePaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.MarkPaid(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}
