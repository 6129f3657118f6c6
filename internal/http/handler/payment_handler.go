package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/service"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// List godoc
// @Summary List payments
// @Description Get paginated list of outgoing payments with optional filters
// @Tags Payments
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param recipientType query string false "Filter by recipient type" Enums(subcontractor, staff, supplier)
// @Param status query string false "Filter by status" Enums(pending, completed, cancelled)
// @Param projectId query string false "Filter by project" format(uuid)
// @Success 200 {object} handler.listResponse{data=[]domain.PaymentDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	recipientType := domain.PaymentRecipientType(r.URL.Query().Get("recipientType"))
	status := domain.PaymentStatus(r.URL.Query().Get("status"))

	projectID, err := optionalUUIDQuery(r, "projectId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid projectId: must be a valid UUID")
		return
	}

	payments, total, err := h.paymentService.List(r.Context(), page, pageSize, recipientType, status, projectID)
	if err != nil {
		h.logger.Error("failed to list payments", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: payments, Total: total, Page: page, PageSize: pageSize})
}

// GetByID godoc
// @Summary Get payment by ID
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID" format(uuid)
// @Success 200 {object} domain.PaymentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payment ID: must be a valid UUID")
		return
	}

	payment, err := h.paymentService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payment)
}

// Create godoc
// @Summary Create payment
// @Description Record a payment to a subcontractor, staff member or supplier
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body domain.CreatePaymentRequest true "Payment data"
// @Success 201 {object} domain.PaymentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	payment, err := h.paymentService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create payment", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, payment)
}

// Update godoc
// @Summary Update payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID" format(uuid)
// @Param request body domain.UpdatePaymentRequest true "Payment data"
// @Success 200 {object} domain.PaymentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /payments/{id} [put]
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payment ID: must be a valid UUID")
		return
	}

	var req domain.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	payment, err := h.paymentService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payment)
}

// Delete godoc
// @Summary Delete payment
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payment ID: must be a valid UUID")
		return
	}

	if err := h.paymentService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
