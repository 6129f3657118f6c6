package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/service"
	"go.uber.org/zap"
)

type PurchaseOrderHandler struct {
	purchaseOrderService *service.PurchaseOrderService
	logger               *zap.Logger
}

func NewPurchaseOrderHandler(purchaseOrderService *service.PurchaseOrderService, logger *zap.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		purchaseOrderService: purchaseOrderService,
		logger:               logger,
	}
}

// List godoc
// @Summary List purchase orders
// @Description Get paginated list of purchase orders with optional filters
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param status query string false "Filter by status" Enums(draft, ordered, received, cancelled)
// @Param supplierId query string false "Filter by supplier" format(uuid)
// @Param projectId query string false "Filter by project" format(uuid)
// @Success 200 {object} handler.listResponse{data=[]domain.PurchaseOrderDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /purchase-orders [get]
func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := domain.PurchaseOrderStatus(r.URL.Query().Get("status"))

	supplierID, err := optionalUUIDQuery(r, "supplierId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid supplierId: must be a valid UUID")
		return
	}
	projectID, err := optionalUUIDQuery(r, "projectId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid projectId: must be a valid UUID")
		return
	}

	orders, total, err := h.purchaseOrderService.List(r.Context(), page, pageSize, status, supplierID, projectID)
	if err != nil {
		h.logger.Error("failed to list purchase orders", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: orders, Total: total, Page: page, PageSize: pageSize})
}

// GetByID godoc
// @Summary Get purchase order by ID
// @Description Get a purchase order with its line items
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Success 200 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid purchase order ID: must be a valid UUID")
		return
	}

	order, err := h.purchaseOrderService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Create godoc
// @Summary Create purchase order
// @Description Create a purchase order with line items. Line totals and the order total are computed server side.
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param request body domain.CreatePurchaseOrderRequest true "Purchase order data"
// @Success 201 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.purchaseOrderService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create purchase order", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// Update godoc
// @Summary Update purchase order
// @Description Update a purchase order. Supplied line items replace the existing ones.
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Param request body domain.UpdatePurchaseOrderRequest true "Purchase order data"
// @Success 200 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid purchase order ID: must be a valid UUID")
		return
	}

	var req domain.UpdatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.purchaseOrderService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Delete godoc
// @Summary Delete purchase order
// @Description Delete a purchase order together with its line items
// @Tags PurchaseOrders
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid purchase order ID: must be a valid UUID")
		return
	}

	if err := h.purchaseOrderService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
