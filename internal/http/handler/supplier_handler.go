package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/service"
	"go.uber.org/zap"
)

type SupplierHandler struct {
	supplierService *service.SupplierService
	logger          *zap.Logger
}

func NewSupplierHandler(supplierService *service.SupplierService, logger *zap.Logger) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		logger:          logger,
	}
}

// List godoc
// @Summary List suppliers
// @Description Get paginated list of suppliers with optional filters
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param search query string false "Search by name or contact person"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Success 200 {object} handler.listResponse{data=[]domain.SupplierDTO}
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /suppliers [get]
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")
	status := domain.SupplierStatus(r.URL.Query().Get("status"))

	suppliers, total, err := h.supplierService.List(r.Context(), page, pageSize, search, category, status)
	if err != nil {
		h.logger.Error("failed to list suppliers", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: suppliers, Total: total, Page: page, PageSize: pageSize})
}

// GetByID godoc
// @Summary Get supplier by ID
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID" format(uuid)
// @Success 200 {object} domain.SupplierDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /suppliers/{id} [get]
func (h *SupplierHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid supplier ID: must be a valid UUID")
		return
	}

	supplier, err := h.supplierService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, supplier)
}

// Create godoc
// @Summary Create supplier
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param request body domain.CreateSupplierRequest true "Supplier data"
// @Success 201 {object} domain.SupplierDTO
// @Failure 400 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /suppliers [post]
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	supplier, err := h.supplierService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create supplier", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, supplier)
}

// Update godoc
// @Summary Update supplier
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID" format(uuid)
// @Param request body domain.UpdateSupplierRequest true "Supplier data"
// @Success 200 {object} domain.SupplierDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /suppliers/{id} [put]
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid supplier ID: must be a valid UUID")
		return
	}

	var req domain.UpdateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	supplier, err := h.supplierService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, supplier)
}

// Delete godoc
// @Summary Delete supplier
// @Tags Suppliers
// @Produce json
// @Param id path string true "Supplier ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid supplier ID: must be a valid UUID")
		return
	}

	if err := h.supplierService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
