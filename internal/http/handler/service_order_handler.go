package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/service"
	"github.com/brushline/contractor-api/internal/storage"
	"go.uber.org/zap"
)

type ServiceOrderHandler struct {
	orderService *service.ServiceOrderService
	storage      storage.Storage
	maxUploadMB  int64
	logger       *zap.Logger
}

func NewServiceOrderHandler(orderService *service.ServiceOrderService, store storage.Storage, maxUploadMB int64, logger *zap.Logger) *ServiceOrderHandler {
	return &ServiceOrderHandler{
		orderService: orderService,
		storage:      store,
		maxUploadMB:  maxUploadMB,
		logger:       logger,
	}
}

// List godoc
// @Summary List service orders
// @Description Get paginated list of service orders with optional filters
// @Tags ServiceOrders
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param status query string false "Filter by status" Enums(pending, in_progress, completed)
// @Param projectId query string false "Filter by project" format(uuid)
// @Success 200 {object} handler.listResponse{data=[]domain.ServiceOrderDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /service-orders [get]
func (h *ServiceOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := domain.ServiceOrderStatus(r.URL.Query().Get("status"))

	projectID, err := optionalUUIDQuery(r, "projectId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid projectId: must be a valid UUID")
		return
	}

	orders, total, err := h.orderService.List(r.Context(), page, pageSize, status, projectID)
	if err != nil {
		h.logger.Error("failed to list service orders", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: orders, Total: total, Page: page, PageSize: pageSize})
}

// GetByID godoc
// @Summary Get service order by ID
// @Tags ServiceOrders
// @Accept json
// @Produce json
// @Param id path string true "Service order ID" format(uuid)
// @Success 200 {object} domain.ServiceOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /service-orders/{id} [get]
func (h *ServiceOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid service order ID: must be a valid UUID")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Create godoc
// @Summary Create service order
// @Description Create a work order for a project
// @Tags ServiceOrders
// @Accept json
// @Produce json
// @Param request body domain.CreateServiceOrderRequest true "Service order data"
// @Success 201 {object} domain.ServiceOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /service-orders [post]
func (h *ServiceOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateServiceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create service order", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// Update godoc
// @Summary Update service order
// @Description Update a service order. Completion must go through the complete endpoint with a client signature.
// @Tags ServiceOrders
// @Accept json
// @Produce json
// @Param id path string true "Service order ID" format(uuid)
// @Param request body domain.UpdateServiceOrderRequest true "Service order data"
// @Success 200 {object} domain.ServiceOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /service-orders/{id} [put]
func (h *ServiceOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid service order ID: must be a valid UUID")
		return
	}

	var req domain.UpdateServiceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Delete godoc
// @Summary Delete service order
// @Tags ServiceOrders
// @Produce json
// @Param id path string true "Service order ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /service-orders/{id} [delete]
func (h *ServiceOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid service order ID: must be a valid UUID")
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Complete godoc
// @Summary Complete service order
// @Description Close out a service order with the client signature. Stamps the signed and end dates.
// @Tags ServiceOrders
// @Accept json
// @Produce json
// @Param id path string true "Service order ID" format(uuid)
// @Param request body domain.CompleteServiceOrderRequest true "Sign-off data"
// @Success 200 {object} domain.ServiceOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /service-orders/{id}/complete [post]
func (h *ServiceOrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid service order ID: must be a valid UUID")
		return
	}

	var req domain.CompleteServiceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Complete(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// UploadBeforeImages godoc
// @Summary Upload before images
// @Description Upload images of the site before work starts
// @Tags ServiceOrders
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Service order ID" format(uuid)
// @Param files formData file true "Image files"
// @Success 200 {object} domain.ServiceOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /service-orders/{id}/before-images [post]
func (h *ServiceOrderHandler) UploadBeforeImages(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid service order ID: must be a valid UUID")
		return
	}

	paths, ok := h.uploadFormFiles(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.AttachBeforeImages(r.Context(), id, paths)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// UploadAfterImages godoc
// @Summary Upload after images
// @Description Upload images of the finished work
// @Tags ServiceOrders
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Service order ID" format(uuid)
// @Param files formData file true "Image files"
// @Success 200 {object} domain.ServiceOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /service-orders/{id}/after-images [post]
func (h *ServiceOrderHandler) UploadAfterImages(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid service order ID: must be a valid UUID")
		return
	}

	paths, ok := h.uploadFormFiles(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.AttachAfterImages(r.Context(), id, paths)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *ServiceOrderHandler) uploadFormFiles(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload too large: maximum size is %dMB", h.maxUploadMB))
		return nil, false
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid upload: files field is required")
		return nil, false
	}

	paths := make([]string, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid upload: could not read file")
			return nil, false
		}

		path, _, err := h.storage.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			h.logger.Error("failed to store uploaded file", zap.Error(err), zap.String("filename", header.Filename))
			respondWithError(w, http.StatusInternalServerError, "Failed to store uploaded file")
			return nil, false
		}
		paths = append(paths, path)
	}

	return paths, true
}
