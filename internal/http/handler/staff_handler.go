package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/service"
	"go.uber.org/zap"
)

type StaffHandler struct {
	staffService *service.StaffService
	logger       *zap.Logger
}

func NewStaffHandler(staffService *service.StaffService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
		logger:       logger,
	}
}

// List godoc
// @Summary List staff
// @Description Get paginated list of staff members with optional filters
// @Tags Staff
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param search query string false "Search by name, position or phone"
// @Param availability query string false "Filter by availability" Enums(available, assigned, on_leave)
// @Success 200 {object} handler.listResponse{data=[]domain.StaffDTO}
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /staff [get]
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	search := r.URL.Query().Get("search")
	availability := domain.StaffAvailability(r.URL.Query().Get("availability"))

	staff, total, err := h.staffService.List(r.Context(), page, pageSize, search, availability)
	if err != nil {
		h.logger.Error("failed to list staff", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: staff, Total: total, Page: page, PageSize: pageSize})
}

// GetByID godoc
// @Summary Get staff member by ID
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID" format(uuid)
// @Success 200 {object} domain.StaffDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /staff/{id} [get]
func (h *StaffHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid staff ID: must be a valid UUID")
		return
	}

	member, err := h.staffService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, member)
}

// Create godoc
// @Summary Create staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body domain.CreateStaffRequest true "Staff data"
// @Success 201 {object} domain.StaffDTO
// @Failure 400 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /staff [post]
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	member, err := h.staffService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create staff member", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, member)
}

// Update godoc
// @Summary Update staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID" format(uuid)
// @Param request body domain.UpdateStaffRequest true "Staff data"
// @Success 200 {object} domain.StaffDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /staff/{id} [put]
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid staff ID: must be a valid UUID")
		return
	}

	var req domain.UpdateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	member, err := h.staffService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, member)
}

// Delete godoc
// @Summary Delete staff member
// @Tags Staff
// @Produce json
// @Param id path string true "Staff ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /staff/{id} [delete]
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid staff ID: must be a valid UUID")
		return
	}

	if err := h.staffService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
