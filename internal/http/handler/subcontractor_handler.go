package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/service"
	"go.uber.org/zap"
)

type SubcontractorHandler struct {
	subcontractorService *service.SubcontractorService
	logger               *zap.Logger
}

func NewSubcontractorHandler(subcontractorService *service.SubcontractorService, logger *zap.Logger) *SubcontractorHandler {
	return &SubcontractorHandler{
		subcontractorService: subcontractorService,
		logger:               logger,
	}
}

// List godoc
// @Summary List subcontractors
// @Description Get paginated list of subcontractors with optional filters
// @Tags Subcontractors
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param search query string false "Search by name, company or specialty"
// @Param status query string false "Filter by status" Enums(active, inactive, blacklisted)
// @Success 200 {object} handler.listResponse{data=[]domain.SubcontractorDTO}
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /subcontractors [get]
func (h *SubcontractorHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	search := r.URL.Query().Get("search")
	status := domain.SubcontractorStatus(r.URL.Query().Get("status"))

	subs, total, err := h.subcontractorService.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		h.logger.Error("failed to list subcontractors", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: subs, Total: total, Page: page, PageSize: pageSize})
}

// GetByID godoc
// @Summary Get subcontractor by ID
// @Tags Subcontractors
// @Accept json
// @Produce json
// @Param id path string true "Subcontractor ID" format(uuid)
// @Success 200 {object} domain.SubcontractorDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /subcontractors/{id} [get]
func (h *SubcontractorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subcontractor ID: must be a valid UUID")
		return
	}

	sub, err := h.subcontractorService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sub)
}

// Create godoc
// @Summary Create subcontractor
// @Tags Subcontractors
// @Accept json
// @Produce json
// @Param request body domain.CreateSubcontractorRequest true "Subcontractor data"
// @Success 201 {object} domain.SubcontractorDTO
// @Failure 400 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /subcontractors [post]
func (h *SubcontractorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSubcontractorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	sub, err := h.subcontractorService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create subcontractor", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sub)
}

// Update godoc
// @Summary Update subcontractor
// @Tags Subcontractors
// @Accept json
// @Produce json
// @Param id path string true "Subcontractor ID" format(uuid)
// @Param request body domain.UpdateSubcontractorRequest true "Subcontractor data"
// @Success 200 {object} domain.SubcontractorDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /subcontractors/{id} [put]
func (h *SubcontractorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subcontractor ID: must be a valid UUID")
		return
	}

	var req domain.UpdateSubcontractorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	sub, err := h.subcontractorService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sub)
}

// Delete godoc
// @Summary Delete subcontractor
// @Tags Subcontractors
// @Produce json
// @Param id path string true "Subcontractor ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /subcontractors/{id} [delete]
func (h *SubcontractorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subcontractor ID: must be a valid UUID")
		return
	}

	if err := h.subcontractorService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
