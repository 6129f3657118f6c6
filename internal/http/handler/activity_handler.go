package handler

import (
	"net/http"
	"strconv"

	"github.com/brushline/contractor-api/internal/service"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	activityService *service.ActivityService
	logger          *zap.Logger
}

func NewActivityHandler(activityService *service.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// List godoc
// @Summary List activities
// @Description Get paginated activity log, newest first
// @Tags Activities
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Success 200 {object} handler.listResponse{data=[]domain.ActivityDTO}
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /activities [get]
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	activities, total, err := h.activityService.List(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list activities", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: activities, Total: total, Page: page, PageSize: pageSize})
}

// ListByProject godoc
// @Summary List project activities
// @Description Get the most recent activities for a project
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param limit query int false "Maximum entries" default(20)
// @Success 200 {array} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /projects/{id}/activities [get]
func (h *ActivityHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	activities, err := h.activityService.ListByProject(r.Context(), id, limit)
	if err != nil {
		h.logger.Error("failed to list project activities", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, activities)
}
