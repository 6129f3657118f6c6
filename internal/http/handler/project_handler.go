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

type ProjectHandler struct {
	projectService *service.ProjectService
	storage        storage.Storage
	maxUploadMB    int64
	logger         *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, store storage.Storage, maxUploadMB int64, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		storage:        store,
		maxUploadMB:    maxUploadMB,
		logger:         logger,
	}
}

// List godoc
// @Summary List projects
// @Description Get paginated list of projects with optional filters
// @Tags Projects
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param search query string false "Search by name or address"
// @Param status query string false "Filter by status" Enums(pending, quoted, approved, scheduled, in_progress, on_hold, completed, cancelled)
// @Param clientId query string false "Filter by client" format(uuid)
// @Success 200 {object} handler.listResponse{data=[]domain.ProjectDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	search := r.URL.Query().Get("search")
	status := domain.ProjectStatus(r.URL.Query().Get("status"))

	clientID, err := optionalUUIDQuery(r, "clientId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid clientId: must be a valid UUID")
		return
	}

	projects, total, err := h.projectService.List(r.Context(), page, pageSize, search, status, clientID)
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: projects, Total: total, Page: page, PageSize: pageSize})
}

// GetByID godoc
// @Summary Get project by ID
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// Create godoc
// @Summary Create project
// @Description Create a new project for a client
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body domain.CreateProjectRequest true "Project data"
// @Success 201 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, project)
}

// Update godoc
// @Summary Update project
// @Description Update an existing project. Setting status to completed stamps the completion date.
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.UpdateProjectRequest true "Project data"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	var req domain.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// Delete godoc
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// UploadImages godoc
// @Summary Upload project images
// @Description Upload one or more images and attach them to a project
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param files formData file true "Image files"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /projects/{id}/images [post]
func (h *ProjectHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	paths, ok := h.uploadFormFiles(w, r)
	if !ok {
		return
	}

	project, err := h.projectService.AttachImages(r.Context(), id, paths)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// UploadDocuments godoc
// @Summary Upload project documents
// @Description Upload one or more documents and attach them to a project
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param files formData file true "Document files"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /projects/{id}/documents [post]
func (h *ProjectHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	paths, ok := h.uploadFormFiles(w, r)
	if !ok {
		return
	}

	project, err := h.projectService.AttachDocuments(r.Context(), id, paths)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// uploadFormFiles stores every file in the "files" multipart field and returns the storage paths.
// The whole request body is capped at maxUploadMB.
func (h *ProjectHandler) uploadFormFiles(w http.ResponseWriter, r *http.Request) ([]string, bool) {
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
