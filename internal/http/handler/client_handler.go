package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/service"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// List godoc
// @Summary List clients
// @Description Get paginated list of clients with optional filters
// @Tags Clients
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param search query string false "Search by name, email or phone"
// @Param classification query string false "Filter by classification" Enums(residential, commercial, industrial)
// @Param type query string false "Filter by type" Enums(client, prospect)
// @Success 200 {object} handler.listResponse{data=[]domain.ClientDTO}
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	search := r.URL.Query().Get("search")
	classification := domain.ClientClassification(r.URL.Query().Get("classification"))
	clientType := domain.ClientType(r.URL.Query().Get("type"))

	clients, total, err := h.clientService.List(r.Context(), page, pageSize, search, classification, clientType)
	if err != nil {
		h.logger.Error("failed to list clients", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: clients, Total: total, Page: page, PageSize: pageSize})
}

// GetByID godoc
// @Summary Get client by ID
// @Description Get a client together with its projects
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Success 200 {object} domain.ClientWithProjectsDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID: must be a valid UUID")
		return
	}

	client, err := h.clientService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Create godoc
// @Summary Create client
// @Description Create a new client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.CreateClientRequest true "Client data"
// @Success 201 {object} domain.ClientDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := h.clientService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create client", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, client)
}

// Update godoc
// @Summary Update client
// @Description Update an existing client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Param request body domain.UpdateClientRequest true "Client data"
// @Success 200 {object} domain.ClientDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID: must be a valid UUID")
		return
	}

	var req domain.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := h.clientService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Delete godoc
// @Summary Delete client
// @Description Delete a client
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID: must be a valid UUID")
		return
	}

	if err := h.clientService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
