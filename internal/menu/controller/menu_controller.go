package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"grillhouse/internal/domain"
	"grillhouse/internal/dto"
	apperrors "grillhouse/internal/errors"
)

type MenuService interface {
	List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error)
	Get(ctx context.Context, id uint) (*domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, id uint, patch domain.MenuPatch) (*domain.MenuItem, error)
	Delete(ctx context.Context, id uint) error
}

type MenuController struct {
	service MenuService
	logger  *zap.Logger
}

func NewMenuController(service MenuService, logger *zap.Logger) *MenuController {
	return &MenuController{
		service: service,
		logger:  logger,
	}
}

func (c *MenuController) List(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	filter := domain.MenuFilter{Category: r.URL.Query().Get("category")}
	if raw := r.URL.Query().Get("available"); raw != "" {
		available := raw == "true"
		filter.Available = &available
	}

	items, err := c.service.List(r.Context(), filter)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	responses := make([]dto.MenuItemResponse, len(items))
	for i := range items {
		responses[i] = dto.MenuItemFromDomain(&items[i])
	}

	writeJSON(w, http.StatusOK, responses)
}

func (c *MenuController) Get(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	id, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	item, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, dto.MenuItemFromDomain(item))
}

func (c *MenuController) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	var req dto.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	item := domain.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Available:   true,
	}

	created, err := c.service.Create(r.Context(), item)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MenuItemFromDomain(created))
}

func (c *MenuController) Update(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	id, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	patch := domain.MenuPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
	}

	updated, err := c.service.Update(r.Context(), id, patch)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, dto.MenuItemFromDomain(updated))
}

func (c *MenuController) Delete(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	id, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Menu item deleted"})
}

func (c *MenuController) handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   ve.Message,
			"details": ve.Details,
		})
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
}

func itemIDFromPath(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "menu item id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
