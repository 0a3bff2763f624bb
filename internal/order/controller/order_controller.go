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
	"grillhouse/internal/order/lifecycle"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
	ChangeStatus(ctx context.Context, id uint, requested string) (*domain.Order, error)
	GetOrder(ctx context.Context, id uint) (*domain.Order, error)
	ListOrders(ctx context.Context, statusFilter string) ([]domain.Order, error)
}

type OrderController struct {
	service OrderService
	logger  *zap.Logger
}

func NewOrderController(service OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{
		service: service,
		logger:  logger,
	}
}

func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.Name,
			Quantity:     item.Quantity,
			Price:        item.Price,
		}
	}

	order := domain.Order{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
		TotalAmount:   req.TotalAmount,
		Items:         items,
	}

	created, err := c.service.PlaceOrder(r.Context(), order)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusCreated, dto.OrderFromDomain(created))
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	id, ok := orderIDFromPath(w, r)
	if !ok {
		return
	}

	order, err := c.service.GetOrder(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" && !lifecycle.Known(statusFilter) {
		writeError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	orders, err := c.service.ListOrders(r.Context(), statusFilter)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = dto.OrderFromDomain(&orders[i])
	}

	writeJSON(w, http.StatusOK, responses)
}

func (c *OrderController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	id, ok := orderIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if !lifecycle.Known(req.Status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated, err := c.service.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(updated))
}

func (c *OrderController) handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		writeValidationError(w, ve)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if _, ok := apperrors.IsTransitionError(err); ok {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
}

func orderIDFromPath(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "order id must be a positive integer")
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

func writeValidationError(w http.ResponseWriter, ve *apperrors.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":   ve.Message,
		"details": ve.Details,
	})
}
