package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutorlink/internal/domain"
	apperrors "tutorlink/internal/errors"
	"tutorlink/internal/platform/telegram"
)

type OrderService interface {
	ListOrders(ctx context.Context, page int, initData string) (*domain.OrderPagination, error)
	GetOrderDetails(ctx context.Context, id string, initData string) (*domain.OrderDetails, error)
	GetCurrentResponse(ctx context.Context, orderID string, initData string) (*domain.CurrentResponse, error)
	UpdateOrder(ctx context.Context, id string, update domain.OrderUpdate, initData string) error
}

// OrdersController serves the orders view the Mini App lands on after a
// successful submit.
type OrdersController struct {
	service   OrderService
	validator InitDataValidator
	logger    *zap.Logger
}

func NewOrdersController(service OrderService, validator InitDataValidator, logger *zap.Logger) *OrdersController {
	return &OrdersController{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeValidationError(w, r, traceID, "invalid page", apperrors.ValidationDetail{
				Field:   "page",
				Message: "page must be a positive integer",
			})
			return
		}
		page = n
	}

	initData, err := c.initData(r)
	if err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	orders, err := c.service.ListOrders(r.Context(), page, initData)
	if err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	writeJSON(w, r, http.StatusOK, orders)
}

func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	orderID := chi.URLParam(r, "orderId")
	logger := c.logger.With(zap.String("traceId", traceID), zap.String("orderId", orderID))

	initData, err := c.initData(r)
	if err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	details, err := c.service.GetOrderDetails(r.Context(), orderID, initData)
	if err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	writeJSON(w, r, http.StatusOK, details)
}

func (c *OrdersController) CurrentResponse(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	orderID := chi.URLParam(r, "orderId")
	logger := c.logger.With(zap.String("traceId", traceID), zap.String("orderId", orderID))

	initData, err := c.initData(r)
	if err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	resp, err := c.service.GetCurrentResponse(r.Context(), orderID, initData)
	if err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// Update edits the title, description, tags or prices of a posted order.
func (c *OrdersController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	orderID := chi.URLParam(r, "orderId")
	logger := c.logger.With(zap.String("traceId", traceID), zap.String("orderId", orderID))

	initData, err := c.initData(r)
	if err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	var req domain.OrderUpdate
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeValidationError(w, r, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.service.UpdateOrder(r.Context(), orderID, req, initData); err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// initData requires valid init data; the orders service rejects anonymous
// calls.
func (c *OrdersController) initData(r *http.Request) (string, error) {
	raw := telegram.InitDataFromHeader(r.Header.Get("Authorization"))
	if raw == "" {
		return "", errUnauthorizedMissing
	}
	if err := c.validator.Validate(raw); err != nil {
		return "", errUnauthorized
	}
	return raw, nil
}
