package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tutorlink/internal/domain"
	"tutorlink/internal/errors"
	"tutorlink/internal/order/validation"
)

type OrderRepository interface {
	List(ctx context.Context, page int, initData string) (*domain.OrderPagination, error)
	FindByID(ctx context.Context, id string, initData string) (*domain.OrderDetails, error)
	FindCurrentResponse(ctx context.Context, orderID string, initData string) (*domain.CurrentResponse, error)
	Update(ctx context.Context, id string, update domain.OrderUpdate, initData string) error
}

// OrderService serves the read side of the orders view.
type OrderService struct {
	repo   OrderRepository
	logger *zap.Logger
}

func NewOrderService(repo OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		logger: logger,
	}
}

func (s *OrderService) ListOrders(ctx context.Context, page int, initData string) (*domain.OrderPagination, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.List(ctx, page, initData)
}

// GetOrderDetails fetches an order and checks that at most one of its
// responses is final.
func (s *OrderService) GetOrderDetails(ctx context.Context, id string, initData string) (*domain.OrderDetails, error) {
	details, err := s.repo.FindByID(ctx, id, initData)
	if err != nil {
		return nil, err
	}

	if _, err := details.FinalResponse(); err != nil {
		s.logger.Error("order violates final response invariant", zap.String("orderId", id), zap.Error(err))
		return nil, errors.NewInternalError("inconsistent order received", err)
	}

	return details, nil
}

func (s *OrderService) GetCurrentResponse(ctx context.Context, orderID string, initData string) (*domain.CurrentResponse, error) {
	current, err := s.repo.FindCurrentResponse(ctx, orderID, initData)
	if err != nil {
		return nil, err
	}
	if current.OrderID != "" && current.OrderID != orderID {
		return nil, errors.NewInternalError("response belongs to another order", nil)
	}
	return current, nil
}

// UpdateOrder validates an edit of a posted order and sends it to the orders
// service. Nothing is sent when the edit is invalid.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, update domain.OrderUpdate, initData string) error {
	update.Title = strings.TrimSpace(update.Title)
	update.Description = strings.TrimSpace(update.Description)

	if err := validation.ValidateUpdate(update).Err(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, update, initData); err != nil {
		return err
	}

	s.logger.Info("order updated", zap.String("orderId", id))
	return nil
}
