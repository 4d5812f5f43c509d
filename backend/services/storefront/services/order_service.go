package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	aws_pkg "github.com/yashrajoria/storefront/backend/pkg/aws"
	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
	"github.com/yashrajoria/storefront/backend/services/storefront/repository"
)

// OrderService holds the admin-side order operations.
type OrderService interface {
	CompleteOrder(ctx context.Context, orderID uint) error
}

type orderServiceImpl struct {
	orders  repository.OrderRepository
	events  OrderEventPublisher
	metrics MetricsRecorder
	logger  *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, events OrderEventPublisher, metrics MetricsRecorder, logger *zap.Logger) OrderService {
	return &orderServiceImpl{orders: orders, events: events, metrics: metrics, logger: logger}
}

// CompleteOrder marks an order as handed over by removing it and its items
// from the board.
func (s *orderServiceImpl) CompleteOrder(ctx context.Context, orderID uint) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Order not found")
		}
		s.logger.Error("Failed to load order", zap.Uint("order_id", orderID), zap.Error(err))
		return apperrors.Internal("Failed to complete order", err)
	}

	if err := s.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Order not found")
		}
		s.logger.Error("Failed to delete order", zap.Uint("order_id", orderID), zap.Error(err))
		return apperrors.Internal("Failed to complete order", err)
	}

	s.logger.Info("Order completed", zap.Uint("order_id", orderID))
	recordCount(ctx, s.metrics, aws_pkg.MetricOrdersCompleted, map[string]string{"PaymentMethod": order.PaymentMethod})
	publishBestEffort(ctx, s.events, s.logger, models.NewOrderEvent(models.EventOrderCompleted, order))
	return nil
}
