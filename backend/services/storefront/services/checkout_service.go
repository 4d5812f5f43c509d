package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	aws_pkg "github.com/yashrajoria/storefront/backend/pkg/aws"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
	"github.com/yashrajoria/storefront/backend/services/storefront/repository"
)

const (
	ErrMsgCreateOrder       = "Failed to create order"
	ErrMsgCheckoutCancelled = "Checkout cancelled"
)

// CheckoutService turns a submitted cart into a persisted order.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, req *models.CheckoutRequest) *models.CheckoutResult
}

type checkoutServiceImpl struct {
	orders     repository.OrderRepository
	authorizer PaymentAuthorizer
	events     OrderEventPublisher
	metrics    MetricsRecorder
	delay      time.Duration
	logger     *zap.Logger
}

// NewCheckoutService creates a CheckoutService. delay simulates gateway
// latency before the payment decision; events and metrics may be nil.
func NewCheckoutService(
	orders repository.OrderRepository,
	authorizer PaymentAuthorizer,
	events OrderEventPublisher,
	metrics MetricsRecorder,
	delay time.Duration,
	logger *zap.Logger,
) CheckoutService {
	if authorizer == nil {
		authorizer = AlwaysApprove{}
	}
	return &checkoutServiceImpl{
		orders:     orders,
		authorizer: authorizer,
		events:     events,
		metrics:    metrics,
		delay:      delay,
		logger:     logger,
	}
}

// PlaceOrder never returns an error: every failure is reported in the result.
func (s *checkoutServiceImpl) PlaceOrder(ctx context.Context, req *models.CheckoutRequest) *models.CheckoutResult {
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		method = models.PaymentMethodCard
	}
	result := &models.CheckoutResult{Total: req.Total}

	if !s.wait(ctx) {
		s.logger.Warn("Checkout cancelled during payment wait", zap.Error(ctx.Err()))
		result.Error = ErrMsgCheckoutCancelled
		return result
	}

	decision := s.authorizer.Authorize(ctx, req.Total, method)
	if !decision.Approved {
		s.logger.Info("Payment declined",
			zap.String("payment_method", method),
			zap.String("total", req.Total.StringFixed(2)),
			zap.String("reason", decision.Reason),
		)
		recordCount(ctx, s.metrics, aws_pkg.MetricPaymentFailed, map[string]string{"PaymentMethod": method})
		result.Declined = true
		result.Error = decision.Reason
		return result
	}

	order := &models.Order{
		Total:         req.Total,
		PaymentMethod: method,
		Items:         make([]models.OrderItem, 0, len(req.Items)),
	}
	for _, line := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  1,
			Price:     line.Price,
		})
	}

	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		s.logger.Error("Failed to persist order", zap.Int("items", len(order.Items)), zap.Error(err))
		recordCount(ctx, s.metrics, aws_pkg.MetricOrdersFailed, map[string]string{"PaymentMethod": method})
		result.Error = ErrMsgCreateOrder
		return result
	}

	s.logger.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.String("payment_method", method),
		zap.Int("items", len(order.Items)),
	)
	recordCount(ctx, s.metrics, aws_pkg.MetricOrdersCreated, map[string]string{"PaymentMethod": method})
	publishBestEffort(ctx, s.events, s.logger, models.NewOrderEvent(models.EventOrderCreated, order))

	result.Success = true
	result.OrderID = order.ID
	return result
}

// wait sleeps for the configured delay and reports false if ctx ends first.
func (s *checkoutServiceImpl) wait(ctx context.Context) bool {
	if s.delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
