package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
	"github.com/yashrajoria/storefront/backend/services/storefront/repository"
)

// ReceiptService builds printable tickets from stored orders.
type ReceiptService interface {
	GetReceipt(ctx context.Context, orderID uint) (*models.Receipt, error)
	ListReceipts(ctx context.Context) ([]models.Receipt, error)
}

type receiptServiceImpl struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewReceiptService(orders repository.OrderRepository, products repository.ProductRepository, logger *zap.Logger) ReceiptService {
	return &receiptServiceImpl{orders: orders, products: products, logger: logger}
}

func (s *receiptServiceImpl) GetReceipt(ctx context.Context, orderID uint) (*models.Receipt, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		s.logger.Error("Failed to load order", zap.Uint("order_id", orderID), zap.Error(err))
		return nil, apperrors.Internal("Failed to load order", err)
	}

	products, err := s.products.FindByIDs(ctx, productIDs([]models.Order{*order}))
	if err != nil {
		s.logger.Error("Failed to load receipt products", zap.Uint("order_id", orderID), zap.Error(err))
		return nil, apperrors.Internal("Failed to load order", err)
	}

	receipt := BuildReceipt(order, products)
	return &receipt, nil
}

// ListReceipts returns every order as a receipt, newest first.
func (s *receiptServiceImpl) ListReceipts(ctx context.Context) ([]models.Receipt, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, apperrors.Internal("Failed to list orders", err)
	}

	products, err := s.products.FindByIDs(ctx, productIDs(orders))
	if err != nil {
		s.logger.Error("Failed to load receipt products", zap.Error(err))
		return nil, apperrors.Internal("Failed to list orders", err)
	}

	receipts := make([]models.Receipt, 0, len(orders))
	for i := range orders {
		receipts = append(receipts, BuildReceipt(&orders[i], products))
	}
	return receipts, nil
}

// BuildReceipt joins an order with the products that still exist. Lines whose
// product is gone get a placeholder description; every amount comes from the
// order itself, and the total is the stored one.
func BuildReceipt(order *models.Order, products map[uint]models.Product) models.Receipt {
	lines := make([]models.ReceiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		line := models.ReceiptLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Subtotal:  item.Subtotal(),
		}
		if p, ok := products[item.ProductID]; ok {
			line.Description = p.Name
			line.ImageURL = p.ImageURL
		} else {
			line.Description = models.DeletedProductLabel
			line.Missing = true
		}
		lines = append(lines, line)
	}

	return models.Receipt{
		OrderID:       order.ID,
		Folio:         Folio(order.ID),
		CreatedAt:     order.CreatedAt,
		PaymentMethod: order.PaymentMethod,
		PaymentLabel:  PaymentLabel(order.PaymentMethod),
		Lines:         lines,
		Total:         order.Total,
	}
}

// Folio is the zero-padded order number printed on tickets.
func Folio(orderID uint) string {
	return fmt.Sprintf("%06d", orderID)
}

// PaymentLabel is the human label for a payment method; unknown methods are
// shown as stored.
func PaymentLabel(method string) string {
	switch method {
	case models.PaymentMethodCard:
		return "Credit card"
	case models.PaymentMethodCash:
		return "Cash in store"
	default:
		return method
	}
}

func productIDs(orders []models.Order) []uint {
	seen := make(map[uint]struct{})
	ids := make([]uint, 0)
	for _, o := range orders {
		for _, item := range o.Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
