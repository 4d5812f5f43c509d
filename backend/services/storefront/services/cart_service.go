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

// CartService manages the per-session cart.
type CartService interface {
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	AddProduct(ctx context.Context, cartID string, productID uint) (*models.Cart, error)
	RemoveProduct(ctx context.Context, cartID string, productID uint) (*models.Cart, error)
	ClearCart(ctx context.Context, cartID string) error
	Checkout(ctx context.Context, cartID, paymentMethod string) (*models.CheckoutResult, error)
}

type cartServiceImpl struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	checkout CheckoutService
	metrics  MetricsRecorder
	logger   *zap.Logger
}

func NewCartService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	checkout CheckoutService,
	metrics MetricsRecorder,
	logger *zap.Logger,
) CartService {
	return &cartServiceImpl{
		carts:    carts,
		products: products,
		checkout: checkout,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetCart returns the stored cart or an empty one.
func (s *cartServiceImpl) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	cart, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("cart_id", cartID), zap.Error(err))
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	if cart == nil {
		cart = models.NewCart(cartID)
	}
	return cart, nil
}

// AddProduct appends a snapshot of the product's current name and price.
func (s *cartServiceImpl) AddProduct(ctx context.Context, cartID string, productID uint) (*models.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		s.logger.Error("Failed to load product for cart", zap.Uint("product_id", productID), zap.Error(err))
		return nil, apperrors.Internal("Failed to add product", err)
	}

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Add(models.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Category:  product.Category,
	})
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveProduct drops the first line for productID. Removing an absent
// product is a no-op.
func (s *cartServiceImpl) RemoveProduct(ctx context.Context, cartID string, productID uint) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !cart.Remove(productID) {
		return cart, nil
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, cartID string) error {
	if err := s.carts.DeleteCart(ctx, cartID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("cart_id", cartID), zap.Error(err))
		return apperrors.Internal("Failed to clear cart", err)
	}
	return nil
}

// Checkout places an order for the cart's lines at the cart's derived total.
// The cart is emptied only when the order was created.
func (s *cartServiceImpl) Checkout(ctx context.Context, cartID, paymentMethod string) (*models.CheckoutResult, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.BadRequest("Cart is empty")
	}

	result := s.checkout.PlaceOrder(ctx, &models.CheckoutRequest{
		Total:         cart.Total(),
		Items:         cart.CheckoutLines(),
		PaymentMethod: paymentMethod,
	})
	if !result.Success {
		return result, nil
	}

	recordCount(ctx, s.metrics, aws_pkg.MetricCartCheckouts, nil)
	if err := s.carts.DeleteCart(ctx, cartID); err != nil {
		// the order exists; a stale cart is only cosmetic
		s.logger.Warn("Failed to clear cart after checkout", zap.String("cart_id", cartID), zap.Error(err))
	}
	return result, nil
}

func (s *cartServiceImpl) save(ctx context.Context, cart *models.Cart) error {
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("cart_id", cart.ID), zap.Error(err))
		return apperrors.Internal("Failed to save cart", err)
	}
	return nil
}
