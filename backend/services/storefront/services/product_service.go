package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	aws_pkg "github.com/yashrajoria/storefront/backend/pkg/aws"
	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
	"github.com/yashrajoria/storefront/backend/services/storefront/repository"
)

// ProductCreateRequest is the validated admin input for a new product.
type ProductCreateRequest struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
	Description string
	Image       *ImageUpload
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsNewestFirst(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, req ProductCreateRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type productServiceImpl struct {
	repo        repository.ProductRepository
	images      ImageStore
	imagePrefix string
	metrics     MetricsRecorder
	logger      *zap.Logger
}

// NewProductService creates a ProductService. images may be nil, in which
// case posted files are rejected and only image URLs are accepted.
func NewProductService(
	repo repository.ProductRepository,
	images ImageStore,
	imagePrefix string,
	metrics MetricsRecorder,
	logger *zap.Logger,
) ProductService {
	return &productServiceImpl{
		repo:        repo,
		images:      images,
		imagePrefix: imagePrefix,
		metrics:     metrics,
		logger:      logger,
	}
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.list(ctx, false)
}

func (s *productServiceImpl) ListProductsNewestFirst(ctx context.Context) ([]models.Product, error) {
	return s.list(ctx, true)
}

func (s *productServiceImpl) list(ctx context.Context, newestFirst bool) ([]models.Product, error) {
	products, err := s.repo.List(ctx, newestFirst)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, apperrors.Internal("Failed to list products", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		s.logger.Error("Failed to load product", zap.Uint("product_id", id), zap.Error(err))
		return nil, apperrors.Internal("Failed to load product", err)
	}
	return product, nil
}

// CreateProduct stores a product, uploading the posted image first when one
// was sent. Missing image and description fall back to fixed defaults.
func (s *productServiceImpl) CreateProduct(ctx context.Context, req ProductCreateRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.BadRequest("Price must not be negative")
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if req.Image != nil {
		if s.images == nil {
			return nil, apperrors.BadRequest("Image uploads are not enabled")
		}
		if !IsAllowedImage(req.Image.Filename, req.Image.ContentType) {
			return nil, apperrors.BadRequest("Invalid image type. Allowed: jpeg, png, webp, gif")
		}
		url, err := s.images.Upload(ctx, imageKey(s.imagePrefix, *req.Image), req.Image.Body, req.Image.ContentType)
		if err != nil {
			s.logger.Error("Failed to upload product image", zap.String("filename", req.Image.Filename), zap.Error(err))
			return nil, apperrors.Internal("Failed to upload image", err)
		}
		imageURL = url
	}
	if imageURL == "" {
		imageURL = models.DefaultProductImage
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = models.DefaultProductDescription
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price.Round(2),
		Category:    strings.TrimSpace(req.Category),
		ImageURL:    imageURL,
		Description: description,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.String("name", product.Name), zap.Error(err))
		return nil, apperrors.Internal("Failed to create product", err)
	}

	s.logger.Info("Product created", zap.Uint("product_id", product.ID), zap.String("category", product.Category))
	recordCount(ctx, s.metrics, aws_pkg.MetricProductsCreated, map[string]string{"Category": product.Category})
	return product, nil
}

// DeleteProduct removes the product. Existing orders keep their lines and
// render a placeholder for it.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Product not found")
		}
		s.logger.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return apperrors.Internal("Failed to delete product", err)
	}
	s.logger.Info("Product deleted", zap.Uint("product_id", id))
	return nil
}
