package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yashrajoria/storefront/backend/services/storefront/models"
)

// ProductRepository defines data access for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error)
	List(ctx context.Context, newestFirst bool) ([]models.Product, error)
	Delete(ctx context.Context, id uint) error
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs returns the products that still exist, keyed by id. Missing ids
// are simply absent from the map.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	found := make(map[uint]models.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		found[p.ID] = p
	}
	return found, nil
}

// List returns every product, ordered by id.
func (r *GormProductRepository) List(ctx context.Context, newestFirst bool) ([]models.Product, error) {
	order := "id ASC"
	if newestFirst {
		order = "id DESC"
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).Order(order).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Delete removes a product. Order items that reference it are left alone.
func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
