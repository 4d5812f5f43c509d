package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	aws_pkg "github.com/yashrajoria/storefront/backend/pkg/aws"
	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
)

type fakeImageStore struct {
	key         string
	contentType string
	body        string
	err         error
}

func (f *fakeImageStore) Upload(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	b, _ := io.ReadAll(body)
	f.key, f.contentType, f.body = key, contentType, string(b)
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + key, nil
}

func TestCreateProduct_AppliesDefaults(t *testing.T) {
	repo := new(mockProductRepo)
	metrics := &recordingMetrics{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

	svc := NewProductService(repo, nil, "", metrics, zap.NewNop())
	p, err := svc.CreateProduct(context.Background(), ProductCreateRequest{
		Name: " Gold chain ", Price: dec("49.999"), Category: "jewelry",
	})

	require.NoError(t, err)
	assert.Equal(t, "Gold chain", p.Name)
	assert.Equal(t, models.DefaultProductImage, p.ImageURL)
	assert.Equal(t, models.DefaultProductDescription, p.Description)
	assert.True(t, p.Price.Equal(dec("50.00")))
	assert.Equal(t, []string{aws_pkg.MetricProductsCreated}, metrics.names)
}

func TestCreateProduct_UploadsImage(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	store := &fakeImageStore{}

	svc := NewProductService(repo, store, "products/", nil, zap.NewNop())
	p, err := svc.CreateProduct(context.Background(), ProductCreateRequest{
		Name: "Shirt", Price: dec("15"), Category: "clothing",
		ImageURL: "https://ignored.example.com/x.png",
		Image:    &ImageUpload{Filename: "shirt.PNG", ContentType: "image/png", Body: strings.NewReader("png-bytes")},
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(store.key, "products/"))
	assert.True(t, strings.HasSuffix(store.key, ".png"))
	assert.Equal(t, "png-bytes", store.body)
	assert.Equal(t, "https://cdn.example.com/"+store.key, p.ImageURL)
}

func TestCreateProduct_RejectsBadImageType(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewProductService(repo, &fakeImageStore{}, "", nil, zap.NewNop())

	_, err := svc.CreateProduct(context.Background(), ProductCreateRequest{
		Name: "Doc", Price: dec("1"), Category: "misc",
		Image: &ImageUpload{Filename: "evil.exe", ContentType: "application/octet-stream", Body: strings.NewReader("")},
	})

	assert.Equal(t, http.StatusBadRequest, apperrors.As(err).Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_UploadFailure(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewProductService(repo, &fakeImageStore{err: errors.New("s3 down")}, "", nil, zap.NewNop())

	_, err := svc.CreateProduct(context.Background(), ProductCreateRequest{
		Name: "Ring", Price: dec("1"), Category: "jewelry",
		Image: &ImageUpload{Filename: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("x")},
	})

	assert.Equal(t, http.StatusInternalServerError, apperrors.As(err).Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	svc := NewProductService(new(mockProductRepo), nil, "", nil, zap.NewNop())

	_, err := svc.CreateProduct(context.Background(), ProductCreateRequest{Name: "x", Price: dec("-1"), Category: "y"})

	assert.Equal(t, http.StatusBadRequest, apperrors.As(err).Code)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("Delete", mock.Anything, uint(3)).Return(gorm.ErrRecordNotFound)

	err := NewProductService(repo, nil, "", nil, zap.NewNop()).DeleteProduct(context.Background(), 3)

	assert.Equal(t, http.StatusNotFound, apperrors.As(err).Code)
}

func TestListProducts_EmptyIsNotNil(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("List", mock.Anything, false).Return(nil, nil)

	products, err := NewProductService(repo, nil, "", nil, zap.NewNop()).ListProducts(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestIsAllowedImage(t *testing.T) {
	assert.True(t, IsAllowedImage("a.webp", ""))
	assert.True(t, IsAllowedImage("blob", "image/gif"))
	assert.False(t, IsAllowedImage("a.svg", "image/svg+xml"))
}
