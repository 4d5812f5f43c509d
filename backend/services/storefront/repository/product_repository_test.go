package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yashrajoria/storefront/backend/services/storefront/models"
	"github.com/yashrajoria/storefront/backend/services/storefront/repository"
)

func TestCreateProduct_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	p := &models.Product{
		Name:        "Silver ring",
		Price:       decimal.RequireFromString("12.00"),
		Category:    "jewelry",
		ImageURL:    models.DefaultProductImage,
		Description: models.DefaultProductDescription,
	}
	err := repo.Create(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, uint(3), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDs_SkipsMissing(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id IN`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "category", "image_url", "description", "created_at"}).
			AddRow(1, "Ring", "10.00", "jewelry", "", "", time.Now()))

	found, err := repo.FindByIDs(context.Background(), []uint{1, 3})

	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "Ring", found[1].Name)
	_, ok := found[3]
	assert.False(t, ok)
}

func TestFindByIDs_EmptyDoesNotQuery(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	found, err := repo.FindByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts_NewestFirst(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY id DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "B").AddRow(1, "A"))

	products, err := repo.List(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, uint(2), products[0].ID)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteProduct_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
