package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yashrajoria/storefront/backend/services/storefront/models"
)

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) CreateWithItems(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) FindAll(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	args := m.Called(ctx, ids)
	if p := args.Get(0); p != nil {
		return p.(map[uint]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, newestFirst bool) ([]models.Product, error) {
	args := m.Called(ctx, newestFirst)
	if p := args.Get(0); p != nil {
		return p.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// recordingPublisher keeps every event it receives.
type recordingPublisher struct {
	events []models.OrderEvent
	err    error
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, evt models.OrderEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

type recordingMetrics struct {
	names []string
}

func (m *recordingMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.names = append(m.names, name)
	return nil
}
