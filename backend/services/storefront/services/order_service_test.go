package services

import (
	"context"
	"net/http"
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

func TestCompleteOrder_DeletesAndPublishes(t *testing.T) {
	repo := new(mockOrderRepo)
	pub := &recordingPublisher{}
	metrics := &recordingMetrics{}

	repo.On("FindByID", mock.Anything, uint(42)).Return(storedOrder(), nil)
	repo.On("Delete", mock.Anything, uint(42)).Return(nil)

	err := NewOrderService(repo, pub, metrics, zap.NewNop()).CompleteOrder(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	assert.Equal(t, models.EventOrderCompleted, pub.events[0].Event)
	assert.Equal(t, uint(42), pub.events[0].OrderID)
	assert.Equal(t, []string{aws_pkg.MetricOrdersCompleted}, metrics.names)
	repo.AssertExpectations(t)
}

func TestCompleteOrder_NotFound(t *testing.T) {
	repo := new(mockOrderRepo)
	repo.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

	err := NewOrderService(repo, nil, nil, zap.NewNop()).CompleteOrder(context.Background(), 1)

	assert.Equal(t, http.StatusNotFound, apperrors.As(err).Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestMultiPublisher_JoinsErrors(t *testing.T) {
	ok := &recordingPublisher{}
	bad := &recordingPublisher{err: assert.AnError}

	err := MultiPublisher{ok, bad}.PublishOrderEvent(context.Background(), models.OrderEvent{Event: models.EventOrderCreated})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, ok.events, 1)
	assert.Len(t, bad.events, 1)
}

type captureSNS struct {
	arn   string
	msg   []byte
	attrs map[string]string
}

func (c *captureSNS) Publish(_ context.Context, topicArn string, message []byte, attrs map[string]string) error {
	c.arn = topicArn
	c.msg = message
	c.attrs = attrs
	return nil
}

func TestSNSOrderPublisher_SendsJSON(t *testing.T) {
	sns := &captureSNS{}
	pub := NewSNSOrderPublisher(sns, "arn:aws:sns:us-east-1:000000000000:orders")

	err := pub.PublishOrderEvent(context.Background(), models.NewOrderEvent(models.EventOrderCreated, storedOrder()))

	require.NoError(t, err)
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:orders", sns.arn)
	assert.Contains(t, string(sns.msg), `"event":"order.created"`)
	assert.Contains(t, string(sns.msg), `"order_id":42`)
	assert.Contains(t, string(sns.msg), `"item_count":2`)
	assert.Equal(t, map[string]string{"event": models.EventOrderCreated}, sns.attrs)
}
