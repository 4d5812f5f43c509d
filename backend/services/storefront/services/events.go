package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	aws_pkg "github.com/yashrajoria/storefront/backend/pkg/aws"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
)

// OrderEventPublisher delivers order lifecycle events to a downstream sink.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, evt models.OrderEvent) error
}

// SNSOrderPublisher publishes order events as JSON to one SNS topic.
type SNSOrderPublisher struct {
	client   aws_pkg.SNSPublisher
	topicArn string
}

func NewSNSOrderPublisher(client aws_pkg.SNSPublisher, topicArn string) *SNSOrderPublisher {
	return &SNSOrderPublisher{client: client, topicArn: topicArn}
}

func (p *SNSOrderPublisher) PublishOrderEvent(ctx context.Context, evt models.OrderEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.topicArn, payload, map[string]string{"event": evt.Event})
}

// MultiPublisher fans an event out to every sink and joins their errors.
type MultiPublisher []OrderEventPublisher

func (m MultiPublisher) PublishOrderEvent(ctx context.Context, evt models.OrderEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.PublishOrderEvent(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// publishBestEffort sends evt and only logs failures. The request context may
// already be finishing, so the publish gets its own deadline.
func publishBestEffort(ctx context.Context, pub OrderEventPublisher, logger *zap.Logger, evt models.OrderEvent) {
	if pub == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := pub.PublishOrderEvent(pctx, evt); err != nil {
		logger.Warn("Failed to publish order event",
			zap.String("event", evt.Event),
			zap.Uint("order_id", evt.OrderID),
			zap.Error(err),
		)
		return
	}
	logger.Debug("Order event published", zap.String("event", evt.Event), zap.Uint("order_id", evt.OrderID))
}

// MetricsRecorder is the subset of the CloudWatch client the services use.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

func recordCount(ctx context.Context, m MetricsRecorder, name string, dims map[string]string) {
	if m == nil {
		return
	}
	_ = m.RecordCount(ctx, name, dims)
}
