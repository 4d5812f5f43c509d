package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

const (
	DefaultLogGroup    = "/storefront/services"
	logRetentionInDays = 30
)

type cloudwatchLogsAPI interface {
	CreateLogGroup(ctx context.Context, in *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	PutRetentionPolicy(ctx context.Context, in *cloudwatchlogs.PutRetentionPolicyInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error)
	CreateLogStream(ctx context.Context, in *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, in *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// CloudWatchLogsClient is an io.Writer that ships each log entry to its own
// stream in a CloudWatch Logs group. It is meant to be tee'd into zap.
type CloudWatchLogsClient struct {
	api    cloudwatchLogsAPI
	group  string
	stream string
	errOut io.Writer

	mu sync.Mutex
}

// NewCloudWatchLogsClient prepares group (created with a 30 day retention
// when missing) and opens a stream named after the service and start time.
func NewCloudWatchLogsClient(ctx context.Context, cfg sdkaws.Config, group, serviceName string) (*CloudWatchLogsClient, error) {
	return openLogStream(ctx, cloudwatchlogs.NewFromConfig(cfg), group, serviceName, time.Now())
}

func openLogStream(ctx context.Context, api cloudwatchLogsAPI, group, serviceName string, started time.Time) (*CloudWatchLogsClient, error) {
	if group == "" {
		group = DefaultLogGroup
	}
	c := &CloudWatchLogsClient{
		api:    api,
		group:  group,
		stream: fmt.Sprintf("%s/%s", serviceName, started.UTC().Format("2006-01-02T15-04-05Z")),
		errOut: os.Stderr,
	}

	_, err := api.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{LogGroupName: sdkaws.String(group)})
	var exists *types.ResourceAlreadyExistsException
	switch {
	case err == nil:
		if _, err := api.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
			LogGroupName:    sdkaws.String(group),
			RetentionInDays: sdkaws.Int32(logRetentionInDays),
		}); err != nil {
			return nil, fmt.Errorf("set retention on %s: %w", group, err)
		}
	case !errors.As(err, &exists):
		return nil, fmt.Errorf("create log group %s: %w", group, err)
	}

	if _, err := api.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  sdkaws.String(group),
		LogStreamName: sdkaws.String(c.stream),
	}); err != nil {
		return nil, fmt.Errorf("create log stream %s: %w", c.stream, err)
	}
	return c, nil
}

// Write never fails. A log line that cannot be shipped is reported on stderr
// so the local sink keeps working.
func (c *CloudWatchLogsClient) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	if msg == "" {
		return len(p), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.api.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  sdkaws.String(c.group),
		LogStreamName: sdkaws.String(c.stream),
		LogEvents: []types.InputLogEvent{{
			Message:   sdkaws.String(msg),
			Timestamp: sdkaws.Int64(time.Now().UnixMilli()),
		}},
	})
	if err != nil {
		fmt.Fprintf(c.errOut, "cloudwatch logs: %v\n", err)
	}
	return len(p), nil
}
