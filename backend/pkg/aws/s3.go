package aws

import (
	"context"
	"fmt"
	"io"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader stores objects in a single bucket and hands back the URL clients
// should use to fetch them.
type S3Uploader struct {
	uploader  *manager.Uploader
	bucket    string
	publicURL string
}

// NewS3Uploader creates an uploader for bucket. publicURL is the base used for
// returned object URLs (a CDN or LocalStack address); when empty the virtual
// hosted S3 URL is used.
func NewS3Uploader(cfg sdkaws.Config, bucket, publicURL string) *S3Uploader {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, cfg.Region)
	}
	return &S3Uploader{
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Upload writes body under key and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(u.bucket),
		Key:         sdkaws.String(key),
		Body:        body,
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, u.bucket, err)
	}
	return u.ObjectURL(key), nil
}

// ObjectURL returns the public URL of key.
func (u *S3Uploader) ObjectURL(key string) string {
	return u.publicURL + "/" + strings.TrimPrefix(key, "/")
}
