// Package media stores user uploaded files in an S3 compatible bucket
// (Minio in development). Clients upload and download directly through
// presigned URLs; the server never proxies file bodies.
package media

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignTTL is how long presigned URLs stay valid.
const PresignTTL = 15 * time.Minute

// Config points at the bucket. Endpoint is the Minio/S3 base URL.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// AvatarStore presigns avatar uploads and downloads.
type AvatarStore struct {
	presign *s3.PresignClient
	client  *s3.Client
	bucket  string
	now     func() time.Time
}

// NewAvatarStore builds the S3 client with static credentials and path-style
// addressing, which Minio requires.
func NewAvatarStore(ctx context.Context, cfg Config) (*AvatarStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("media: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &AvatarStore{
		presign: s3.NewPresignClient(client),
		client:  client,
		bucket:  cfg.Bucket,
		now:     time.Now,
	}, nil
}

// PresignUpload returns a URL the client can PUT the image to.
func (s *AvatarStore) PresignUpload(ctx context.Context, key string) (string, time.Time, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(PresignTTL))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("media: presign put: %w", err)
	}
	return req.URL, s.now().UTC().Add(PresignTTL), nil
}

// PresignDownload returns a URL the object can be fetched from.
func (s *AvatarStore) PresignDownload(ctx context.Context, key string) (string, time.Time, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(PresignTTL))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("media: presign get: %w", err)
	}
	return req.URL, s.now().UTC().Add(PresignTTL), nil
}

// Ping checks the bucket is reachable. Used by readiness checks.
func (s *AvatarStore) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("media: head bucket %s: %w", s.bucket, err)
	}
	return nil
}
