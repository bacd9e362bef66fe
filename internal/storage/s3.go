package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/teemow/mailvault/internal/logging"
)

// s3API is the subset of the S3 client used by S3Store, extracted so tests
// can inject a fake.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store stores blobs as objects in a single S3 bucket.
type S3Store struct {
	client s3API
	bucket string
	log    *slog.Logger
}

// NewS3Store creates an S3-backed blob store using the default AWS
// credential chain. An empty region leaves the SDK's own resolution in
// place.
func NewS3Store(ctx context.Context, bucket, region string, log *slog.Logger) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newS3Store(s3.NewFromConfig(cfg), bucket, log), nil
}

func newS3Store(client s3API, bucket string, log *slog.Logger) *S3Store {
	if log == nil {
		log = slog.Default()
	}
	return &S3Store{
		client: client,
		bucket: bucket,
		log:    logging.WithService(log, "s3"),
	}
}

// Bucket returns the destination bucket name.
func (s *S3Store) Bucket() string {
	return s.bucket
}

// Put stores body at key, overwriting any existing object.
func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object s3://%s/%s: %w", s.bucket, key, err)
	}

	s.log.DebugContext(ctx, "object stored", logging.Key(key),
		slog.String(logging.KeyBucket, s.bucket), slog.Int("bytes", len(body)))
	return nil
}
