package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ovchar/wa_storefront/internal/config"
)

// S3Store uploads images to any S3-compatible bucket (AWS, MinIO, R2).
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	if cfg.S3_BUCKET == "" {
		return nil, nil
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.S3_REGION),
	}
	if cfg.S3_KEY != "" && cfg.S3_SECRET != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3_KEY, cfg.S3_SECRET, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if cfg.S3_ENDPOINT != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3_ENDPOINT)
			o.UsePathStyle = true
		})
	}

	baseURL := strings.TrimRight(cfg.S3_URL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3_BUCKET, cfg.S3_REGION)
	}

	return &S3Store{
		client:  s3.NewFromConfig(awsCfg, clientOpts...),
		bucket:  cfg.S3_BUCKET,
		baseURL: baseURL,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage/s3: put %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
