// Package storage provides object storage implementations for image uploads.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	appshop "github.com/nicksmd/fu-marketplace-api/internal/application/shop"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
	infraconfig "github.com/nicksmd/fu-marketplace-api/internal/infrastructure/config"
)

var _ appshop.ImageStorage = (*S3ImageStorage)(nil)

// S3ImageStorage implements ImageStorage using AWS S3 SDK v2. It works with
// any S3-compatible backend (AWS S3, MinIO, etc.)
type S3ImageStorage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

// NewS3ImageStorage creates a new S3ImageStorage from configuration
func NewS3ImageStorage(cfg infraconfig.StorageConfig, logger *zap.Logger) (*S3ImageStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("storage credentials are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3ImageStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// UploadWithVersions stores the image body under each configured version key.
// Rendition sizing happens upstream; this layer stores one object per
// configured version and reports the stored keys and public URLs.
func (s *S3ImageStorage) UploadWithVersions(ctx context.Context, cfg appshop.UploadConfig, body io.Reader) ([]shop.ImageVersion, error) {
	if len(cfg.Versions) == 0 {
		return nil, errors.New("upload requires at least one version")
	}

	limit := cfg.MaxFileSize
	if limit <= 0 {
		limit = shop.MaxAvatarSize
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("upload exceeds the %d byte limit", limit)
	}

	versions := make([]shop.ImageVersion, len(cfg.Versions))
	for i, version := range cfg.Versions {
		key := version.FileName
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(cfg.ContentType),
			ACL:         types.ObjectCannedACLPublicRead,
		})
		if err != nil {
			return nil, fmt.Errorf("put object %s: %w", key, err)
		}
		versions[i] = shop.ImageVersion{
			URL: fmt.Sprintf("%s/%s", s.publicBaseURL, key),
			Key: key,
		}
	}

	s.logger.Debug("image uploaded",
		zap.String("key", cfg.Versions[0].FileName),
		zap.Int("versions", len(versions)),
	)
	return versions, nil
}

// DeleteImages removes previously stored renditions. Each deletion is
// attempted; failures are aggregated so one broken key cannot orphan the
// rest.
func (s *S3ImageStorage) DeleteImages(ctx context.Context, versions []shop.ImageVersion) error {
	var errs error
	for _, version := range versions {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(version.Key),
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete object %s: %w", version.Key, err))
		}
	}
	return errs
}
