package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Storage stores property media in an S3-compatible bucket and addresses
// objects by their public URL.
type Storage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewStorage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, logger *zap.Logger) (*Storage, error) {
	logger = logger.Named("S3Storage")
	logger.Info("Initializing object storage", zap.String("endpoint", endpoint), zap.String("bucket", bucketName))

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for endpoint %s: %w", endpoint, err)
	}

	ctx := context.Background()
	if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		exists, errBucketExists := client.BucketExists(ctx, bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("make/verify bucket %s: %w", bucketName, err)
		}
	}

	return &Storage{
		client: client,
		bucket: bucketName,
		logger: logger,
	}, nil
}

// Upload stores the data under a unique key in the given folder and returns
// the public URL.
func (s *Storage) Upload(ctx context.Context, folder, originalFileName, contentType string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("Media uploaded", zap.String("url", fileURL), zap.Int("size_bytes", len(data)))
	return fileURL, nil
}

// Delete removes the object a public URL points to. The key is everything
// after the bucket segment.
func (s *Storage) Delete(ctx context.Context, publicURL string) error {
	if publicURL == "" {
		return nil
	}
	marker := "/" + s.bucket + "/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return fmt.Errorf("url %q does not reference bucket %s", publicURL, s.bucket)
	}
	objectKey := publicURL[idx+len(marker):]

	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("RemoveObject failed", zap.String("key", objectKey), zap.Error(err))
		return fmt.Errorf("delete object %s from bucket %s: %w", objectKey, s.bucket, err)
	}
	return nil
}
