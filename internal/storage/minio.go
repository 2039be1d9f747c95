package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/minio/minio-go/v7"

	"eventoria/internal/config"
)

type MinIOStore struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
	publicSSL      bool
}

func NewMinIOStore(client *minio.Client, cfg *config.Config) *MinIOStore {
	return &MinIOStore{
		client:         client,
		bucket:         cfg.MinIOBucket,
		publicEndpoint: cfg.MinIOPublicEndpoint,
		publicSSL:      cfg.MinIOPublicUseSSL,
	}
}

func (s *MinIOStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *MinIOStore) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinIOStore) PublicURL(key string) string {
	scheme := "http"
	if s.publicSSL {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: s.publicEndpoint, Path: "/" + s.bucket + "/" + key}
	return u.String()
}
