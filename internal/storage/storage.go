// Package storage puts uploaded images somewhere publicly reachable.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"eventoria/internal/config"
)

// BlobStore stores objects under a key and returns their public URL.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

const (
	DriverMinIO      = "minio"
	DriverCloudinary = "cloudinary"
)

// New builds the store selected by cfg.StorageDriver.
func New(cfg *config.Config) (BlobStore, error) {
	switch strings.ToLower(cfg.StorageDriver) {
	case "", DriverMinIO:
		client, err := config.NewMinIOClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		return NewMinIOStore(client, cfg), nil
	case DriverCloudinary:
		cld, err := config.NewCloudinary(cfg)
		if err != nil {
			return nil, fmt.Errorf("cloudinary: %w", err)
		}
		return NewCloudinaryStore(cld, cfg.CloudinaryFolder), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
