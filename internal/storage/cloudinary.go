package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary, folder string) *CloudinaryStore {
	return &CloudinaryStore{cld: cld, folder: folder}
}

func (s *CloudinaryStore) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	overwrite := true
	unique := false
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         path.Join(s.folder, path.Dir(key)),
		PublicID:       publicID(key),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, key string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     path.Join(s.folder, path.Dir(key), publicID(key)),
		ResourceType: "image",
	})
	return err
}

// publicID strips directory and extension; Cloudinary adds the format itself.
func publicID(key string) string {
	base := path.Base(key)
	return strings.TrimSuffix(base, path.Ext(base))
}
