package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"eventoria/internal/domain"
	"eventoria/internal/pkg/i18n"
	"eventoria/internal/storage"
)

const (
	MinImageSize = 1 << 10
	MaxImageSize = 10 << 20
	MaxDimension = 1600
)

var ErrStorageUnavailable = fmt.Errorf("image storage is not configured: %w", domain.ErrUnavailable)

type Service interface {
	// UploadImage stores a listing image and returns its public URL.
	UploadImage(ctx context.Context, userID uuid.UUID, contentType string, size int64, r io.Reader) (string, error)
}

type service struct {
	store storage.BlobStore
}

func NewService(store storage.BlobStore) Service {
	return &service{store: store}
}

type imageKind struct {
	format      imaging.Format
	ext         string
	contentType string
}

func kindOf(contentType string) (imageKind, bool) {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		return imageKind{imaging.JPEG, "jpg", "image/jpeg"}, true
	case "image/png":
		return imageKind{imaging.PNG, "png", "image/png"}, true
	default:
		return imageKind{}, false
	}
}

// sniff reports the content type of the payload itself, ignoring what the
// client declared.
func sniff(raw []byte) string {
	if len(raw) > 512 {
		raw = raw[:512]
	}
	return http.DetectContentType(raw)
}

func fileError(rule string) error {
	var errs domain.FieldErrors
	errs.Add("file", i18n.T("validation.upload.file."+rule))
	return errs
}

func (s *service) UploadImage(ctx context.Context, userID uuid.UUID, contentType string, size int64, r io.Reader) (string, error) {
	kind, ok := kindOf(contentType)
	switch {
	case r == nil || size == 0:
		return "", fileError("required")
	case !ok:
		return "", fileError("type")
	case size > MaxImageSize:
		return "", fileError("too_large")
	case size < MinImageSize:
		return "", fileError("too_small")
	}

	raw, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(raw) > MaxImageSize {
		return "", fileError("too_large")
	}
	if sniffed := sniff(raw); strings.HasPrefix(sniffed, "image/") && sniffed != kind.contentType {
		return "", fileError("type")
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fileError("corrupt")
	}

	if s.store == nil {
		return "", ErrStorageUnavailable
	}

	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, kind.format, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	key := fmt.Sprintf("events/%s.%s", uuid.New(), kind.ext)
	url, err := s.store.Put(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), kind.contentType)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	log.Info().Str("user_id", userID.String()).Str("key", key).Int("bytes", buf.Len()).Msg("image uploaded")
	return url, nil
}
