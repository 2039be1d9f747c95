package media

import (
	"bytes"
	"context"
	"image/color"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventoria/internal/domain"
)

type memoryStore struct {
	key         string
	contentType string
	data        []byte
}

func (s *memoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.key, s.contentType, s.data = key, contentType, data
	return "https://cdn.example.ro/" + key, nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	return nil
}

func noisyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	return noisyImage(t, w, h, imaging.PNG)
}

func noisyImage(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := imaging.New(w, h, color.NRGBA{A: 255})
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(rng.Intn(256))
		img.Pix[i+1] = uint8(rng.Intn(256))
		img.Pix[i+2] = uint8(rng.Intn(256))
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}

func fieldMessage(t *testing.T, err error) string {
	t.Helper()
	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.True(t, fe.Has("file"))
	return fe.Message("file")
}

func TestUploadImage_ResizesAndStores(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store)
	data := noisyPNG(t, 1800, 200)

	url, err := svc.UploadImage(context.Background(), uuid.New(), "image/png", int64(len(data)), bytes.NewReader(data))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(store.key, "events/"))
	assert.True(t, strings.HasSuffix(store.key, ".png"))
	assert.Equal(t, "image/png", store.contentType)
	assert.Equal(t, "https://cdn.example.ro/"+store.key, url)

	stored, err := imaging.Decode(bytes.NewReader(store.data))
	require.NoError(t, err)
	assert.Equal(t, MaxDimension, stored.Bounds().Dx())
}

func TestUploadImage_Validation(t *testing.T) {
	svc := NewService(&memoryStore{})
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.UploadImage(ctx, userID, "image/png", 0, nil)
	required := fieldMessage(t, err)

	_, err = svc.UploadImage(ctx, userID, "image/gif", 5000, strings.NewReader("x"))
	wrongType := fieldMessage(t, err)

	_, err = svc.UploadImage(ctx, userID, "image/jpeg", MaxImageSize+1, strings.NewReader("x"))
	tooLarge := fieldMessage(t, err)

	_, err = svc.UploadImage(ctx, userID, "image/jpeg", 100, strings.NewReader("x"))
	tooSmall := fieldMessage(t, err)

	junk := bytes.Repeat([]byte("not an image"), 200)
	_, err = svc.UploadImage(ctx, userID, "image/jpeg", int64(len(junk)), bytes.NewReader(junk))
	corrupt := fieldMessage(t, err)

	messages := map[string]bool{required: true, wrongType: true, tooLarge: true, tooSmall: true, corrupt: true}
	assert.Len(t, messages, 5, "each rule has its own message")
}

func TestUploadImage_NoStore(t *testing.T) {
	svc := NewService(nil)
	data := noisyPNG(t, 64, 64)

	_, err := svc.UploadImage(context.Background(), uuid.New(), "image/png", int64(len(data)), bytes.NewReader(data))

	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestUploadImage_DeclaredTypeMustMatchPayload(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store)
	ctx := context.Background()
	gif := noisyImage(t, 64, 64, imaging.GIF)
	require.Greater(t, len(gif), MinImageSize)

	_, err := svc.UploadImage(ctx, uuid.New(), "image/png", int64(len(gif)), bytes.NewReader(gif))
	assert.Equal(t, "Doar fișierele JPG și PNG sunt acceptate", fieldMessage(t, err))

	png := noisyPNG(t, 64, 64)
	_, err = svc.UploadImage(ctx, uuid.New(), "image/jpeg", int64(len(png)), bytes.NewReader(png))
	fieldMessage(t, err)

	assert.Empty(t, store.key, "nothing is stored")
}
