package media

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-client/internal/model"
)

func writeTestPNG(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "pic.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))

	return path
}

func TestUpload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "pic.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://media.example.com/pic.png",
		})
	}))
	defer srv.Close()

	uploader := NewUploader(srv.URL, 1<<20)

	url, err := uploader.Upload(context.Background(), writeTestPNG(t))
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/pic.png", url)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

	uploader := NewUploader("http://unused.invalid", 1<<20)

	_, err := uploader.Upload(context.Background(), path)
	require.ErrorIs(t, err, model.ErrNotAnImage)
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	path := writeTestPNG(t)

	uploader := NewUploader("http://unused.invalid", 1)

	_, err := uploader.Upload(context.Background(), path)
	require.ErrorIs(t, err, model.ErrImageTooLarge)
}

func TestUpload_MissingSecureURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	uploader := NewUploader(srv.URL, 1<<20)

	_, err := uploader.Upload(context.Background(), writeTestPNG(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secure_url")
}
