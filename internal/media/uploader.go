package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"go-blog-client/internal/model"
	"go-blog-client/pkg/apierror"
)

// Uploader pushes post images to the media host (a cloudinary-style
// unsigned upload endpoint) and returns the public URL to embed in the post.
type Uploader struct {
	uploadURL string
	maxSize   int64
	hc        *http.Client
}

func NewUploader(uploadURL string, maxSize int64) *Uploader {
	return &Uploader{
		uploadURL: uploadURL,
		maxSize:   maxSize,
		hc:        &http.Client{},
	}
}

// Upload validates that path holds a real image under the size cap, posts
// it as multipart form data, and returns the hosted URL.
func (u *Uploader) Upload(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}
	if u.maxSize > 0 && info.Size() > u.maxSize {
		return "", fmt.Errorf("%w: %d bytes", model.ErrImageTooLarge, info.Size())
	}

	if _, _, err := image.DecodeConfig(file); err != nil {
		return "", fmt.Errorf("%w: %s", model.ErrNotAnImage, filepath.Base(path))
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apierror.FromResponse(resp.StatusCode, respBody)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}

	return result.SecureURL, nil
}
