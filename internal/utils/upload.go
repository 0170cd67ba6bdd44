package utils

import (
	"errors"
	"fmt"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Upload errors distinguished at the route layer.
var (
	ErrFileMissing  = errors.New("FILE_MISSING")
	ErrFileTooLarge = errors.New("FILE_TOO_LARGE")
	ErrNotAnImage   = errors.New("NOT_AN_IMAGE")
)

// SaveUploadedImage stores an uploaded image form field under dir with a
// collision-free name of the form "<prefix>-<timestamp>-<random><ext>".
// Only image/* content types are accepted.
func SaveUploadedImage(c *gin.Context, field, dir, prefix string, maxSize int64) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", ErrFileMissing
	}
	if err := checkImage(header, maxSize); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s-%d-%d%s", prefix, time.Now().UnixMilli(), rand.Int63n(1e9), strings.ToLower(filepath.Ext(header.Filename)))
	if err := saveTo(c, header, dir, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveUploadedImageAs stores an uploaded image under a fixed base name,
// keeping the uploaded file's extension. Used for the UPI QR code, which
// is a singleton file replaced on every upload.
func SaveUploadedImageAs(c *gin.Context, field, dir, baseName string, maxSize int64) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", ErrFileMissing
	}
	if err := checkImage(header, maxSize); err != nil {
		return "", err
	}

	filename := baseName + strings.ToLower(filepath.Ext(header.Filename))
	if err := saveTo(c, header, dir, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// RemoveUpload deletes a stored upload, used as a compensating action when
// order creation fails after the screenshot was already written.
func RemoveUpload(dir, filename string) error {
	if filename == "" {
		return nil
	}
	return os.Remove(filepath.Join(dir, filename))
}

func checkImage(header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return ErrFileTooLarge
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		return ErrNotAnImage
	}
	return nil
}

func saveTo(c *gin.Context, header *multipart.FileHeader, dir, filename string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return c.SaveUploadedFile(header, filepath.Join(dir, filename))
}
