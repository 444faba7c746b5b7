package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/saaaathvik/consultansease/internal/utils"
)

// UploadService stores uploaded project documents on local disk and
// removes them when their project row is edited or deleted.
type UploadService interface {
	// Save writes the uploaded file under the upload directory using a
	// millisecond-timestamp name plus the original extension, and returns
	// the stored path.
	Save(fh *multipart.FileHeader) (string, error)
	// Remove deletes a stored file, ignoring absence. Best-effort: any
	// other failure is logged and swallowed.
	Remove(path string)
}

type localUploadService struct {
	dir string
}

func NewLocalUploadService(dir string) (UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &localUploadService{dir: dir}, nil
}

func (s *localUploadService) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + filepath.Ext(fh.Filename)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

func (s *localUploadService) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		utils.Logger.WithError(err).Warnf("Failed to delete file: %s", path)
	}
}
