package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFileHeader(t *testing.T, field, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File[field][0]
}

func TestSaveKeepsExtension(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewLocalUploadService(dir)
	require.NoError(t, err)

	fh := multipartFileHeader(t, "billProof", "invoice.pdf", "pdf-bytes")
	path, err := svc.Save(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, dir))
	assert.Equal(t, ".pdf", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
}

func TestRemoveIsBestEffort(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewLocalUploadService(dir)
	require.NoError(t, err)

	fh := multipartFileHeader(t, "agreementDoc", "agreement.docx", "doc-bytes")
	path, err := svc.Save(fh)
	require.NoError(t, err)

	svc.Remove(path)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Absent files and empty paths are silently ignored.
	svc.Remove(path)
	svc.Remove("")
}

func TestNewLocalUploadServiceCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalUploadService(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
