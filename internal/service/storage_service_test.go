package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"math_edu_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageService_LocalFallback(t *testing.T) {
	root := t.TempDir()
	// unknown type falls back to the local directory
	svc := NewStorageService(&config.StorageConfig{Type: "ftp", LocalPath: root})
	_, ok := svc.Provider.(*LocalStorageProvider)
	require.True(t, ok)

	key := SubmissionKey("hw", "student", "Answer.PDF", "abc")
	assert.Equal(t, "homework/hw/student/abc.pdf", key)

	url, err := svc.Upload(context.Background(), key, strings.NewReader("%PDF-1.4"), 8, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/homework/hw/student/abc.pdf", url)

	data, err := os.ReadFile(filepath.Join(root, "homework", "hw", "student", "abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, svc.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(root, "homework", "hw", "student", "abc.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestStorageProviders_URLs(t *testing.T) {
	minioProvider := &MinioStorageProvider{Bucket: "homework", Endpoint: "localhost:9000"}
	assert.Equal(t, "http://localhost:9000/homework/a/b.png", minioProvider.GetURL("a/b.png"))

	ossProvider := &OSSStorageProvider{BucketName: "math", Endpoint: "https://oss-cn-hangzhou.aliyuncs.com"}
	assert.Equal(t, "https://math.oss-cn-hangzhou.aliyuncs.com/a/b.png", ossProvider.GetURL("a/b.png"))
}
