package util

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffContentTypeRewinds(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 600)...)
	r := bytes.NewReader(png)

	ct, err := SniffContentType(r, AllowedHomeworkMimeTypes)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Len(t, rest, len(png))
}

func TestSniffContentTypeShortText(t *testing.T) {
	ct, err := SniffContentType(strings.NewReader("x = 2, x = 3"), AllowedHomeworkMimeTypes)
	require.NoError(t, err)
	assert.Contains(t, ct, "text/plain")
}

func TestSniffContentTypeRejects(t *testing.T) {
	zip := append([]byte("PK\x03\x04"), bytes.Repeat([]byte{1}, 64)...)
	_, err := SniffContentType(bytes.NewReader(zip), AllowedHomeworkMimeTypes)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestHasAllowedExtension(t *testing.T) {
	assert.True(t, HasAllowedExtension("answer.PDF", AllowedHomeworkExtensions))
	assert.False(t, HasAllowedExtension("answer.exe", AllowedHomeworkExtensions))
	assert.False(t, HasAllowedExtension("answer", AllowedHomeworkExtensions))
}
