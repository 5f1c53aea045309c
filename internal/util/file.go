package util

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// sniffLen http.DetectContentType 最多看前 512 字节
const sniffLen = 512

// SniffContentType 按文件头判断内容类型并把读取位置复位到开头，
// 不在 allowed（前缀或完整类型）内时返回 ErrUnsupportedFileType
func SniffContentType(r io.ReadSeeker, allowed []string) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", errors.Wrap(err, "read upload header")
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", errors.Wrap(err, "rewind upload")
	}

	contentType := http.DetectContentType(head[:n])
	for _, a := range allowed {
		if strings.HasPrefix(contentType, a) {
			return contentType, nil
		}
	}
	return contentType, ErrUnsupportedFileType
}

// HasAllowedExtension 扩展名白名单（不区分大小写）
func HasAllowedExtension(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
