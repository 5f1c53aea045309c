package util

import (
	"strings"
	"time"
)

// ParseDate 校验 YYYY-MM-DD，空字符串返回今天
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Today(), nil
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateFormat), nil
}

func Today() string {
	return time.Now().Format(DateFormat)
}

// Excerpt 按字符截断，超出时追加省略号
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
