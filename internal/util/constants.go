package util

// DateFormat 考勤日期、统计日期统一使用的格式
const DateFormat = "2006-01-02"

// storage.type 可选值
const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 作业附件允许的类型，内容类型按前缀匹配
const (
	MimeImage = "image/"
	MimePDF   = "application/pdf"
	MimeText  = "text/plain"
)

var (
	AllowedHomeworkMimeTypes  = []string{MimeImage, MimePDF, MimeText}
	AllowedHomeworkExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".pdf", ".txt"}
)
