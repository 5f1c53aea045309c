package util

import "errors"

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrSessionRevoked      = errors.New("session revoked")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrHomeworkNotFound    = errors.New("homework not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrEmptySubmission     = errors.New("submission text must not be empty")
	ErrInvalidScore        = errors.New("score must be between 0 and 100")
	ErrInvalidAttendance   = errors.New("status must be one of present, absent, excused")
	ErrInvalidDate         = errors.New("date must be formatted as YYYY-MM-DD")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)
