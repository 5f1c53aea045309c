package controller

import (
	"net/http"

	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// respondError 把业务错误映射为 HTTP 状态码，其余记录日志后返回 500
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrHomeworkNotFound),
		errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrStudentNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials),
		errors.Is(err, util.ErrSessionRevoked),
		errors.Is(err, util.ErrProfileNotFound):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrFileTooLarge):
		util.Error(ctx, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, util.ErrEmptySubmission),
		errors.Is(err, util.ErrInvalidScore),
		errors.Is(err, util.ErrInvalidAttendance),
		errors.Is(err, util.ErrInvalidDate),
		errors.Is(err, util.ErrUnsupportedFileType),
		errors.Is(err, animation.ErrInvalidParam):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// pathID 读取并校验 UUID 路径参数，无效时已写入 400
func pathID(ctx *gin.Context, name string) (string, bool) {
	id := ctx.Param(name)
	if !model.IsUUID(id) {
		util.BadRequest(ctx, "invalid "+name)
		return "", false
	}
	return id, true
}

// currentUser 未登录时已写入 401
func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return user, true
}
