package controller

import (
	"math_edu_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type LiveController struct {
	Hub *service.EventHub
}

func NewLiveController(hub *service.EventHub) *LiveController {
	return &LiveController{Hub: hub}
}

// @Summary 管理端实时动态
// @Description WebSocket，推送 LESSON_COMPLETED / SUBMISSION_CREATED / SUBMISSION_GRADED / ATTENDANCE_MARKED；浏览器可用 ?token= 传令牌
// @Tags 实时
// @Security BearerAuth
// @Param token query string false "JWT"
// @Router /api/admin/live [get]
func (c *LiveController) Connect(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	c.Hub.ServeWs(ctx.Writer, ctx.Request, user.UserID)
}
