package controller

import (
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	ProgressService *service.ProgressService
}

func NewDashboardController(progressService *service.ProgressService) *DashboardController {
	return &DashboardController{ProgressService: progressService}
}

// @Summary 学生首页
// @Description 课程列表、已完成数量和完成百分比
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.StudentDashboard}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	dashboard, err := c.ProgressService.Dashboard(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
