package controller

import (
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary 统计概览
// @Description 学生、课程、完成率、平均分，以及指定日期的出勤率
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param date query string false "出勤统计日期 YYYY-MM-DD，默认今天"
// @Success 200 {object} util.Response{data=model.AnalyticsOverview}
// @Router /api/admin/analytics/overview [get]
func (c *AnalyticsController) GetOverview(ctx *gin.Context) {
	overview, err := c.AnalyticsService.Overview(ctx.Query("date"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// @Summary 各课程完成人数
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LessonCompletionStat}
// @Router /api/admin/analytics/lessons [get]
func (c *AnalyticsController) GetLessonCompletion(ctx *gin.Context) {
	stats, err := c.AnalyticsService.LessonCompletion()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
