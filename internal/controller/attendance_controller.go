package controller

import (
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	AttendanceService *service.AttendanceService
}

func NewAttendanceController(attendanceService *service.AttendanceService) *AttendanceController {
	return &AttendanceController{AttendanceService: attendanceService}
}

// MarkAttendanceRequest 点名
// swagger:model MarkAttendanceRequest
type MarkAttendanceRequest struct {
	StudentID string `json:"studentId" binding:"required,uuid"`
	Date      string `json:"date"`
	Status    string `json:"status" binding:"required,attendance_status"`
}

// @Summary 点名表
// @Description 指定日期所有学生的出勤状态，未点名的 marked=false；默认今天
// @Tags 出勤
// @Produce json
// @Security BearerAuth
// @Param date query string false "日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=[]model.AttendanceEntry}
// @Failure 400 {object} util.Response "日期格式错误"
// @Router /api/admin/attendance [get]
func (c *AttendanceController) ForDate(ctx *gin.Context) {
	entries, day, err := c.AttendanceService.ForDate(ctx.Query("date"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"date": day, "entries": entries})
}

// @Summary 标记出勤
// @Description 同一学生同一天重复标记会覆盖
// @Tags 出勤
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MarkAttendanceRequest true "出勤信息"
// @Success 200 {object} util.Response{data=model.Attendance}
// @Failure 400 {object} util.Response "状态或日期无效"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /api/admin/attendance [put]
func (c *AttendanceController) Mark(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}
	record, err := c.AttendanceService.Mark(ctx.Request.Context(), user.UserID, req.StudentID, req.Date, model.AttendanceStatus(req.Status))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// @Summary 学生出勤记录
// @Tags 出勤
// @Produce json
// @Security BearerAuth
// @Param id path string true "学生ID"
// @Success 200 {object} util.Response{data=[]model.Attendance}
// @Router /api/admin/students/{id}/attendance [get]
func (c *AttendanceController) History(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	list, err := c.AttendanceService.History(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}
