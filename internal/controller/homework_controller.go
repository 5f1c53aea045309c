package controller

import (
	"time"

	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HomeworkController struct {
	HomeworkService *service.HomeworkService
}

func NewHomeworkController(homeworkService *service.HomeworkService) *HomeworkController {
	return &HomeworkController{HomeworkService: homeworkService}
}

// HomeworkRequest 布置作业
// swagger:model HomeworkRequest
type HomeworkRequest struct {
	LessonID    string    `json:"lessonId" binding:"required,uuid"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

// SubmitRequest 文字答案
// swagger:model SubmitRequest
type SubmitRequest struct {
	SubmissionText string `json:"submissionText" binding:"required"`
}

// GradeRequest 评分
// swagger:model GradeRequest
type GradeRequest struct {
	Score    *int   `json:"score" binding:"required"`
	Feedback string `json:"feedback"`
}

// @Summary 作业列表
// @Tags 作业
// @Produce json
// @Security BearerAuth
// @Param lessonId query string false "课程ID"
// @Success 200 {object} util.Response{data=[]model.Homework}
// @Router /api/homework [get]
func (c *HomeworkController) List(ctx *gin.Context) {
	lessonID := ctx.Query("lessonId")
	if lessonID != "" && !model.IsUUID(lessonID) {
		util.BadRequest(ctx, "invalid lessonId")
		return
	}
	list, err := c.HomeworkService.List(lessonID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 作业详情
// @Description 作业、所属课程、本人提交和成绩，以及是否已过截止时间
// @Tags 作业
// @Produce json
// @Security BearerAuth
// @Param id path string true "作业ID"
// @Success 200 {object} util.Response{data=model.HomeworkDetail}
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/homework/{id} [get]
func (c *HomeworkController) Detail(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.HomeworkService.Detail(user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 提交作业
// @Description 文字答案不能为空；重复提交覆盖，已上传的附件保留
// @Tags 作业
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "作业ID"
// @Param body body SubmitRequest true "答案"
// @Success 200 {object} util.Response{data=model.HomeworkSubmission}
// @Failure 400 {object} util.Response "答案为空"
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/homework/{id}/submission [post]
func (c *HomeworkController) Submit(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrEmptySubmission.Error())
		return
	}
	sub, err := c.HomeworkService.Submit(ctx.Request.Context(), user.UserID, id, req.SubmissionText)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// @Summary 上传作业附件
// @Description 支持图片、PDF、纯文本；文字答案保留
// @Tags 作业
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "作业ID"
// @Param file formData file true "附件"
// @Success 200 {object} util.Response{data=model.HomeworkSubmission}
// @Failure 400 {object} util.Response "文件类型不支持"
// @Failure 413 {object} util.Response "文件过大"
// @Router /api/homework/{id}/attachment [post]
func (c *HomeworkController) Upload(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	sub, err := c.HomeworkService.UploadAttachment(ctx.Request.Context(), user.UserID, id, header.Filename, header.Size, file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// @Summary 布置作业
// @Tags 作业管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body HomeworkRequest true "作业信息"
// @Success 201 {object} util.Response{data=model.Homework}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/homework [post]
func (c *HomeworkController) Create(ctx *gin.Context) {
	var req HomeworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}
	hw, err := c.HomeworkService.Create(service.HomeworkInput{
		LessonID:    req.LessonID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, hw)
}

// @Summary 修改作业
// @Tags 作业管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "作业ID"
// @Param body body HomeworkRequest true "作业信息"
// @Success 200 {object} util.Response{data=model.Homework}
// @Router /api/admin/homework/{id} [put]
func (c *HomeworkController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req HomeworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}
	hw, err := c.HomeworkService.Update(id, service.HomeworkInput{
		LessonID:    req.LessonID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, hw)
}

// @Summary 删除作业
// @Tags 作业管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "作业ID"
// @Success 200 {object} util.Response
// @Router /api/admin/homework/{id} [delete]
func (c *HomeworkController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.HomeworkService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// @Summary 提交列表
// @Description 可按课程、学生、作业筛选
// @Tags 作业管理
// @Produce json
// @Security BearerAuth
// @Param lessonId query string false "课程ID"
// @Param studentId query string false "学生ID"
// @Param homeworkId query string false "作业ID"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/admin/submissions [get]
func (c *HomeworkController) ListSubmissions(ctx *gin.Context) {
	filter := repository.SubmissionFilter{
		LessonID:   ctx.Query("lessonId"),
		StudentID:  ctx.Query("studentId"),
		HomeworkID: ctx.Query("homeworkId"),
	}
	for name, v := range map[string]string{"lessonId": filter.LessonID, "studentId": filter.StudentID, "homeworkId": filter.HomeworkID} {
		if v != "" && !model.IsUUID(v) {
			util.BadRequest(ctx, "invalid "+name)
			return
		}
	}
	list, err := c.HomeworkService.ListSubmissions(filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.ListResponse{List: list, Total: int64(len(list))})
}

// @Summary 评分
// @Description 分数 0-100，重新评分覆盖原成绩
// @Tags 作业管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "提交ID"
// @Param body body GradeRequest true "分数与评语"
// @Success 200 {object} util.Response{data=model.Grade}
// @Failure 400 {object} util.Response "分数越界"
// @Failure 404 {object} util.Response "提交不存在"
// @Router /api/admin/submissions/{id}/grade [put]
func (c *HomeworkController) Grade(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}
	grade, err := c.HomeworkService.Grade(ctx.Request.Context(), user.UserID, id, *req.Score, req.Feedback)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, grade)
}
