package controller

import (
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService   *service.LessonService
	ProgressService *service.ProgressService
}

func NewLessonController(lessonService *service.LessonService, progressService *service.ProgressService) *LessonController {
	return &LessonController{LessonService: lessonService, ProgressService: progressService}
}

// LessonRequest 管理端创建或修改课程
// swagger:model LessonRequest
type LessonRequest struct {
	Title           string                 `json:"title" binding:"required,max=200"`
	Content         string                 `json:"content"`
	AnimationType   string                 `json:"animationType" binding:"omitempty,animation_type"`
	AnimationConfig map[string]interface{} `json:"animationConfig"`
	VideoURL        string                 `json:"videoUrl" binding:"omitempty,url,max=500"`
	LessonOrder     int                    `json:"lessonOrder" binding:"gte=0"`
}

func (r LessonRequest) input() service.LessonInput {
	return service.LessonInput{
		Title:           r.Title,
		Content:         r.Content,
		AnimationType:   r.AnimationType,
		AnimationConfig: r.AnimationConfig,
		VideoURL:        r.VideoURL,
		LessonOrder:     r.LessonOrder,
	}
}

// @Summary 课程列表
// @Description 按课程顺序返回，含正文摘要和当前学生的完成状态
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LessonSummary}
// @Router /api/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	lessons, err := c.LessonService.ListForStudent(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// @Summary 课程详情
// @Description 返回渲染后的正文、初始可视化结果、完成状态和关联作业
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.LessonDetail}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.LessonService.Detail(user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 计算可视化
// @Description 以课程配置为默认值，用请求中的参数覆盖后重新计算；参数越界返回 400
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Param body body object false "参数，如 {\"a\":1,\"b\":-5,\"c\":6}"
// @Success 200 {object} util.Response{data=animation.Result}
// @Failure 400 {object} util.Response "参数无效"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/lessons/{id}/visualization [post]
func (c *LessonController) Evaluate(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	overrides := map[string]interface{}{}
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&overrides); err != nil {
			util.BindError(ctx, err)
			return
		}
	}
	result, err := c.LessonService.Evaluate(id, overrides)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 标记课程完成
// @Description 重复调用幂等
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.StudentProgress}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/lessons/{id}/complete [post]
func (c *LessonController) Complete(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	progress, err := c.ProgressService.MarkCompleted(ctx.Request.Context(), user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 课程学习进度
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.StudentProgress}
// @Router /api/lessons/{id}/progress [get]
func (c *LessonController) GetProgress(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	progress, err := c.ProgressService.LessonProgress(user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 管理端课程列表
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/admin/lessons [get]
func (c *LessonController) AdminList(ctx *gin.Context) {
	lessons, err := c.LessonService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.ListResponse{List: lessons, Total: int64(len(lessons))})
}

// @Summary 创建课程
// @Description 保存前会用配置试算一次可视化，配置无效返回 400
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LessonRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}
	lesson, err := c.LessonService.Create(ctx.Request.Context(), req.input())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary 修改课程
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Param body body LessonRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/lessons/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}
	lesson, err := c.LessonService.Update(ctx.Request.Context(), id, req.input())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary 删除课程
// @Description 同时删除该课程的学习进度和作业
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.LessonService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}
