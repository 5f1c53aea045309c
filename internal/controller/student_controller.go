package controller

import (
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

// CreateStudentRequest 管理端开通学生账号
// swagger:model CreateStudentRequest
type CreateStudentRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"fullName" binding:"required,max=100"`
	GradeLevel int    `json:"gradeLevel" binding:"gte=0,lte=12"`
}

// @Summary 学生列表
// @Tags 学生管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/admin/students [get]
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.StudentService.List()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.ListResponse{List: students, Total: int64(len(students))})
}

// @Summary 创建学生账号
// @Tags 学生管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateStudentRequest true "学生信息"
// @Success 201 {object} util.Response{data=model.Profile}
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/admin/students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}
	profile, err := c.StudentService.Create(service.NewAccount{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		GradeLevel: req.GradeLevel,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, profile)
}

// @Summary 学生详情
// @Description 资料、学习进度、作业提交和出勤记录
// @Tags 学生管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "学生ID"
// @Success 200 {object} util.Response{data=service.StudentDetail}
// @Failure 404 {object} util.Response "学生不存在"
// @Router /api/admin/students/{id} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.StudentService.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}
