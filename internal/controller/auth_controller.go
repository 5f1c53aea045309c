package controller

import (
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// SignUpRequest 学生自助注册
// swagger:model SignUpRequest
type SignUpRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"fullName" binding:"required,max=100"`
	GradeLevel int    `json:"gradeLevel" binding:"gte=0,lte=12"`
}

// LoginRequest defines model for login
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp godoc
// @Summary 学生注册
// @Description 创建学生账号并直接登录，返回令牌和落地页
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body SignUpRequest true "注册信息"
// @Success 201 {object} util.Response{data=model.Session} "注册成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/auth/signup [post]
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	session, err := c.AuthService.SignUp(service.NewAccount{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		GradeLevel: req.GradeLevel,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// Login godoc
// @Summary 用户登录
// @Description 邮箱密码登录，返回令牌、资料以及按角色决定的落地页
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=model.Session} "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	session, err := c.AuthService.SignIn(req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// Logout godoc
// @Summary 退出登录
// @Description 吊销当前令牌
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "未登录"
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	if err := c.AuthService.SignOut(ctx.Request.Context(), user); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"landingPath": "/login"})
}

// Session godoc
// @Summary 当前登录态
// @Description 已登录返回用户与资料；未登录返回 landingPath=/login
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Session}
// @Router /api/auth/session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	session, err := c.AuthService.Session(util.GetUserFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, session)
}
