package app

import (
	"math_edu_backend/docs"
	"math_edu_backend/internal/middleware"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/util"

	"math_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.NoRoute(util.NotFound)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 登录后可访问（学生与管理员）
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.services.auth))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/signup", c.auth.SignUp)
			auth.POST("/login", c.auth.Login)
			// 未登录时返回跳转登录页，不报 401
			auth.GET("/session", middleware.OptionalAuth(a.services.auth), c.auth.Session)
		}
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/auth/logout", c.auth.Logout)
	rg.GET("/dashboard", c.dashboard.GetDashboard)

	// 课程
	rg.GET("/lessons", c.lesson.ListLessons)
	rg.GET("/lessons/:id", c.lesson.GetLesson)
	rg.POST("/lessons/:id/visualization", c.lesson.Evaluate)
	rg.POST("/lessons/:id/complete", c.lesson.Complete)
	rg.GET("/lessons/:id/progress", c.lesson.GetProgress)

	// 作业
	rg.GET("/homework", c.homework.List)
	rg.GET("/homework/:id", c.homework.Detail)
	rg.POST("/homework/:id/submission", c.homework.Submit)
	rg.POST("/homework/:id/attachment", c.homework.Upload)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(a.services.auth), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/lessons", c.lesson.AdminList)
		admin.POST("/lessons", c.lesson.Create)
		admin.PUT("/lessons/:id", c.lesson.Update)
		admin.DELETE("/lessons/:id", c.lesson.Delete)

		admin.POST("/homework", c.homework.Create)
		admin.PUT("/homework/:id", c.homework.Update)
		admin.DELETE("/homework/:id", c.homework.Delete)
		admin.GET("/submissions", c.homework.ListSubmissions)
		admin.PUT("/submissions/:id/grade", c.homework.Grade)

		admin.GET("/students", c.student.List)
		admin.POST("/students", c.student.Create)
		admin.GET("/students/:id", c.student.Get)
		admin.GET("/students/:id/attendance", c.attendance.History)

		admin.GET("/attendance", c.attendance.ForDate)
		admin.PUT("/attendance", c.attendance.Mark)

		admin.GET("/analytics/overview", c.analytics.GetOverview)
		admin.GET("/analytics/lessons", c.analytics.GetLessonCompletion)

		admin.GET("/live", c.live.Connect)
	}
}
