package app

import (
	"bookquiz_backend/docs"
	"bookquiz_backend/internal/config"
	"bookquiz_backend/internal/middleware"
	"bookquiz_backend/internal/model"
	"bookquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 图书浏览允许游客访问
		public.GET("/books", c.book.ListBooks)
		public.GET("/books/:id", c.book.GetBook)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 题目
		authGroup.GET("/quizzes", c.quiz.SearchQuizzes)
		authGroup.GET("/quizzes/:id", c.quiz.GetQuiz)
		authGroup.POST("/quizzes/:id/evaluate", c.quiz.EvaluateAnswer)
		authGroup.GET("/books/:id/quizzes", c.quiz.GetQuizzesByBook)

		// 答题
		authGroup.POST("/answers", c.userAnswer.SubmitAnswer)
		authGroup.GET("/answers", c.userAnswer.ListAnswers)
		authGroup.GET("/answers/stats", c.userAnswer.GetStats)
		authGroup.PUT("/answers/:id", c.userAnswer.UpdateAnswer)
		authGroup.GET("/quizzes/:id/answers", c.userAnswer.GetAnswersByQuiz)
		authGroup.GET("/quizzes/:id/answers/summary", c.userAnswer.GetQuizSummary)

		// 支付
		authGroup.POST("/payments", c.payment.PreparePayment)
		authGroup.GET("/payments", c.payment.ListPayments)
		authGroup.POST("/payments/:orderId/approve", c.payment.ApprovePayment)
		authGroup.POST("/payments/:orderId/cancel", c.payment.CancelPayment)
	}

	// 3. 管理员相关接口
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		adminGroup.POST("/books", c.book.CreateBook)
		adminGroup.PUT("/books/:id", c.book.UpdateBook)
		adminGroup.DELETE("/books/:id", c.book.DeleteBook)
		adminGroup.POST("/books/:id/cover", c.book.UploadCover)

		adminGroup.POST("/quizzes", c.quiz.CreateQuiz)
		adminGroup.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		adminGroup.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
	}
}
