package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/handlers"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/middleware"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/utils"
)

type RouterConfig struct {
	Log               *logger.Logger
	AuthMiddleware    *middleware.AuthMiddleware
	AuthHandler       *handlers.AuthHandler
	UserHandler       *handlers.UserHandler
	SubjectHandler    *handlers.SubjectHandler
	LessonHandler     *handlers.LessonHandler
	SlideHandler      *handlers.SlideHandler
	GenerationHandler *handlers.GenerationHandler
	QuestionHandler   *handlers.QuestionHandler
	ExportHandler     *handlers.ExportHandler
	TemplateHandler   *handlers.TemplateHandler
	ApiKeyHandler     *handlers.ApiKeyHandler
	SysConfigHandler  *handlers.SysConfigHandler
	FilesHandler      *handlers.FilesHandler
	SSEHandler        *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", cfg.Log)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(origins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.GET("/files/*filepath", cfg.FilesHandler.Serve)

	// Protected
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/refresh", cfg.AuthHandler.Refresh)
		protected.POST("/logout", cfg.AuthHandler.Logout)

		protected.GET("/user", cfg.UserHandler.Me)
		protected.PATCH("/user", cfg.UserHandler.UpdateProfile)
		protected.POST("/user/password", cfg.UserHandler.ChangePassword)
		protected.POST("/user/avatar/regenerate", cfg.UserHandler.RegenerateAvatar)

		protected.POST("/subjects", cfg.SubjectHandler.Create)
		protected.GET("/subjects", cfg.SubjectHandler.List)
		protected.GET("/subjects/:id", cfg.SubjectHandler.Get)
		protected.PATCH("/subjects/:id", cfg.SubjectHandler.Update)
		protected.DELETE("/subjects/:id", cfg.SubjectHandler.Delete)

		protected.POST("/lessons", cfg.LessonHandler.Create)
		protected.GET("/lessons", cfg.LessonHandler.List)
		protected.GET("/lessons/:id", cfg.LessonHandler.Get)
		protected.PATCH("/lessons/:id", cfg.LessonHandler.Update)
		protected.DELETE("/lessons/:id", cfg.LessonHandler.Delete)
		protected.GET("/lessons/:id/slides", cfg.LessonHandler.Slides)

		protected.POST("/lessons/:id/outline", cfg.GenerationHandler.GenerateOutline)
		protected.POST("/lessons/:id/script", cfg.GenerationHandler.GenerateSlideScript)
		protected.POST("/lessons/:id/script/reparse", cfg.GenerationHandler.ReparseScript)
		protected.POST("/lessons/:id/audio", cfg.GenerationHandler.GenerateAllAudio)
		protected.POST("/lessons/:id/images", cfg.GenerationHandler.GenerateAllImages)
		protected.POST("/lessons/:id/questions", cfg.GenerationHandler.GenerateQuestions)
		protected.GET("/lessons/:id/questions", cfg.QuestionHandler.ListByLesson)
		protected.POST("/lessons/:id/export/pptx", cfg.ExportHandler.ExportPPTX)
		protected.GET("/lessons/:id/export/questions", cfg.ExportHandler.ExportQuestions)

		protected.GET("/slides/:id", cfg.SlideHandler.Get)
		protected.PATCH("/slides/:id", cfg.SlideHandler.Update)
		protected.POST("/slides/:id/optimize", cfg.GenerationHandler.OptimizeSlide)
		protected.POST("/slides/:id/audio", cfg.GenerationHandler.GenerateSlideAudio)
		protected.POST("/slides/:id/image", cfg.GenerationHandler.GenerateSlideImage)

		protected.PATCH("/questions/:id", cfg.QuestionHandler.Update)
		protected.DELETE("/questions/:id", cfg.QuestionHandler.Delete)

		protected.GET("/voices", cfg.GenerationHandler.ListVoices)

		protected.POST("/apikeys", cfg.ApiKeyHandler.SetUserKey)
		protected.GET("/apikeys", cfg.ApiKeyHandler.ListUserKeys)
		protected.DELETE("/apikeys/:id", cfg.ApiKeyHandler.DeleteKey)

		protected.GET("/sse/stream", cfg.SSEHandler.Stream)
	}

	// Admin
	admin := router.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/templates", cfg.TemplateHandler.List)
		admin.POST("/templates", cfg.TemplateHandler.Create)
		admin.PATCH("/templates/:id", cfg.TemplateHandler.Update)
		admin.DELETE("/templates/:id", cfg.TemplateHandler.Delete)

		admin.POST("/apikeys", cfg.ApiKeyHandler.SetSystemKey)
		admin.GET("/apikeys", cfg.ApiKeyHandler.ListSystemKeys)
		admin.DELETE("/apikeys/:id", cfg.ApiKeyHandler.DeleteSystemKey)

		admin.GET("/config", cfg.SysConfigHandler.List)
		admin.PUT("/config", cfg.SysConfigHandler.Set)
		admin.DELETE("/config/:key", cfg.SysConfigHandler.Delete)
	}

	return router
}
