package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/db"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/handlers"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/middleware"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/secrets"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/server"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/sse"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	apiKeySecret := utils.GetEnv("API_KEY_SECRET", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 900, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	subjectRepo := repos.NewSubjectRepo(thePG, log)
	lessonRepo := repos.NewLessonRepo(thePG, log)
	slideRepo := repos.NewSlideRepo(thePG, log)
	templateRepo := repos.NewPromptTemplateRepo(thePG, log)
	apiKeyRepo := repos.NewApiKeyRepo(thePG, log)
	configRepo := repos.NewSystemConfigRepo(thePG, log)
	questionRepo := repos.NewQuestionRepo(thePG, log)

	// SSE
	sseHub := sse.NewSSEHub(log)

	// Services
	log.Info("Setting up Services from main...")
	box, err := secrets.New(apiKeySecret)
	if err != nil {
		log.Error("Could not init key encryption", "error", err)
		os.Exit(1)
	}
	storageService, err := services.NewStorageService(log)
	if err != nil {
		log.Error("Could not init StorageService", "error", err)
		os.Exit(1)
	}
	avatarService, err := services.NewAvatarService(log, storageService)
	if err != nil {
		log.Error("Could not init AvatarService", "error", err)
		os.Exit(1)
	}
	aiClient := services.NewAIClient(log)
	authService := services.NewAuthService(
		thePG, log, userRepo, avatarService, userTokenRepo,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(thePG, log, userRepo, avatarService)
	subjectService := services.NewSubjectService(log, subjectRepo)
	lessonService := services.NewLessonService(log, lessonRepo, subjectService)
	slideService := services.NewSlideService(thePG, log, slideRepo)
	promptService := services.NewPromptService(log, templateRepo)
	apiKeyService := services.NewApiKeyService(log, apiKeyRepo, box)
	configService := services.NewSystemConfigService(log, configRepo)
	questionService := services.NewQuestionService(thePG, log, questionRepo, lessonService)
	ttsService := services.NewTTSService(log, configService, apiKeyService,
		services.NewViTTSProvider(log),
		services.NewOpenAITTSProvider(log, aiClient),
	)
	generationService := services.NewGenerationService(
		log, aiClient, apiKeyService, promptService,
		subjectService, lessonService, slideService, questionService, sseHub,
	)
	mediaService := services.NewMediaService(
		log, aiClient, apiKeyService, promptService, ttsService,
		storageService, slideService, lessonService, subjectService, sseHub,
	)
	exportService := services.NewExportService(
		log, lessonService, subjectService, slideService,
		questionService, storageService, sseHub,
	)

	if err := promptService.SeedDefaults(context.Background()); err != nil {
		log.Warn("Prompt template seeding failed", "error", err)
	}

	// Handlers
	log.Info("Setting up Handlers from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	router := server.NewRouter(server.RouterConfig{
		Log:               log,
		AuthMiddleware:    authMiddleware,
		AuthHandler:       handlers.NewAuthHandler(authService),
		UserHandler:       handlers.NewUserHandler(userService),
		SubjectHandler:    handlers.NewSubjectHandler(subjectService),
		LessonHandler:     handlers.NewLessonHandler(lessonService, slideService),
		SlideHandler:      handlers.NewSlideHandler(slideService, lessonService),
		GenerationHandler: handlers.NewGenerationHandler(generationService, mediaService, ttsService),
		QuestionHandler:   handlers.NewQuestionHandler(questionService),
		ExportHandler:     handlers.NewExportHandler(exportService),
		TemplateHandler:   handlers.NewTemplateHandler(promptService),
		ApiKeyHandler:     handlers.NewApiKeyHandler(apiKeyService),
		SysConfigHandler:  handlers.NewSysConfigHandler(configService),
		FilesHandler:      handlers.NewFilesHandler(storageService),
		SSEHandler:        handlers.NewSSEHandler(sseHub),
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
