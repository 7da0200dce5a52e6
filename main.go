package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"coachhub/api"
	"coachhub/config"
	"coachhub/database"
	"coachhub/middleware"
	"coachhub/repository"
	"coachhub/services"
	"coachhub/store"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Initialize database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	// Initialize the versioned key/value store backing all content repositories
	st, err := store.New(db)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize store: %v", err)
	}

	// Initialize Repositories
	userRepo := repository.NewUserRepository(st)
	postRepo := repository.NewPostRepository(st)
	projectRepo := repository.NewProjectRepository(st)
	lessonRepo := repository.NewLessonRepository(st)
	knowledgeRepo := repository.NewKnowledgeRepository(st)
	uploadRepo := repository.NewUploadRepository(st)
	noteRepo := repository.NewNoteRepository(st)
	issueRepo := repository.NewIssueRepository(st)
	permissionRepo := repository.NewPermissionRepository(st)
	siteRepo := repository.NewSiteRepository(st)
	sessionRepo := repository.NewSessionRepository()
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize Services
	gateway := services.NewGateway(config.AppConfig.LLM)
	permissionService := services.NewPermissionService(permissionRepo)
	diagnosisService := services.NewDiagnosisService(sessionRepo, issueRepo, gateway)
	assistantService := services.NewAssistantService(lessonRepo, gateway)
	exportService := services.NewExportService(400 * time.Millisecond)
	log.Println("INFO: [Main] Services initialized.")

	// Initialize API Handler with all dependencies
	apiHandler := api.NewAPIHandler(
		userRepo,
		postRepo,
		projectRepo,
		lessonRepo,
		knowledgeRepo,
		uploadRepo,
		noteRepo,
		issueRepo,
		permissionRepo,
		siteRepo,
		permissionService,
		diagnosisService,
		assistantService,
		exportService,
	)
	log.Println("INFO: [Main] API Handler initialized.")

	// Create Gin engine
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	// Register routes
	registerRoutes(r, apiHandler)
	log.Println("INFO: [Main] Routes registered.")

	// Start the server
	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler) {
	apiGroup := r.Group("/api")
	{
		// Bootstrap and session
		apiGroup.GET("/init", handler.InitHandler)
		apiGroup.POST("/login", handler.LoginHandler)

		// Blog posts
		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", handler.ListPostsHandler)
			postGroup.GET("/:id", handler.GetPostHandler)
			postGroup.POST("", handler.SavePostHandler)
			postGroup.DELETE("/:id", handler.DeletePostHandler)
		}

		// Dashboard projects
		projectGroup := apiGroup.Group("/projects")
		{
			projectGroup.GET("", handler.ListProjectsHandler)
			projectGroup.GET("/:id", handler.GetProjectHandler)
			projectGroup.POST("", handler.SaveProjectHandler)
			projectGroup.DELETE("/:id", handler.DeleteProjectHandler)
		}

		// Video course lessons
		lessonGroup := apiGroup.Group("/lessons")
		{
			lessonGroup.GET("", handler.ListLessonsHandler)
			lessonGroup.GET("/:id", handler.GetLessonHandler)
			lessonGroup.POST("", handler.SaveLessonHandler)
			lessonGroup.DELETE("/:id", handler.DeleteLessonHandler)
			lessonGroup.POST("/:id/transcript", handler.GenerateTranscriptHandler)
			lessonGroup.POST("/:id/highlights", handler.ExtractHighlightsHandler)
			lessonGroup.POST("/:id/ask", handler.AssistantAskHandler)
		}

		// Knowledge base categories
		knowledgeGroup := apiGroup.Group("/knowledge")
		{
			knowledgeGroup.GET("", handler.ListKnowledgeHandler)
			knowledgeGroup.POST("", handler.SaveKnowledgeHandler)
			knowledgeGroup.DELETE("/:id", handler.DeleteKnowledgeHandler)
		}

		// User uploads
		uploadGroup := apiGroup.Group("/uploads")
		{
			uploadGroup.GET("", handler.ListUploadsHandler)
			uploadGroup.POST("", handler.SubmitUploadHandler)
			uploadGroup.POST("/:id/complete", handler.CompleteUploadHandler)
		}

		// Course notes
		noteGroup := apiGroup.Group("/notes")
		{
			noteGroup.GET("", handler.ListNotesHandler)
			noteGroup.POST("", handler.SaveNoteHandler)
			noteGroup.DELETE("/:id", handler.DeleteNoteHandler)
		}

		// User administration
		userGroup := apiGroup.Group("/users")
		{
			userGroup.GET("", handler.ListUsersHandler)
			userGroup.POST("", handler.SaveUserHandler)
			userGroup.DELETE("/:id", handler.DeleteUserHandler)
		}

		// Permission matrix and capability definitions
		permissionGroup := apiGroup.Group("/permissions")
		{
			permissionGroup.GET("/config", handler.GetPermissionConfigHandler)
			permissionGroup.PUT("/config", handler.SavePermissionConfigHandler)
			permissionGroup.GET("/definitions", handler.ListPermissionDefinitionsHandler)
			permissionGroup.POST("/definitions", handler.SavePermissionDefinitionHandler)
			permissionGroup.DELETE("/definitions/:id", handler.DeletePermissionDefinitionHandler)
			permissionGroup.GET("/check", handler.CheckPermissionHandler)
		}

		// Diagnosis chat
		diagnosisGroup := apiGroup.Group("/diagnosis")
		{
			diagnosisGroup.GET("/issues", handler.ListIssuesHandler)
			diagnosisGroup.POST("/issues", handler.SaveIssueHandler)
			diagnosisGroup.DELETE("/issues/:id", handler.DeleteIssueHandler)
			diagnosisGroup.POST("/sessions", handler.StartDiagnosisHandler)
			diagnosisGroup.POST("/sessions/:id/messages", handler.DiagnosisMessageHandler)
			diagnosisGroup.POST("/sessions/:id/restart", handler.DiagnosisRestartHandler)
			diagnosisGroup.POST("/sessions/:id/summarize", handler.DiagnosisSummarizeHandler)
		}

		// Simulated report exports
		exportGroup := apiGroup.Group("/exports")
		{
			exportGroup.POST("", handler.StartExportHandler)
			exportGroup.GET("/:id", handler.ExportProgressHandler)
			exportGroup.DELETE("/:id", handler.CancelExportHandler)
		}

		// Site singletons and email audit log
		siteGroup := apiGroup.Group("/site")
		{
			siteGroup.GET("/intro-video", handler.GetIntroVideoHandler)
			siteGroup.PUT("/intro-video", handler.SaveIntroVideoHandler)
			siteGroup.GET("/about-us", handler.GetAboutUsHandler)
			siteGroup.PUT("/about-us", handler.SaveAboutUsHandler)
			siteGroup.GET("/email-log", handler.ListEmailLogHandler)
			siteGroup.POST("/email-log", handler.AppendEmailLogHandler)
		}
	}
}
