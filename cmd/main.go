package main

import (
  "context"
  "fmt"
  "os"
  "time"

  "github.com/yungbote/goalpath-backend/internal/db"
  "github.com/yungbote/goalpath-backend/internal/handlers"
  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/middleware"
  "github.com/yungbote/goalpath-backend/internal/observability"
  "github.com/yungbote/goalpath-backend/internal/repos"
  "github.com/yungbote/goalpath-backend/internal/server"
  "github.com/yungbote/goalpath-backend/internal/services"
  "github.com/yungbote/goalpath-backend/internal/sse"
  "github.com/yungbote/goalpath-backend/internal/utils"
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

  // Tracing
  shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "goalpath",
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  if shutdownOTel != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = shutdownOTel(ctx)
    }()
  }

  // Database
  databaseService, err := db.NewDatabaseService(log)
  if err != nil {
    log.Error("Database init failed", "error", err)
    os.Exit(1)
  }
  if err = databaseService.AutoMigrateAll(); err != nil {
    log.Error("Auto migration failed", "error", err)
    os.Exit(1)
  }
  theDB := databaseService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  goalRepo := repos.NewGoalRepo(theDB, log)
  roadmapRepo := repos.NewRoadmapRepo(theDB, log)
  phaseRepo := repos.NewPhaseRepo(theDB, log)
  taskRepo := repos.NewTaskRepo(theDB, log)

  // SSE
  log.Info("Setting up SSE hub now...")
  sseHub := sse.NewSSEHub(log)

  // Services
  log.Info("Setting up Services from main...")
  catalog, err := services.NewTemplateCatalog(log)
  if err != nil {
    log.Error("Template catalog init failed", "error", err)
    os.Exit(1)
  }
  modelClient, err := services.NewOpenAIModelClient(log)
  if err != nil {
    log.Error("Model client init failed", "error", err)
    os.Exit(1)
  }
  retryBaseDelay := time.Duration(utils.GetEnvAsInt("MODEL_RETRY_BASE_DELAY_MS", 400, log)) * time.Millisecond
  invoker := services.NewInvoker(log, modelClient, retryBaseDelay)
  phaseLock := services.NewPhaseLock(log)

  goalService := services.NewGoalService(theDB, log, goalRepo)
  roadmapGenService := services.NewRoadmapGenerationService(
    theDB, log, sseHub,
    goalRepo, roadmapRepo, phaseRepo,
    catalog, invoker,
  )
  roadmapStatusService := services.NewRoadmapStatusService(theDB, log, goalRepo, roadmapRepo, phaseRepo)
  taskGenService := services.NewTaskGenerationService(
    theDB, log, sseHub,
    goalRepo, roadmapRepo, phaseRepo, taskRepo,
    invoker, phaseLock,
  )

  // Handlers
  log.Info("Setting up handlers from main...")
  goalHandler := handlers.NewGoalHandler(log, goalService)
  roadmapHandler := handlers.NewRoadmapHandler(log, sseHub, roadmapGenService, roadmapStatusService)
  taskHandler := handlers.NewTaskHandler(log, sseHub, taskGenService)
  sseHandler := handlers.NewSSEHandler(log, sseHub)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware: authMiddleware,
    GoalHandler:    goalHandler,
    RoadmapHandler: roadmapHandler,
    TaskHandler:    taskHandler,
    SSEHandler:     sseHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
