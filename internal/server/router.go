package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/yungbote/goalpath-backend/internal/handlers"
  "github.com/yungbote/goalpath-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware *middleware.AuthMiddleware
  GoalHandler    *handlers.GoalHandler
  RoadmapHandler *handlers.RoadmapHandler
  TaskHandler    *handlers.TaskHandler
  SSEHandler     *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("goalpath"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)

// ===============
// || Protected ||
// ===============
  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.RequireAuth())
  // Goals
  api.POST("/goals", cfg.GoalHandler.CreateGoal)
  api.GET("/goals", cfg.GoalHandler.ListGoals)
  api.GET("/goals/:id", cfg.GoalHandler.GetGoal)
  // Roadmaps
  api.POST("/goals/:id/roadmap", cfg.RoadmapHandler.CreateRoadmap)
  api.GET("/goals/:id/roadmap", cfg.RoadmapHandler.GetLatestForGoal)
  api.GET("/roadmaps/:id", cfg.RoadmapHandler.GetRoadmap)
  api.GET("/roadmaps/:id/generation", cfg.RoadmapHandler.GetGenerationStatus)
  // Tasks
  api.POST("/phases/:id/tasks", cfg.TaskHandler.GenerateTasks)
  api.GET("/phases/:id/tasks", cfg.TaskHandler.GetTasks)
  api.PATCH("/tasks/:id/complete", cfg.TaskHandler.CompleteTask)

  // SSE
  sseGroup := router.Group("/sse")
  sseGroup.Use(cfg.AuthMiddleware.RequireAuth())
  sseGroup.GET("/stream", cfg.SSEHandler.SSEStream)
  sseGroup.POST("/subscribe", cfg.SSEHandler.SSESubscribe)
  sseGroup.POST("/unsubscribe", cfg.SSEHandler.SSEUnsubscribe)

  return router
}
