package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/services"
  "github.com/yungbote/goalpath-backend/internal/sse"
)

type TaskHandler struct {
  log         *logger.Logger
  sseHub      *sse.SSEHub
  taskService services.TaskGenerationService
}

func NewTaskHandler(log *logger.Logger, sseHub *sse.SSEHub, taskService services.TaskGenerationService) *TaskHandler {
  return &TaskHandler{
    log:         log.With("handler", "TaskHandler"),
    sseHub:      sseHub,
    taskService: taskService,
  }
}

// POST /api/phases/:id/tasks
// Idempotent: once a phase has tasks, repeat calls return the same set.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
  phaseID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_phase_id", err)
    return
  }
  tasks, err := h.taskService.GenerateTasksForPhase(c.Request.Context(), phaseID)
  flushSSEMessages(c, h.sseHub)
  if err != nil {
    h.log.Error("GenerateTasks failed", "error", err, "phase_id", phaseID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"tasks": tasks})
}

// GET /api/phases/:id/tasks
func (h *TaskHandler) GetTasks(c *gin.Context) {
  phaseID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_phase_id", err)
    return
  }
  tasks, err := h.taskService.GetTasksForPhase(c.Request.Context(), phaseID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"tasks": tasks})
}

// PATCH /api/tasks/:id/complete
func (h *TaskHandler) CompleteTask(c *gin.Context) {
  taskID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_task_id", err)
    return
  }
  task, err := h.taskService.CompleteTask(c.Request.Context(), taskID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"task": task})
}
