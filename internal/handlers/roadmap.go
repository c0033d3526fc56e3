package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/services"
  "github.com/yungbote/goalpath-backend/internal/sse"
)

type RoadmapHandler struct {
  log        *logger.Logger
  sseHub     *sse.SSEHub
  generation services.RoadmapGenerationService
  status     services.RoadmapStatusService
}

func NewRoadmapHandler(
  log *logger.Logger,
  sseHub *sse.SSEHub,
  generation services.RoadmapGenerationService,
  status services.RoadmapStatusService,
) *RoadmapHandler {
  return &RoadmapHandler{
    log:        log.With("handler", "RoadmapHandler"),
    sseHub:     sseHub,
    generation: generation,
    status:     status,
  }
}

// POST /api/goals/:id/roadmap
// Returns once the roadmap exists; with the model path the phases keep
// generating in the background and land over SSE.
func (h *RoadmapHandler) CreateRoadmap(c *gin.Context) {
  goalID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_goal_id", err)
    return
  }

  roadmap, err := h.generation.CreatePlan(c.Request.Context(), goalID)
  // Failure events are buffered too; flush before deciding the response.
  flushSSEMessages(c, h.sseHub)
  if err != nil {
    h.log.Error("CreateRoadmap failed", "error", err, "goal_id", goalID)
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusAccepted, gin.H{"roadmap": roadmap})
}

// GET /api/roadmaps/:id
func (h *RoadmapHandler) GetRoadmap(c *gin.Context) {
  roadmapID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_roadmap_id", err)
    return
  }
  result, err := h.status.GetRoadmap(c.Request.Context(), roadmapID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, result)
}

// GET /api/roadmaps/:id/generation
func (h *RoadmapHandler) GetGenerationStatus(c *gin.Context) {
  roadmapID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_roadmap_id", err)
    return
  }
  status, err := h.status.GetGenerationStatus(c.Request.Context(), roadmapID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"status": status})
}

// GET /api/goals/:id/roadmap
func (h *RoadmapHandler) GetLatestForGoal(c *gin.Context) {
  goalID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_goal_id", err)
    return
  }
  result, err := h.status.GetLatestForGoal(c.Request.Context(), goalID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, result)
}
