package handlers

import (
  "net/http"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/services"
)

type GoalHandler struct {
  log         *logger.Logger
  goalService services.GoalService
}

func NewGoalHandler(log *logger.Logger, goalService services.GoalService) *GoalHandler {
  return &GoalHandler{
    log:         log.With("handler", "GoalHandler"),
    goalService: goalService,
  }
}

type createGoalRequest struct {
  Title               string     `json:"title"`
  CurrentLevel        string     `json:"current_level"`
  DailyTimeCommitment int        `json:"daily_time_commitment"`
  StartDate           *time.Time `json:"start_date"`
  TargetDate          *time.Time `json:"target_date"`
  WeeklySchedule      []bool     `json:"weekly_schedule"`
}

// POST /api/goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
  var req createGoalRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  input := services.CreateGoalInput{
    Title:               req.Title,
    CurrentLevel:        req.CurrentLevel,
    DailyTimeCommitment: req.DailyTimeCommitment,
    StartDate:           req.StartDate,
    TargetDate:          req.TargetDate,
  }
  if req.WeeklySchedule != nil {
    if len(req.WeeklySchedule) != 7 {
      RespondError(c, http.StatusBadRequest, "invalid_weekly_schedule", nil)
      return
    }
    var days [7]bool
    copy(days[:], req.WeeklySchedule)
    input.WeeklySchedule = &days
  }

  goal, err := h.goalService.CreateGoal(c.Request.Context(), input)
  if err != nil {
    h.log.Error("CreateGoal failed", "error", err)
    RespondError(c, http.StatusBadRequest, "create_goal_failed", err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GET /api/goals/:id
func (h *GoalHandler) GetGoal(c *gin.Context) {
  goalID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_goal_id", err)
    return
  }
  goal, err := h.goalService.GetGoal(c.Request.Context(), goalID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"goal": goal})
}

// GET /api/goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
  goals, err := h.goalService.ListGoals(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"goals": goals})
}
