package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/repos"
  "github.com/yungbote/goalpath-backend/internal/requestdata"
  "github.com/yungbote/goalpath-backend/internal/types"
)

type CreateGoalInput struct {
  Title               string
  CurrentLevel        string
  DailyTimeCommitment int
  StartDate           *time.Time
  TargetDate          *time.Time
  WeeklySchedule      *[7]bool
}

type GoalService interface {
  CreateGoal(ctx context.Context, input CreateGoalInput) (*types.Goal, error)
  GetGoal(ctx context.Context, goalID uuid.UUID) (*types.Goal, error)
  ListGoals(ctx context.Context) ([]*types.Goal, error)
}

type goalService struct {
  db       *gorm.DB
  log      *logger.Logger
  goalRepo repos.GoalRepo
}

func NewGoalService(db *gorm.DB, baseLog *logger.Logger, goalRepo repos.GoalRepo) GoalService {
  return &goalService{
    db:       db,
    log:      baseLog.With("service", "GoalService"),
    goalRepo: goalRepo,
  }
}

func (s *goalService) CreateGoal(ctx context.Context, input CreateGoalInput) (*types.Goal, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("not authenticated")
  }

  title := strings.TrimSpace(input.Title)
  if title == "" {
    return nil, fmt.Errorf("goal title is required")
  }

  minutes := input.DailyTimeCommitment
  if minutes <= 0 {
    minutes = 30
  }

  // Calendar dates come from the value's own timezone; converting to UTC
  // first would shift offset timestamps across a day boundary.
  start := dateOnly(time.Now())
  if input.StartDate != nil {
    start = dateOnly(*input.StartDate)
  }
  if input.TargetDate != nil && dateOnly(*input.TargetDate).Before(start) {
    return nil, fmt.Errorf("target date precedes start date")
  }

  schedule := [7]bool{true, true, true, true, true, true, true}
  if input.WeeklySchedule != nil {
    schedule = *input.WeeklySchedule
  }

  now := time.Now()
  goal := &types.Goal{
    ID:                  uuid.New(),
    UserID:              rd.UserID,
    Title:               title,
    CurrentLevel:        strings.TrimSpace(input.CurrentLevel),
    DailyTimeCommitment: minutes,
    StartDate:           start,
    TargetDate:          input.TargetDate,
    WeeklySchedule:      types.WeeklyScheduleJSON(schedule),
    CreatedAt:           now,
    UpdatedAt:           now,
  }

  created, err := s.goalRepo.Create(ctx, nil, []*types.Goal{goal})
  if err != nil {
    return nil, fmt.Errorf("create goal: %w", err)
  }
  s.log.Info("Goal created", "goal_id", goal.ID, "user_id", rd.UserID)
  return created[0], nil
}

func (s *goalService) GetGoal(ctx context.Context, goalID uuid.UUID) (*types.Goal, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("not authenticated")
  }

  goals, err := s.goalRepo.GetByIDs(ctx, nil, []uuid.UUID{goalID})
  if err != nil {
    return nil, fmt.Errorf("load goal: %w", err)
  }
  if len(goals) == 0 || goals[0] == nil || goals[0].UserID != rd.UserID {
    return nil, &NotFoundError{Resource: "goal"}
  }
  return goals[0], nil
}

func (s *goalService) ListGoals(ctx context.Context) ([]*types.Goal, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("not authenticated")
  }

  goals, err := s.goalRepo.GetByUserID(ctx, nil, rd.UserID)
  if err != nil {
    return nil, fmt.Errorf("list goals: %w", err)
  }
  return goals, nil
}
