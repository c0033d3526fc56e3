package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/singleflight"
  "gorm.io/gorm"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/repos"
  "github.com/yungbote/goalpath-backend/internal/requestdata"
  "github.com/yungbote/goalpath-backend/internal/sse"
  "github.com/yungbote/goalpath-backend/internal/ssedata"
  "github.com/yungbote/goalpath-backend/internal/types"
)

const (
  taskPatternsMaxTokens = 2000
  taskPatternsTimeout   = 60 * time.Second
)

type TaskGenerationService interface {
  // GenerateTasksForPhase creates this phase's task set on first call and
  // returns the existing set afterwards. Concurrent calls for the same
  // phase are deduplicated; failures propagate to the caller directly.
  GenerateTasksForPhase(ctx context.Context, phaseID uuid.UUID) ([]*types.Task, error)

  GetTasksForPhase(ctx context.Context, phaseID uuid.UUID) ([]*types.Task, error)
  CompleteTask(ctx context.Context, taskID uuid.UUID) (*types.Task, error)
}

type taskGenerationService struct {
  db  *gorm.DB
  log *logger.Logger

  sseHub *sse.SSEHub

  goalRepo    repos.GoalRepo
  roadmapRepo repos.RoadmapRepo
  phaseRepo   repos.PhaseRepo
  taskRepo    repos.TaskRepo

  invoker *Invoker
  lock    *PhaseLock
  flight  singleflight.Group
}

func NewTaskGenerationService(
  db *gorm.DB,
  baseLog *logger.Logger,
  sseHub *sse.SSEHub,
  goalRepo repos.GoalRepo,
  roadmapRepo repos.RoadmapRepo,
  phaseRepo repos.PhaseRepo,
  taskRepo repos.TaskRepo,
  invoker *Invoker,
  lock *PhaseLock,
) TaskGenerationService {
  return &taskGenerationService{
    db:          db,
    log:         baseLog.With("service", "TaskGenerationService"),
    sseHub:      sseHub,
    goalRepo:    goalRepo,
    roadmapRepo: roadmapRepo,
    phaseRepo:   phaseRepo,
    taskRepo:    taskRepo,
    invoker:     invoker,
    lock:        lock,
  }
}

func (s *taskGenerationService) GenerateTasksForPhase(ctx context.Context, phaseID uuid.UUID) ([]*types.Task, error) {
  phase, roadmap, goal, err := s.loadPhaseForCaller(ctx, phaseID)
  if err != nil {
    return nil, err
  }

  // Tasks are created once per phase; existence is derived by counting,
  // never stored as a flag.
  existing, err := s.taskRepo.GetByPhaseID(ctx, nil, phase.ID)
  if err != nil {
    return nil, fmt.Errorf("load tasks: %w", err)
  }
  if len(existing) > 0 {
    return existing, nil
  }

  // Collapse concurrent in-process calls for one phase into one
  // generation; the row lock + count check below covers other replicas.
  result, err, _ := s.flight.Do(phase.ID.String(), func() (interface{}, error) {
    return s.generateTasks(ctx, goal, roadmap, phase)
  })
  if err != nil {
    return nil, err
  }
  return result.([]*types.Task), nil
}

func (s *taskGenerationService) generateTasks(ctx context.Context, goal *types.Goal, roadmap *types.Roadmap, phase *types.Phase) ([]*types.Task, error) {
  release, err := s.lock.Acquire(ctx, phase.ID)
  if err != nil {
    return nil, err
  }
  defer release()

  pool, err := s.taskPool(ctx, goal, roadmap, phase)
  if err != nil {
    return nil, err
  }

  allocated := AllocateTaskDates(phase.StartDate, phase.EndDate, goal.EnabledWeekdays(), pool)

  now := time.Now()
  tasks := make([]*types.Task, 0, len(allocated))
  for _, a := range allocated {
    minutes := a.Blueprint.EstimatedMinutes
    if minutes <= 0 {
      minutes = goal.DailyTimeCommitment
    }
    tasks = append(tasks, &types.Task{
      ID:                uuid.New(),
      RoadmapID:         phase.RoadmapID,
      PhaseID:           phase.ID,
      PhaseKey:          phase.PhaseKey,
      Title:             a.Blueprint.Title,
      Description:       a.Blueprint.Description,
      ScheduledDate:     a.Date,
      EstimatedDuration: minutes,
      Priority:          PriorityForType(a.Blueprint.Type),
      CreatedAt:         now,
      UpdatedAt:         now,
    })
  }

  // Empty availability produces zero tasks; accepted, not an error.
  if len(tasks) == 0 {
    s.log.Info("No eligible days in phase, zero tasks created", "phase_id", phase.ID)
    return []*types.Task{}, nil
  }

  var out []*types.Task
  err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := s.phaseRepo.LockByID(ctx, tx, phase.ID); err != nil {
      return fmt.Errorf("lock phase: %w", err)
    }
    count, err := s.taskRepo.CountByPhaseID(ctx, tx, phase.ID)
    if err != nil {
      return fmt.Errorf("count tasks: %w", err)
    }
    if count > 0 {
      // Another writer generated the set first; keep theirs.
      existing, err := s.taskRepo.GetByPhaseID(ctx, tx, phase.ID)
      if err != nil {
        return err
      }
      out = existing
      return nil
    }
    created, err := s.taskRepo.Create(ctx, tx, tasks)
    if err != nil {
      return fmt.Errorf("create tasks: %w", err)
    }
    out = created
    return nil
  })
  if err != nil {
    return nil, err
  }

  msg := sse.SSEMessage{
    Channel: goal.UserID.String(),
    Event:   sse.SSEEventPhaseTasksGenerated,
    Data: map[string]any{
      "phase_id": phase.ID,
      "tasks":    len(out),
    },
  }
  // Buffered on the request when possible; the handler flushes it to the
  // hub after the response commits.
  if ssd := ssedata.GetSSEData(ctx); ssd != nil {
    ssd.AppendMessage(msg)
  } else {
    s.sseHub.Broadcast(msg)
  }
  s.log.Info("Tasks generated for phase",
    "phase_id", phase.ID,
    "roadmap_id", phase.RoadmapID,
    "tasks", len(out),
  )
  return out, nil
}

// taskPool resolves the rotating pool for a phase. A curated pool stored
// in the plan document wins outright; otherwise the model is asked for
// task patterns, and an empty pattern list falls back to the fixed pool
// rather than failing.
func (s *taskGenerationService) taskPool(ctx context.Context, goal *types.Goal, roadmap *types.Roadmap, phase *types.Phase) ([]types.TaskBlueprint, error) {
  if pool := curatedTaskPool(roadmap, phase); len(pool) > 0 {
    s.log.Info("Using curated task pool from plan", "phase_id", phase.ID, "pool_size", len(pool))
    return pool, nil
  }

  raw, err := s.invoker.Complete(ctx, CompletionRequest{
    Op:        "task_patterns",
    System:    taskPatternsSystemPrompt,
    User:      buildTaskPatternsPrompt(goal, phase),
    MaxTokens: taskPatternsMaxTokens,
    Timeout:   taskPatternsTimeout,
  })
  if err != nil {
    return nil, err
  }

  repaired, err := RepairJSONObject(raw)
  if err != nil {
    return nil, err
  }

  var parsed struct {
    TaskPatterns []types.TaskPattern `json:"task_patterns"`
  }
  if err := json.Unmarshal(repaired, &parsed); err != nil {
    return nil, &ResponseParseError{Reason: fmt.Sprintf("task pattern object has wrong shape: %v", err)}
  }

  pool := ExpandTaskPatterns(parsed.TaskPatterns)
  if len(pool) == 0 {
    s.log.Warn("Model returned no task patterns, using fallback pool", "phase_id", phase.ID)
    pool = FallbackTaskPool(phase.Title, goal.DailyTimeCommitment)
  }
  return pool, nil
}

// curatedTaskPool returns the sample tasks the stored plan carries for
// this phase. Template-built roadmaps have one per phase; model-built
// plans leave the field empty.
func curatedTaskPool(roadmap *types.Roadmap, phase *types.Phase) []types.TaskBlueprint {
  var plan types.PlanDocument
  if err := json.Unmarshal(roadmap.GeneratedPlan, &plan); err != nil {
    return nil
  }
  for _, doc := range plan.Phases {
    if doc.PhaseID == phase.PhaseKey {
      return doc.SampleTasks
    }
  }
  return nil
}

func (s *taskGenerationService) GetTasksForPhase(ctx context.Context, phaseID uuid.UUID) ([]*types.Task, error) {
  phase, _, _, err := s.loadPhaseForCaller(ctx, phaseID)
  if err != nil {
    return nil, err
  }
  tasks, err := s.taskRepo.GetByPhaseID(ctx, nil, phase.ID)
  if err != nil {
    return nil, fmt.Errorf("load tasks: %w", err)
  }
  return tasks, nil
}

func (s *taskGenerationService) CompleteTask(ctx context.Context, taskID uuid.UUID) (*types.Task, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("not authenticated")
  }

  tasks, err := s.taskRepo.GetByIDs(ctx, nil, []uuid.UUID{taskID})
  if err != nil {
    return nil, fmt.Errorf("load task: %w", err)
  }
  if len(tasks) == 0 || tasks[0] == nil {
    return nil, &NotFoundError{Resource: "task"}
  }
  task := tasks[0]

  roadmaps, err := s.roadmapRepo.GetByIDs(ctx, nil, []uuid.UUID{task.RoadmapID})
  if err != nil {
    return nil, fmt.Errorf("load roadmap: %w", err)
  }
  if len(roadmaps) == 0 || roadmaps[0] == nil || roadmaps[0].UserID != rd.UserID {
    return nil, &NotFoundError{Resource: "task"}
  }

  completedAt := time.Now()
  if err := s.taskRepo.MarkCompleted(ctx, nil, task.ID, completedAt); err != nil {
    return nil, fmt.Errorf("complete task: %w", err)
  }
  task.Completed = true
  task.CompletedAt = &completedAt
  return task, nil
}

// loadPhaseForCaller resolves phase -> roadmap -> goal with ownership
// checks; anything missing or foreign surfaces as NotFoundError.
func (s *taskGenerationService) loadPhaseForCaller(ctx context.Context, phaseID uuid.UUID) (*types.Phase, *types.Roadmap, *types.Goal, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, nil, nil, fmt.Errorf("not authenticated")
  }

  phases, err := s.phaseRepo.GetByIDs(ctx, nil, []uuid.UUID{phaseID})
  if err != nil {
    return nil, nil, nil, fmt.Errorf("load phase: %w", err)
  }
  if len(phases) == 0 || phases[0] == nil {
    return nil, nil, nil, &NotFoundError{Resource: "phase"}
  }
  phase := phases[0]

  roadmaps, err := s.roadmapRepo.GetByIDs(ctx, nil, []uuid.UUID{phase.RoadmapID})
  if err != nil {
    return nil, nil, nil, fmt.Errorf("load roadmap: %w", err)
  }
  if len(roadmaps) == 0 || roadmaps[0] == nil || roadmaps[0].UserID != rd.UserID {
    return nil, nil, nil, &NotFoundError{Resource: "phase"}
  }
  roadmap := roadmaps[0]

  goals, err := s.goalRepo.GetByIDs(ctx, nil, []uuid.UUID{roadmap.GoalID})
  if err != nil {
    return nil, nil, nil, fmt.Errorf("load goal: %w", err)
  }
  if len(goals) == 0 || goals[0] == nil {
    return nil, nil, nil, &NotFoundError{Resource: "goal"}
  }
  return phase, roadmap, goals[0], nil
}
