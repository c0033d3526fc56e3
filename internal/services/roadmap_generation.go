package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/repos"
  "github.com/yungbote/goalpath-backend/internal/requestdata"
  "github.com/yungbote/goalpath-backend/internal/sse"
  "github.com/yungbote/goalpath-backend/internal/ssedata"
  "github.com/yungbote/goalpath-backend/internal/types"
)

// A generated plan is incomplete unless it carries at least this many
// phases. Checked on the overview's declared count and again on the
// actual phase list.
const minPhaseCount = 3

const (
  overviewMaxTokens = 800
  overviewTimeout   = 30 * time.Second
  stagesMaxTokens   = 4000
  stagesTimeout     = 120 * time.Second
)

type RoadmapGenerationService interface {
  // CreatePlan builds a roadmap for the goal: instantly from a template
  // when the title matches the catalog, otherwise through the two-stage
  // model path. The returned roadmap's generation_status says which point
  // of the lifecycle the caller observed.
  CreatePlan(ctx context.Context, goalID uuid.UUID) (*types.Roadmap, error)
}

type roadmapGenerationService struct {
  db  *gorm.DB
  log *logger.Logger

  sseHub *sse.SSEHub

  goalRepo    repos.GoalRepo
  roadmapRepo repos.RoadmapRepo
  phaseRepo   repos.PhaseRepo

  catalog *TemplateCatalog
  invoker *Invoker
}

func NewRoadmapGenerationService(
  db *gorm.DB,
  baseLog *logger.Logger,
  sseHub *sse.SSEHub,
  goalRepo repos.GoalRepo,
  roadmapRepo repos.RoadmapRepo,
  phaseRepo repos.PhaseRepo,
  catalog *TemplateCatalog,
  invoker *Invoker,
) RoadmapGenerationService {
  return &roadmapGenerationService{
    db:          db,
    log:         baseLog.With("service", "RoadmapGenerationService"),
    sseHub:      sseHub,
    goalRepo:    goalRepo,
    roadmapRepo: roadmapRepo,
    phaseRepo:   phaseRepo,
    catalog:     catalog,
    invoker:     invoker,
  }
}

func (s *roadmapGenerationService) CreatePlan(ctx context.Context, goalID uuid.UUID) (*types.Roadmap, error) {
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
  goal := goals[0]

  if tpl := s.catalog.Match(goal.Title); tpl != nil {
    return s.createFromTemplate(ctx, goal, tpl)
  }
  return s.createFromModel(ctx, goal)
}

// ---- template path: synchronous, no model involved ----

func (s *roadmapGenerationService) createFromTemplate(ctx context.Context, goal *types.Goal, tpl *types.Template) (*types.Roadmap, error) {
  personalized := PersonalizeTemplate(tpl, goal.CurrentLevel, goal.DailyTimeCommitment)

  docs := make([]types.PhaseDocument, 0, len(personalized.Phases))
  for _, bp := range personalized.Phases {
    docs = append(docs, types.PhaseDocument{
      Title:              bp.Title,
      Description:        bp.Description,
      DurationWeeks:      bp.DurationWeeks,
      SkillsToLearn:      bp.SkillsToLearn,
      LearningObjectives: bp.LearningObjectives,
      KeyConcepts:        bp.KeyConcepts,
      Resources:          bp.Resources,
      SampleTasks:        seedBlueprints(bp.SampleTasks),
    })
  }

  scheduled, err := SchedulePhases(goal.StartDate, docs)
  if err != nil {
    return nil, err
  }

  totalWeeks := 0
  planDocs := make([]types.PhaseDocument, 0, len(scheduled))
  for _, sp := range scheduled {
    totalWeeks += sp.DurationWeeks
    planDocs = append(planDocs, sp.PhaseDocument)
  }

  plan := types.PlanDocument{
    Title:              personalized.Title,
    Overview:           personalized.Overview,
    TotalWeeks:         totalWeeks,
    TotalHours:         personalized.TotalHours,
    ExpectedPhaseCount: len(planDocs),
    Prerequisites:      personalized.Prerequisites,
    SuccessMetrics:     personalized.SuccessMetrics,
    Phases:             planDocs,
  }

  now := time.Now()
  roadmap := &types.Roadmap{
    ID:               uuid.New(),
    UserID:           goal.UserID,
    GoalID:           goal.ID,
    GeneratedPlan:    mustJSON(plan),
    Milestones:       mustJSON(BuildMilestones(scheduled)),
    ModelIdentifier:  "template:" + tpl.ID,
    GenerationStatus: types.RoadmapStatusCompleted,
    CreatedAt:        now,
    UpdatedAt:        now,
  }

  err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := s.roadmapRepo.Create(ctx, tx, []*types.Roadmap{roadmap}); err != nil {
      return fmt.Errorf("create roadmap: %w", err)
    }
    if _, err := s.phaseRepo.Create(ctx, tx, phaseRows(roadmap.ID, scheduled)); err != nil {
      return fmt.Errorf("create phases: %w", err)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  s.broadcast(ctx, goal.UserID, sse.SSEEventRoadmapCreated, map[string]any{"roadmap": roadmap})
  s.log.Info("Roadmap created from template",
    "template", tpl.ID,
    "goal_id", goal.ID,
    "roadmap_id", roadmap.ID,
    "phases", len(scheduled),
  )
  return roadmap, nil
}

// ---- model path: overview synchronously, phases detached ----

func (s *roadmapGenerationService) createFromModel(ctx context.Context, goal *types.Goal) (*types.Roadmap, error) {
  now := time.Now()
  roadmap := &types.Roadmap{
    ID:               uuid.New(),
    UserID:           goal.UserID,
    GoalID:           goal.ID,
    GeneratedPlan:    mustJSON(types.PlanDocument{}),
    Milestones:       mustJSON([]types.Milestone{}),
    ModelIdentifier:  s.invoker.ModelName(),
    GenerationStatus: types.RoadmapStatusPending,
    CreatedAt:        now,
    UpdatedAt:        now,
  }
  if _, err := s.roadmapRepo.Create(ctx, nil, []*types.Roadmap{roadmap}); err != nil {
    return nil, fmt.Errorf("create roadmap: %w", err)
  }
  s.broadcast(ctx, goal.UserID, sse.SSEEventRoadmapCreated, map[string]any{"roadmap": roadmap})

  plan, err := s.generateOverview(ctx, goal)
  if err != nil {
    s.failRoadmap(ctx, roadmap, "overview", err)
    return nil, err
  }

  roadmap.GeneratedPlan = mustJSON(plan)
  roadmap.GenerationStatus = types.RoadmapStatusGeneratingPhases
  if err := s.roadmapRepo.SetStatus(ctx, nil, roadmap.ID, types.RoadmapStatusGeneratingPhases, map[string]interface{}{
    "generated_plan": roadmap.GeneratedPlan,
  }); err != nil {
    return nil, fmt.Errorf("persist overview: %w", err)
  }
  s.broadcastRoadmap(ctx, roadmap, sse.SSEEventRoadmapGenerationProgress, map[string]any{
    "roadmap_id": roadmap.ID,
    "status":     types.RoadmapStatusGeneratingPhases,
  })

  // Detached continuation: the caller gets the roadmap back now and polls
  // generation_status; the phase generation writes its outcome to storage.
  // The request's SSE buffer is flushed when the handler returns, so the
  // continuation must not append to it.
  go s.generatePhases(ssedata.Detach(context.WithoutCancel(ctx)), goal, roadmap, plan)

  return roadmap, nil
}

func (s *roadmapGenerationService) generateOverview(ctx context.Context, goal *types.Goal) (*types.PlanDocument, error) {
  raw, err := s.invoker.Complete(ctx, CompletionRequest{
    Op:        "overview",
    System:    overviewSystemPrompt,
    User:      buildOverviewPrompt(goal),
    MaxTokens: overviewMaxTokens,
    Timeout:   overviewTimeout,
  })
  if err != nil {
    return nil, err
  }

  repaired, err := RepairJSONObject(raw)
  if err != nil {
    return nil, err
  }

  var plan types.PlanDocument
  if err := json.Unmarshal(repaired, &plan); err != nil {
    return nil, &ResponseParseError{Reason: fmt.Sprintf("overview object has wrong shape: %v", err)}
  }
  if plan.Title == "" || plan.Overview == "" {
    return nil, &IncompleteResponseError{Reason: "overview missing title or overview text"}
  }
  if plan.ExpectedPhaseCount < minPhaseCount {
    return nil, &IncompleteResponseError{
      Reason: fmt.Sprintf("overview declares %d phases, need at least %d", plan.ExpectedPhaseCount, minPhaseCount),
    }
  }
  // Overview never carries phases; the stages call owns that field.
  plan.Phases = nil
  return &plan, nil
}

// generatePhases runs as a background continuation. Whatever happens, it
// terminates in a storage write; it must never panic out of the goroutine.
func (s *roadmapGenerationService) generatePhases(ctx context.Context, goal *types.Goal, roadmap *types.Roadmap, plan *types.PlanDocument) {
  defer func() {
    if r := recover(); r != nil {
      s.log.Error("Phase generation panicked", "roadmap_id", roadmap.ID, "panic", r)
      s.failRoadmap(ctx, roadmap, "phases", fmt.Errorf("internal error: %v", r))
    }
  }()

  raw, err := s.invoker.Complete(ctx, CompletionRequest{
    Op:        "stages",
    System:    stagesSystemPrompt,
    User:      buildStagesPrompt(goal, plan),
    MaxTokens: stagesMaxTokens,
    Timeout:   stagesTimeout,
  })
  if err != nil {
    s.failRoadmap(ctx, roadmap, "phases", err)
    return
  }

  repaired, err := RepairJSONObject(raw)
  if err != nil {
    s.failRoadmap(ctx, roadmap, "phases", err)
    return
  }

  var stages struct {
    Phases []types.PhaseDocument `json:"phases"`
  }
  if err := json.Unmarshal(repaired, &stages); err != nil {
    s.failRoadmap(ctx, roadmap, "phases", &ResponseParseError{Reason: fmt.Sprintf("stages object has wrong shape: %v", err)})
    return
  }
  if len(stages.Phases) < minPhaseCount {
    s.failRoadmap(ctx, roadmap, "phases", &IncompleteResponseError{
      Reason: fmt.Sprintf("model returned %d phases, need at least %d", len(stages.Phases), minPhaseCount),
    })
    return
  }

  scheduled, err := SchedulePhases(goal.StartDate, stages.Phases)
  if err != nil {
    s.failRoadmap(ctx, roadmap, "phases", err)
    return
  }

  totalWeeks := 0
  planDocs := make([]types.PhaseDocument, 0, len(scheduled))
  for _, sp := range scheduled {
    totalWeeks += sp.DurationWeeks
    planDocs = append(planDocs, sp.PhaseDocument)
  }
  plan.Phases = planDocs
  if plan.TotalWeeks == 0 {
    plan.TotalWeeks = totalWeeks
  }

  // Two independent model calls produced this roadmap.
  model := s.invoker.ModelName()
  composite := model + "+" + model

  err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := s.phaseRepo.Create(ctx, tx, phaseRows(roadmap.ID, scheduled)); err != nil {
      return fmt.Errorf("create phases: %w", err)
    }
    return s.roadmapRepo.SetStatus(ctx, tx, roadmap.ID, types.RoadmapStatusCompleted, map[string]interface{}{
      "generated_plan":   mustJSON(plan),
      "milestones":       mustJSON(BuildMilestones(scheduled)),
      "model_identifier": composite,
    })
  })
  if err != nil {
    s.failRoadmap(ctx, roadmap, "phases", fmt.Errorf("persist phases: %w", err))
    return
  }

  s.broadcastRoadmap(ctx, roadmap, sse.SSEEventRoadmapGenerationCompleted, map[string]any{
    "roadmap_id": roadmap.ID,
    "phases":     len(scheduled),
  })
  s.log.Info("Roadmap generation completed",
    "roadmap_id", roadmap.ID,
    "goal_id", goal.ID,
    "phases", len(scheduled),
  )
}

// failRoadmap records a failure on the roadmap row. The guarded status
// update keeps terminal states terminal, so a late failure can never
// undo a completed roadmap.
func (s *roadmapGenerationService) failRoadmap(ctx context.Context, roadmap *types.Roadmap, stage string, cause error) {
  if err := s.roadmapRepo.SetStatus(ctx, nil, roadmap.ID, types.RoadmapStatusFailed, map[string]interface{}{
    "error": cause.Error(),
  }); err != nil {
    s.log.Error("Failed to record roadmap failure", "roadmap_id", roadmap.ID, "error", err)
  }
  s.broadcastRoadmap(ctx, roadmap, sse.SSEEventRoadmapGenerationFailed, map[string]any{
    "roadmap_id": roadmap.ID,
    "stage":      stage,
    "error":      cause.Error(),
  })
  s.log.Warn("Roadmap generation failed",
    "roadmap_id", roadmap.ID,
    "stage", stage,
    "error", cause.Error(),
  )
}

// send queues the message on the request's SSE buffer when one is
// attached; the handler flushes it after the response commits. Detached
// continuations and non-HTTP callers go straight to the hub.
func (s *roadmapGenerationService) send(ctx context.Context, msg sse.SSEMessage) {
  if ssd := ssedata.GetSSEData(ctx); ssd != nil {
    ssd.AppendMessage(msg)
    return
  }
  s.sseHub.Broadcast(msg)
}

func (s *roadmapGenerationService) broadcast(ctx context.Context, userID uuid.UUID, event sse.SSEEvent, data any) {
  s.send(ctx, sse.SSEMessage{
    Channel: userID.String(),
    Event:   event,
    Data:    data,
  })
}

// Lifecycle events go to the user channel and the per-roadmap channel.
func (s *roadmapGenerationService) broadcastRoadmap(ctx context.Context, roadmap *types.Roadmap, event sse.SSEEvent, data any) {
  s.broadcast(ctx, roadmap.UserID, event, data)
  s.send(ctx, sse.SSEMessage{
    Channel: sse.RoadmapChannel(roadmap.ID),
    Event:   event,
    Data:    data,
  })
}

func phaseRows(roadmapID uuid.UUID, scheduled []ScheduledPhase) []*types.Phase {
  now := time.Now()
  rows := make([]*types.Phase, 0, len(scheduled))
  for _, sp := range scheduled {
    rows = append(rows, &types.Phase{
      ID:                 uuid.New(),
      RoadmapID:          roadmapID,
      PhaseNumber:        sp.PhaseNumber,
      PhaseKey:           sp.PhaseKey,
      Title:              sp.Title,
      Description:        sp.Description,
      DurationWeeks:      sp.DurationWeeks,
      StartDate:          sp.StartDate,
      EndDate:            sp.EndDate,
      SkillsToLearn:      stringListJSON(sp.SkillsToLearn),
      LearningObjectives: stringListJSON(sp.LearningObjectives),
      KeyConcepts:        stringListJSON(sp.KeyConcepts),
      Resources:          stringListJSON(sp.Resources),
      CreatedAt:          now,
      UpdatedAt:          now,
    })
  }
  return rows
}
