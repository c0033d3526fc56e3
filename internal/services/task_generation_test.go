package services

import (
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/yungbote/goalpath-backend/internal/ssedata"
)

func (env *testEnv) taskService(t *testing.T, client ModelClient) TaskGenerationService {
  t.Helper()
  log := testLogger(t)
  return NewTaskGenerationService(
    env.db, log, env.hub,
    env.goalRepo, env.roadmapRepo, env.phaseRepo, env.taskRepo,
    NewInvoker(log, client, time.Millisecond), NewPhaseLock(log),
  )
}

func TestGenerateTasks_TemplatePhaseUsesCuratedPool(t *testing.T) {
  env := newTestEnv(t)
  goal := env.seedGoal(t, "learn spanish")
  client := &scriptedModelClient{}

  roadmap, err := env.generationService(t, client).CreatePlan(env.ctx, goal.ID)
  if err != nil {
    t.Fatalf("CreatePlan: %v", err)
  }
  phases, err := env.phaseRepo.GetByRoadmapIDs(env.ctx, nil, []uuid.UUID{roadmap.ID})
  if err != nil || len(phases) == 0 {
    t.Fatalf("load phases: %v (%d rows)", err, len(phases))
  }

  tasks, err := env.taskService(t, client).GenerateTasksForPhase(env.ctx, phases[0].ID)
  if err != nil {
    t.Fatalf("GenerateTasksForPhase: %v", err)
  }
  if len(tasks) == 0 {
    t.Fatalf("curated pool produced no tasks")
  }
  if client.callCount() != 0 {
    t.Fatalf("curated phase still called the model %d times", client.callCount())
  }

  curated := map[string]bool{
    "Drill the sound inventory":  true,
    "Learn 15 new core words":    true,
    "Record a self-introduction": true,
  }
  for _, task := range tasks {
    if !curated[task.Title] {
      t.Fatalf("task %q is not from the phase's curated pool", task.Title)
    }
  }
}

func TestGenerateTasks_EventBufferedOnRequestContext(t *testing.T) {
  env := newTestEnv(t)
  goal := env.seedGoal(t, "learn spanish")
  client := &scriptedModelClient{}

  roadmap, err := env.generationService(t, client).CreatePlan(env.ctx, goal.ID)
  if err != nil {
    t.Fatalf("CreatePlan: %v", err)
  }
  phases, err := env.phaseRepo.GetByRoadmapIDs(env.ctx, nil, []uuid.UUID{roadmap.ID})
  if err != nil || len(phases) == 0 {
    t.Fatalf("load phases: %v (%d rows)", err, len(phases))
  }

  ctx := ssedata.WithSSEData(env.ctx)
  if _, err := env.taskService(t, client).GenerateTasksForPhase(ctx, phases[0].ID); err != nil {
    t.Fatalf("GenerateTasksForPhase: %v", err)
  }

  ssd := ssedata.GetSSEData(ctx)
  if ssd == nil || len(ssd.Messages) != 1 {
    t.Fatalf("expected one buffered message, got %+v", ssd)
  }
  if ssd.Messages[0].Channel != env.userID.String() {
    t.Fatalf("buffered channel %q, want the user channel", ssd.Messages[0].Channel)
  }
}
