package services

import (
  "testing"
  "time"
)

func TestCreateGoal_KeepsCalendarDateFromOffsetTimezone(t *testing.T) {
  env := newTestEnv(t)
  svc := NewGoalService(env.db, testLogger(t), env.goalRepo)

  loc := time.FixedZone("UTC+2", 2*60*60)
  start := time.Date(2024, time.January, 15, 0, 0, 0, 0, loc)
  goal, err := svc.CreateGoal(env.ctx, CreateGoalInput{
    Title:     "Learn woodworking",
    StartDate: &start,
  })
  if err != nil {
    t.Fatalf("CreateGoal: %v", err)
  }

  want := date(2024, time.January, 15)
  if !goal.StartDate.Equal(want) {
    t.Fatalf("start date %v, want %v", goal.StartDate, want)
  }
}

func TestCreateGoal_TargetBeforeOffsetStartRejected(t *testing.T) {
  env := newTestEnv(t)
  svc := NewGoalService(env.db, testLogger(t), env.goalRepo)

  loc := time.FixedZone("UTC+2", 2*60*60)
  start := time.Date(2024, time.March, 2, 0, 0, 0, 0, loc)
  target := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
  if _, err := svc.CreateGoal(env.ctx, CreateGoalInput{
    Title:      "Learn woodworking",
    StartDate:  &start,
    TargetDate: &target,
  }); err == nil {
    t.Fatalf("target on the calendar day before the start was accepted")
  }
}
