package services

import (
  "errors"
  "testing"
  "time"

  "github.com/yungbote/goalpath-backend/internal/types"
)

func date(y int, m time.Month, d int) time.Time {
  return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSchedulePhases_ContiguousRanges(t *testing.T) {
  anchor := date(2024, time.January, 15)
  docs := []types.PhaseDocument{
    {PhaseID: "phase-1", Title: "Foundations", DurationWeeks: 2},
    {PhaseID: "phase-2", Title: "Core Skills", DurationWeeks: 3},
  }

  scheduled, err := SchedulePhases(anchor, docs)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(scheduled) != 2 {
    t.Fatalf("expected 2 phases, got %d", len(scheduled))
  }

  if !scheduled[0].StartDate.Equal(date(2024, time.January, 15)) {
    t.Fatalf("phase 1 start: got %v", scheduled[0].StartDate)
  }
  if !scheduled[0].EndDate.Equal(date(2024, time.January, 28)) {
    t.Fatalf("phase 1 end: got %v", scheduled[0].EndDate)
  }
  if !scheduled[1].StartDate.Equal(date(2024, time.January, 29)) {
    t.Fatalf("phase 2 start: got %v", scheduled[1].StartDate)
  }
  if !scheduled[1].EndDate.Equal(date(2024, time.February, 18)) {
    t.Fatalf("phase 2 end: got %v", scheduled[1].EndDate)
  }
}

func TestSchedulePhases_NoGapsNoOverlap(t *testing.T) {
  anchor := date(2025, time.March, 3)
  docs := []types.PhaseDocument{
    {Title: "a", DurationWeeks: 1},
    {Title: "b", DurationWeeks: 4},
    {Title: "c", DurationWeeks: 2},
    {Title: "d", DurationWeeks: 6},
  }

  scheduled, err := SchedulePhases(anchor, docs)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  for i := 1; i < len(scheduled); i++ {
    want := scheduled[i-1].EndDate.AddDate(0, 0, 1)
    if !scheduled[i].StartDate.Equal(want) {
      t.Fatalf("phase %d starts %v, want %v", i+1, scheduled[i].StartDate, want)
    }
  }
  for i, sp := range scheduled {
    days := int(sp.EndDate.Sub(sp.StartDate).Hours()/24) + 1
    if days != docs[i].DurationWeeks*7 {
      t.Fatalf("phase %d spans %d days, want %d", i+1, days, docs[i].DurationWeeks*7)
    }
  }
}

func TestSchedulePhases_EmptyListIsInvariantViolation(t *testing.T) {
  _, err := SchedulePhases(date(2024, time.January, 1), nil)
  var sv *SchedulingInvariantViolation
  if !errors.As(err, &sv) {
    t.Fatalf("expected SchedulingInvariantViolation, got %v", err)
  }
}

func TestSchedulePhases_ZeroWeeksClampedToOne(t *testing.T) {
  scheduled, err := SchedulePhases(date(2024, time.January, 1), []types.PhaseDocument{
    {Title: "a", DurationWeeks: 0},
  })
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if scheduled[0].DurationWeeks != 1 {
    t.Fatalf("expected clamped duration 1, got %d", scheduled[0].DurationWeeks)
  }
  if !scheduled[0].EndDate.Equal(date(2024, time.January, 7)) {
    t.Fatalf("expected one-week span, got end %v", scheduled[0].EndDate)
  }
}

func TestSchedulePhases_MissingKeyGetsPositionalKey(t *testing.T) {
  scheduled, err := SchedulePhases(date(2024, time.January, 1), []types.PhaseDocument{
    {Title: "a", DurationWeeks: 1},
    {PhaseID: "custom", Title: "b", DurationWeeks: 1},
  })
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if scheduled[0].PhaseKey != "phase-1" {
    t.Fatalf("expected phase-1, got %q", scheduled[0].PhaseKey)
  }
  if scheduled[1].PhaseKey != "custom" {
    t.Fatalf("expected custom, got %q", scheduled[1].PhaseKey)
  }
}

func TestSchedulePhases_AnchorTimeOfDayIgnored(t *testing.T) {
  late := time.Date(2024, time.January, 15, 23, 45, 0, 0, time.FixedZone("X", -7*3600))
  scheduled, err := SchedulePhases(late, []types.PhaseDocument{{Title: "a", DurationWeeks: 1}})
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if !scheduled[0].StartDate.Equal(date(2024, time.January, 15)) {
    t.Fatalf("expected start normalized to calendar date, got %v", scheduled[0].StartDate)
  }
}

func TestBuildMilestones_OnePerPhaseEnd(t *testing.T) {
  scheduled, err := SchedulePhases(date(2024, time.June, 1), []types.PhaseDocument{
    {Title: "Basics", DurationWeeks: 2},
    {Title: "Depth", DurationWeeks: 2},
  })
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }

  milestones := BuildMilestones(scheduled)
  if len(milestones) != 2 {
    t.Fatalf("expected 2 milestones, got %d", len(milestones))
  }
  if milestones[0].Title != "Complete Basics" {
    t.Fatalf("unexpected milestone title %q", milestones[0].Title)
  }
  for i, m := range milestones {
    if !m.Date.Equal(scheduled[i].EndDate) {
      t.Fatalf("milestone %d date %v, want phase end %v", i, m.Date, scheduled[i].EndDate)
    }
    if m.PhaseKey != scheduled[i].PhaseKey {
      t.Fatalf("milestone %d key %q, want %q", i, m.PhaseKey, scheduled[i].PhaseKey)
    }
  }
}
