package services

import (
  "reflect"
  "testing"
  "time"

  "github.com/yungbote/goalpath-backend/internal/types"
)

func weekdays(days ...time.Weekday) map[time.Weekday]bool {
  out := make(map[time.Weekday]bool)
  for _, d := range days {
    out[d] = true
  }
  return out
}

func TestAllocateTaskDates_RotatesPoolOverEnabledDays(t *testing.T) {
  // 2024-01-15 is a Monday; the range covers one full week.
  start := date(2024, time.January, 15)
  end := date(2024, time.January, 21)
  pool := []types.TaskBlueprint{
    {Title: "A", Type: "study"},
    {Title: "B", Type: "practice"},
  }

  got := AllocateTaskDates(start, end, weekdays(time.Monday, time.Wednesday, time.Friday), pool)
  if len(got) != 3 {
    t.Fatalf("expected 3 tasks, got %d", len(got))
  }

  wantDates := []time.Time{
    date(2024, time.January, 15),
    date(2024, time.January, 17),
    date(2024, time.January, 19),
  }
  wantTitles := []string{"A", "B", "A"}
  for i, task := range got {
    if !task.Date.Equal(wantDates[i]) {
      t.Fatalf("task %d date %v, want %v", i, task.Date, wantDates[i])
    }
    if task.Blueprint.Title != wantTitles[i] {
      t.Fatalf("task %d blueprint %q, want %q", i, task.Blueprint.Title, wantTitles[i])
    }
  }
}

func TestAllocateTaskDates_Deterministic(t *testing.T) {
  start := date(2024, time.May, 6)
  end := date(2024, time.June, 2)
  enabled := weekdays(time.Tuesday, time.Thursday, time.Saturday)
  pool := FallbackTaskPool("Core Skills", 45)

  first := AllocateTaskDates(start, end, enabled, pool)
  second := AllocateTaskDates(start, end, enabled, pool)
  if !reflect.DeepEqual(first, second) {
    t.Fatalf("identical inputs produced different allocations")
  }
}

func TestAllocateTaskDates_EmptyAvailabilityYieldsNoTasks(t *testing.T) {
  got := AllocateTaskDates(
    date(2024, time.January, 1),
    date(2024, time.January, 31),
    map[time.Weekday]bool{},
    FallbackTaskPool("x", 30),
  )
  if len(got) != 0 {
    t.Fatalf("expected zero tasks, got %d", len(got))
  }
}

func TestAllocateTaskDates_EmptyPoolYieldsNoTasks(t *testing.T) {
  got := AllocateTaskDates(
    date(2024, time.January, 1),
    date(2024, time.January, 7),
    weekdays(time.Monday),
    nil,
  )
  if got != nil {
    t.Fatalf("expected nil, got %d tasks", len(got))
  }
}

func TestPriorityForType_Table(t *testing.T) {
  cases := map[string]int{
    "study":    5,
    "practice": 4,
    "exercise": 3,
    "review":   2,
    "other":    3,
    "":         3,
  }
  for taskType, want := range cases {
    if got := PriorityForType(taskType); got != want {
      t.Fatalf("PriorityForType(%q) = %d, want %d", taskType, got, want)
    }
  }
}

func TestExpandTaskPatterns_RepeatsPerWeek(t *testing.T) {
  pool := ExpandTaskPatterns([]types.TaskPattern{
    {Title: "long", Type: "study", DurationWeeks: 3},
    {Title: "short", Type: "review", DurationWeeks: 0},
  })
  if len(pool) != 4 {
    t.Fatalf("expected 4 blueprints, got %d", len(pool))
  }
  longCount := 0
  for _, bp := range pool {
    if bp.Title == "long" {
      longCount++
    }
  }
  if longCount != 3 {
    t.Fatalf("expected long pattern 3 times, got %d", longCount)
  }
}

func TestFallbackTaskPool_CoversTaskTypes(t *testing.T) {
  pool := FallbackTaskPool("Phase One", 40)
  if len(pool) == 0 {
    t.Fatalf("fallback pool is empty")
  }
  seen := make(map[string]bool)
  for _, bp := range pool {
    seen[bp.Type] = true
    if bp.EstimatedMinutes <= 0 {
      t.Fatalf("blueprint %q has no time estimate", bp.Title)
    }
  }
  for _, want := range []string{"study", "practice", "exercise", "review"} {
    if !seen[want] {
      t.Fatalf("fallback pool missing type %q", want)
    }
  }
}
