package services

import (
  "time"

  "github.com/yungbote/goalpath-backend/internal/types"
)

// Task type to priority. Unrecognized types land in the middle.
var taskTypePriority = map[string]int{
  "study":    5,
  "practice": 4,
  "exercise": 3,
  "review":   2,
}

const defaultTaskPriority = 3

func PriorityForType(taskType string) int {
  if p, ok := taskTypePriority[taskType]; ok {
    return p
  }
  return defaultTaskPriority
}

// ScheduledTask pairs a calendar date with the blueprint assigned to it.
type ScheduledTask struct {
  Date      time.Time
  Blueprint types.TaskBlueprint
}

// AllocateTaskDates walks every calendar day of [start, end], keeps the
// days whose weekday the user enabled (Sunday=0), and assigns the k-th
// kept day blueprint pool[k mod len(pool)]. Deterministic: identical
// inputs always produce the identical list. An empty availability set
// yields zero tasks; that is accepted behavior, not an error.
func AllocateTaskDates(start, end time.Time, enabled map[time.Weekday]bool, pool []types.TaskBlueprint) []ScheduledTask {
  if len(pool) == 0 {
    return nil
  }

  out := []ScheduledTask{}
  k := 0
  for d := dateOnly(start); !d.After(dateOnly(end)); d = d.AddDate(0, 0, 1) {
    if !enabled[d.Weekday()] {
      continue
    }
    out = append(out, ScheduledTask{
      Date:      d,
      Blueprint: pool[k%len(pool)],
    })
    k++
  }
  return out
}

// ExpandTaskPatterns flattens model-generated patterns into the rotating
// pool: a pattern repeats once per week of its stated duration, so longer
// patterns occupy a proportionally larger share of the rotation.
func ExpandTaskPatterns(patterns []types.TaskPattern) []types.TaskBlueprint {
  out := make([]types.TaskBlueprint, 0, len(patterns))
  for _, p := range patterns {
    weeks := p.DurationWeeks
    if weeks < 1 {
      weeks = 1
    }
    bp := types.TaskBlueprint{
      Title:            p.Title,
      Description:      p.Description,
      Type:             p.Type,
      EstimatedMinutes: p.EstimatedMinutes,
    }
    for i := 0; i < weeks; i++ {
      out = append(out, bp)
    }
  }
  return out
}

// FallbackTaskPool is used when the model returns no task patterns for a
// phase.
func FallbackTaskPool(phaseTitle string, dailyMinutes int) []types.TaskBlueprint {
  if dailyMinutes <= 0 {
    dailyMinutes = 30
  }
  return []types.TaskBlueprint{
    {Title: "Study session: " + phaseTitle, Description: "Work through the next section of your learning material.", Type: "study", EstimatedMinutes: dailyMinutes},
    {Title: "Practice session: " + phaseTitle, Description: "Apply what you studied in a hands-on session.", Type: "practice", EstimatedMinutes: dailyMinutes},
    {Title: "Exercise set: " + phaseTitle, Description: "Complete a set of exercises at your current level.", Type: "exercise", EstimatedMinutes: dailyMinutes},
    {Title: "Review notes: " + phaseTitle, Description: "Revisit recent notes and flag anything unclear.", Type: "review", EstimatedMinutes: dailyMinutes / 2},
    {Title: "Self-check: " + phaseTitle, Description: "Test yourself on this phase's key concepts.", Type: "exercise", EstimatedMinutes: dailyMinutes / 2},
  }
}
