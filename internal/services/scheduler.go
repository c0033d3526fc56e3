package services

import (
  "fmt"
  "time"

  "github.com/yungbote/goalpath-backend/internal/types"
)

// ScheduledPhase is a phase document with its absolute date range and
// position assigned.
type ScheduledPhase struct {
  types.PhaseDocument
  PhaseNumber int
  PhaseKey    string
  StartDate   time.Time
  EndDate     time.Time
}

// dateOnly normalizes to a UTC calendar date so arithmetic never shifts a
// date across a day boundary through local-time rounding.
func dateOnly(t time.Time) time.Time {
  return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SchedulePhases converts ordered phase documents into contiguous,
// non-overlapping date ranges anchored at the goal's start date:
// phase[0] starts at the anchor, each phase spans duration_weeks*7 days,
// and each next phase starts the day after the previous one ends. Pure and
// deterministic.
func SchedulePhases(anchor time.Time, docs []types.PhaseDocument) ([]ScheduledPhase, error) {
  if len(docs) == 0 {
    return nil, &SchedulingInvariantViolation{Reason: "empty phase list"}
  }

  out := make([]ScheduledPhase, 0, len(docs))
  start := dateOnly(anchor)
  for i, doc := range docs {
    weeks := doc.DurationWeeks
    if weeks < 1 {
      weeks = 1
    }
    end := start.AddDate(0, 0, weeks*7-1)

    key := doc.PhaseID
    if key == "" {
      key = fmt.Sprintf("phase-%d", i+1)
    }

    scheduled := ScheduledPhase{
      PhaseDocument: doc,
      PhaseNumber:   i + 1,
      PhaseKey:      key,
      StartDate:     start,
      EndDate:       end,
    }
    scheduled.PhaseDocument.PhaseID = key
    scheduled.PhaseDocument.DurationWeeks = weeks
    out = append(out, scheduled)

    start = end.AddDate(0, 0, 1)
  }
  return out, nil
}

// BuildMilestones derives one checkpoint per phase end. Milestones are
// computed from the schedule, never stored independently of it.
func BuildMilestones(phases []ScheduledPhase) []types.Milestone {
  out := make([]types.Milestone, 0, len(phases))
  for _, p := range phases {
    out = append(out, types.Milestone{
      Title:    "Complete " + p.Title,
      PhaseKey: p.PhaseKey,
      Date:     p.EndDate,
    })
  }
  return out
}
