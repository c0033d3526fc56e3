package services

import (
  "fmt"
  "strings"
  "time"

  "github.com/yungbote/goalpath-backend/internal/types"
)

// Prompt builders for the three completion shapes: plan overview, full
// phase list, and per-phase task patterns. Every system prompt pins the
// contract to a single JSON object; the API call additionally enforces
// json_object response format.

const overviewSystemPrompt = `You design personalized learning roadmaps.
Respond with a single JSON object and nothing else, with fields:
"title" (string), "overview" (string, 2-4 sentences),
"total_weeks" (integer), "total_hours" (integer),
"expected_phase_count" (integer, at least 3),
"prerequisites" (array of strings), "success_metrics" (array of strings).`

const stagesSystemPrompt = `You design personalized learning roadmaps.
Respond with a single JSON object and nothing else:
{"phases": [{"phase_id": string, "title": string, "description": string,
"duration_weeks": integer, "skills_to_learn": [string],
"learning_objectives": [string], "key_concepts": [string],
"resources": [string]}]}.
Return at least 3 phases, ordered from first to last.`

const taskPatternsSystemPrompt = `You design concrete daily learning tasks.
Respond with a single JSON object and nothing else:
{"task_patterns": [{"title": string, "description": string,
"type": "study"|"practice"|"exercise"|"review",
"estimated_minutes": integer, "duration_weeks": integer}]}.
Each pattern is one repeatable daily task; duration_weeks says how many
weeks of the phase it should dominate.`

func describeGoal(goal *types.Goal) string {
  var b strings.Builder
  fmt.Fprintf(&b, "Goal: %s\n", goal.Title)
  fmt.Fprintf(&b, "Current level: %s\n", orUnspecified(goal.CurrentLevel))
  fmt.Fprintf(&b, "Daily time budget: %d minutes\n", goal.DailyTimeCommitment)
  fmt.Fprintf(&b, "Start date: %s\n", goal.StartDate.Format("2006-01-02"))
  if goal.TargetDate != nil {
    fmt.Fprintf(&b, "Target date: %s\n", goal.TargetDate.Format("2006-01-02"))
  }
  fmt.Fprintf(&b, "Available days: %s\n", describeWeekdays(goal.EnabledWeekdays()))
  return b.String()
}

func buildOverviewPrompt(goal *types.Goal) string {
  return describeGoal(goal) + "\nProduce the roadmap overview for this goal."
}

func buildStagesPrompt(goal *types.Goal, plan *types.PlanDocument) string {
  var b strings.Builder
  b.WriteString(describeGoal(goal))
  if plan != nil {
    fmt.Fprintf(&b, "\nRoadmap title: %s\n", plan.Title)
    fmt.Fprintf(&b, "Overview: %s\n", plan.Overview)
    if plan.ExpectedPhaseCount > 0 {
      fmt.Fprintf(&b, "Expected number of phases: %d\n", plan.ExpectedPhaseCount)
    }
    if plan.TotalWeeks > 0 {
      fmt.Fprintf(&b, "Total duration: about %d weeks\n", plan.TotalWeeks)
    }
  }
  b.WriteString("\nProduce the full ordered phase list for this roadmap.")
  return b.String()
}

func buildTaskPatternsPrompt(goal *types.Goal, phase *types.Phase) string {
  var b strings.Builder
  b.WriteString(describeGoal(goal))
  fmt.Fprintf(&b, "\nPhase %d: %s\n", phase.PhaseNumber, phase.Title)
  if phase.Description != "" {
    fmt.Fprintf(&b, "Description: %s\n", phase.Description)
  }
  fmt.Fprintf(&b, "Phase dates: %s to %s (%d weeks)\n",
    phase.StartDate.Format("2006-01-02"),
    phase.EndDate.Format("2006-01-02"),
    phase.DurationWeeks,
  )
  if skills := decodeStringList(phase.SkillsToLearn); len(skills) > 0 {
    fmt.Fprintf(&b, "Skills to learn: %s\n", strings.Join(skills, ", "))
  }
  if objectives := decodeStringList(phase.LearningObjectives); len(objectives) > 0 {
    fmt.Fprintf(&b, "Learning objectives: %s\n", strings.Join(objectives, ", "))
  }
  fmt.Fprintf(&b, "\nProduce task patterns for this phase. Each task must fit the %d-minute daily budget.", goal.DailyTimeCommitment)
  return b.String()
}

func describeWeekdays(enabled map[time.Weekday]bool) string {
  if len(enabled) == 0 {
    return "none"
  }
  names := []string{}
  for d := time.Sunday; d <= time.Saturday; d++ {
    if enabled[d] {
      names = append(names, d.String())
    }
  }
  return strings.Join(names, ", ")
}

func orUnspecified(s string) string {
  if strings.TrimSpace(s) == "" {
    return "unspecified"
  }
  return s
}
