package services

import (
  "math"
  "strings"

  "github.com/yungbote/goalpath-backend/internal/types"
)

// Time multiplier bands on the user's daily time budget. A faster cadence
// compresses the plan, a slower one stretches it.
func timeMultiplier(dailyMinutes int) float64 {
  switch {
  case dailyMinutes >= 60:
    return 0.75
  case dailyMinutes >= 30:
    return 1.0
  default:
    return 1.3
  }
}

// Fixed phrasing substitutions applied to the overview, keyed on the
// user's stated level.
var beginnerPhrasing = [][2]string{
  {"Master", "Get comfortable with"},
  {"Expect to write code on every available day", "Aim to write a little code on each available day"},
  {"confident conversation", "comfortable everyday conversation"},
  {"Intensity scales", "Intensity gently scales"},
}

var advancedPhrasing = [][2]string{
  {"from first words", "from a quick refresher"},
  {"From first program", "From a fast review"},
  {"from zero", "from your current base"},
}

// PersonalizeTemplate derives a copy of the template adjusted to the
// user's level and daily time budget. Phase durations scale by the time
// multiplier (rounded up, never below one week); the catalog entry itself
// is never mutated.
func PersonalizeTemplate(tpl *types.Template, currentLevel string, dailyMinutes int) *types.Template {
  mult := timeMultiplier(dailyMinutes)

  out := *tpl
  out.TotalHours = int(math.Ceil(float64(tpl.TotalHours) * mult))
  out.Prerequisites = append([]string(nil), tpl.Prerequisites...)
  out.SuccessMetrics = append([]string(nil), tpl.SuccessMetrics...)
  out.Overview = personalizeOverview(tpl.Overview, currentLevel)

  out.Phases = make([]types.PhaseBlueprint, len(tpl.Phases))
  for i, phase := range tpl.Phases {
    p := phase
    weeks := int(math.Ceil(float64(phase.DurationWeeks) * mult))
    if weeks < 1 {
      weeks = 1
    }
    p.DurationWeeks = weeks
    p.SkillsToLearn = append([]string(nil), phase.SkillsToLearn...)
    p.LearningObjectives = append([]string(nil), phase.LearningObjectives...)
    p.KeyConcepts = append([]string(nil), phase.KeyConcepts...)
    p.Resources = append([]string(nil), phase.Resources...)
    p.SampleTasks = append([]types.TaskSeed(nil), phase.SampleTasks...)
    out.Phases[i] = p
  }
  return &out
}

func personalizeOverview(overview string, currentLevel string) string {
  level := strings.ToLower(strings.TrimSpace(currentLevel))
  var pairs [][2]string
  switch {
  case strings.Contains(level, "beginner"), strings.Contains(level, "new"), level == "":
    pairs = beginnerPhrasing
  case strings.Contains(level, "advanced"), strings.Contains(level, "expert"):
    pairs = advancedPhrasing
  default:
    return overview
  }
  for _, pair := range pairs {
    overview = strings.ReplaceAll(overview, pair[0], pair[1])
  }
  return overview
}
