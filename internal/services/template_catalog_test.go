package services

import (
  "strings"
  "testing"
)

func testCatalog(t *testing.T) *TemplateCatalog {
  t.Helper()
  tc, err := NewTemplateCatalog(testLogger(t))
  if err != nil {
    t.Fatalf("catalog init: %v", err)
  }
  return tc
}

func TestTemplateCatalog_LoadsEmbeddedTemplates(t *testing.T) {
  tc := testCatalog(t)
  for _, id := range []string{"language-learning", "programming-fundamentals", "fitness-habit"} {
    tpl := tc.Get(id)
    if tpl == nil {
      t.Fatalf("template %s missing", id)
    }
    if len(tpl.Phases) < 3 {
      t.Fatalf("template %s has %d phases, want at least 3", id, len(tpl.Phases))
    }
    for _, phase := range tpl.Phases {
      if phase.DurationWeeks < 1 {
        t.Fatalf("template %s phase %q has no duration", id, phase.Title)
      }
      if len(phase.SampleTasks) == 0 {
        t.Fatalf("template %s phase %q has no sample tasks", id, phase.Title)
      }
    }
  }
}

func TestTemplateCatalog_MatchByKeyPhrase(t *testing.T) {
  tc := testCatalog(t)
  cases := map[string]string{
    "Learn Spanish":                       "language-learning",
    "I want to LEARN SPANISH this year":   "language-learning",
    "learn to code":                       "programming-fundamentals",
    "  Learn Python  ":                    "programming-fundamentals",
    "get fit before summer":               "fitness-habit",
  }
  for title, wantID := range cases {
    tpl := tc.Match(title)
    if tpl == nil {
      t.Fatalf("title %q matched nothing", title)
    }
    if tpl.ID != wantID {
      t.Fatalf("title %q matched %s, want %s", title, tpl.ID, wantID)
    }
  }
}

func TestTemplateCatalog_MatchByKeywordToken(t *testing.T) {
  tc := testCatalog(t)
  cases := map[string]string{
    "conversational Japanese, someday":  "language-learning",
    "become a software developer":       "programming-fundamentals",
    "train for a marathon":              "fitness-habit",
  }
  for title, wantID := range cases {
    tpl := tc.Match(title)
    if tpl == nil {
      t.Fatalf("title %q matched nothing", title)
    }
    if tpl.ID != wantID {
      t.Fatalf("title %q matched %s, want %s", title, tpl.ID, wantID)
    }
  }
}

func TestTemplateCatalog_NoMatchFallsThrough(t *testing.T) {
  tc := testCatalog(t)
  for _, title := range []string{"", "   ", "learn underwater basket weaving", "improve my handwriting"} {
    if tpl := tc.Match(title); tpl != nil {
      t.Fatalf("title %q unexpectedly matched %s", title, tpl.ID)
    }
  }
}

func TestPersonalizeTemplate_TimeMultiplierBands(t *testing.T) {
  tc := testCatalog(t)
  tpl := tc.Get("language-learning")
  baseWeeks := tpl.Phases[0].DurationWeeks // 2

  fast := PersonalizeTemplate(tpl, "beginner", 90)
  if fast.Phases[0].DurationWeeks != 2 { // ceil(2*0.75)
    t.Fatalf("fast cadence: got %d weeks", fast.Phases[0].DurationWeeks)
  }

  standard := PersonalizeTemplate(tpl, "beginner", 45)
  if standard.Phases[0].DurationWeeks != baseWeeks {
    t.Fatalf("standard cadence: got %d weeks, want %d", standard.Phases[0].DurationWeeks, baseWeeks)
  }

  slow := PersonalizeTemplate(tpl, "beginner", 15)
  if slow.Phases[0].DurationWeeks != 3 { // ceil(2*1.3)
    t.Fatalf("slow cadence: got %d weeks", slow.Phases[0].DurationWeeks)
  }
}

func TestPersonalizeTemplate_NeverBelowOneWeek(t *testing.T) {
  tc := testCatalog(t)
  tpl := tc.Get("fitness-habit")
  out := PersonalizeTemplate(tpl, "", 120)
  for _, phase := range out.Phases {
    if phase.DurationWeeks < 1 {
      t.Fatalf("phase %q scaled below one week", phase.Title)
    }
  }
}

func TestPersonalizeTemplate_LevelAdjustsOverview(t *testing.T) {
  tc := testCatalog(t)
  tpl := tc.Get("language-learning")

  beginner := PersonalizeTemplate(tpl, "complete beginner", 30)
  if strings.Contains(beginner.Overview, "Master ") {
    t.Fatalf("beginner overview kept original phrasing: %q", beginner.Overview)
  }
  if !strings.Contains(beginner.Overview, "Get comfortable with") {
    t.Fatalf("beginner overview missing softened phrasing: %q", beginner.Overview)
  }

  intermediate := PersonalizeTemplate(tpl, "intermediate", 30)
  if intermediate.Overview != tpl.Overview {
    t.Fatalf("intermediate level should keep the overview unchanged")
  }
}

func TestPersonalizeTemplate_SourceNotMutated(t *testing.T) {
  tc := testCatalog(t)
  tpl := tc.Get("programming-fundamentals")
  beforeWeeks := tpl.Phases[0].DurationWeeks
  beforeOverview := tpl.Overview
  beforeHours := tpl.TotalHours

  out := PersonalizeTemplate(tpl, "beginner", 10)
  out.Phases[0].SkillsToLearn = append(out.Phases[0].SkillsToLearn, "mutation marker")
  out.Prerequisites = append(out.Prerequisites, "mutation marker")

  if tpl.Phases[0].DurationWeeks != beforeWeeks {
    t.Fatalf("catalog phase duration mutated")
  }
  if tpl.Overview != beforeOverview {
    t.Fatalf("catalog overview mutated")
  }
  if tpl.TotalHours != beforeHours {
    t.Fatalf("catalog total hours mutated")
  }
  for _, skill := range tpl.Phases[0].SkillsToLearn {
    if skill == "mutation marker" {
      t.Fatalf("catalog skills slice aliased by personalized copy")
    }
  }
}
