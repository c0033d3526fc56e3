package types

import (
	"time"
)

// PlanDocument is the generated_plan JSON stored on a roadmap. The overview
// model call fills the top-level fields; the stages call fills Phases.
type PlanDocument struct {
	Title              string          `json:"title"`
	Overview           string          `json:"overview"`
	TotalWeeks         int             `json:"total_weeks,omitempty"`
	TotalHours         int             `json:"total_hours,omitempty"`
	ExpectedPhaseCount int             `json:"expected_phase_count,omitempty"`
	Prerequisites      []string        `json:"prerequisites,omitempty"`
	SuccessMetrics     []string        `json:"success_metrics,omitempty"`
	Phases             []PhaseDocument `json:"phases,omitempty"`
}

// PhaseDocument is one phase as produced by a template or by the model,
// before scheduling assigns absolute dates.
type PhaseDocument struct {
	PhaseID            string   `json:"phase_id,omitempty"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	DurationWeeks      int      `json:"duration_weeks"`
	SkillsToLearn      []string `json:"skills_to_learn,omitempty"`
	LearningObjectives []string `json:"learning_objectives,omitempty"`
	KeyConcepts        []string `json:"key_concepts,omitempty"`
	Resources          []string `json:"resources,omitempty"`

	// Curated task pool for template-built phases; model-built phases
	// leave it empty and task generation asks the model instead.
	SampleTasks []TaskBlueprint `json:"sample_tasks,omitempty"`
}

// Milestone is a derived checkpoint, one per phase end. Stored on the
// roadmap as JSON, never owned by a table of its own.
type Milestone struct {
	Title    string    `json:"title"`
	PhaseKey string    `json:"phase_id"`
	Date     time.Time `json:"date"`
}

// TaskBlueprint is one entry of the rotating pool the date allocator
// cycles across a phase's eligible days.
type TaskBlueprint struct {
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Type             string `json:"type"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

// TaskPattern is a model-generated blueprint that repeats for a stated
// number of weeks before the next pattern takes over.
type TaskPattern struct {
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Type             string `json:"type"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	DurationWeeks    int    `json:"duration_weeks"`
}
