package types

// Template is a curated roadmap blueprint from the static catalog. Read-only
// after startup; the personalizer works on derived copies only.
type Template struct {
	ID             string           `yaml:"id" json:"id"`
	Title          string           `yaml:"title" json:"title"`
	Description    string           `yaml:"description" json:"description"`
	Overview       string           `yaml:"overview" json:"overview"`
	TotalHours     int              `yaml:"total_hours" json:"total_hours"`
	Prerequisites  []string         `yaml:"prerequisites" json:"prerequisites"`
	SuccessMetrics []string         `yaml:"success_metrics" json:"success_metrics"`
	Phases         []PhaseBlueprint `yaml:"phases" json:"phases"`
}

type PhaseBlueprint struct {
	Title              string     `yaml:"title" json:"title"`
	Description        string     `yaml:"description" json:"description"`
	DurationWeeks      int        `yaml:"duration_weeks" json:"duration_weeks"`
	SkillsToLearn      []string   `yaml:"skills_to_learn" json:"skills_to_learn"`
	LearningObjectives []string   `yaml:"learning_objectives" json:"learning_objectives"`
	KeyConcepts        []string   `yaml:"key_concepts" json:"key_concepts"`
	Resources          []string   `yaml:"resources" json:"resources"`
	SampleTasks        []TaskSeed `yaml:"sample_tasks" json:"sample_tasks"`
}

// TaskSeed is a curated task blueprint carried by a template phase.
type TaskSeed struct {
	Title            string `yaml:"title" json:"title"`
	Description      string `yaml:"description" json:"description"`
	Type             string `yaml:"type" json:"type"`
	EstimatedMinutes int    `yaml:"estimated_minutes" json:"estimated_minutes"`
}
