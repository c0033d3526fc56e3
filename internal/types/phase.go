package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Phase struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RoadmapID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"roadmap_id"`
	Roadmap            *Roadmap       `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
	PhaseNumber        int            `gorm:"column:phase_number;not null" json:"phase_number"`
	PhaseKey           string         `gorm:"column:phase_key;not null" json:"phase_id"`
	Title              string         `gorm:"column:title;not null" json:"title"`
	Description        string         `gorm:"column:description" json:"description"`
	DurationWeeks      int            `gorm:"column:duration_weeks;not null" json:"duration_weeks"`
	StartDate          time.Time      `gorm:"column:start_date;not null" json:"start_date"`
	EndDate            time.Time      `gorm:"column:end_date;not null" json:"end_date"`
	SkillsToLearn      datatypes.JSON `gorm:"type:jsonb;column:skills_to_learn" json:"skills_to_learn"`
	LearningObjectives datatypes.JSON `gorm:"type:jsonb;column:learning_objectives" json:"learning_objectives"`
	KeyConcepts        datatypes.JSON `gorm:"type:jsonb;column:key_concepts" json:"key_concepts"`
	Resources          datatypes.JSON `gorm:"type:jsonb;column:resources" json:"resources"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Phase) TableName() string { return "phase" }
