package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roadmap generation lifecycle. Status is monotonic: pending ->
// generating_phases -> completed, with failed absorbing from any
// non-terminal state. It never regresses from completed.
const (
	RoadmapStatusPending          = "pending"
	RoadmapStatusGeneratingPhases = "generating_phases"
	RoadmapStatusCompleted        = "completed"
	RoadmapStatusFailed           = "failed"
)

func RoadmapStatusTerminal(status string) bool {
	return status == RoadmapStatusCompleted || status == RoadmapStatusFailed
}

type Roadmap struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	GoalID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"goal_id"`
	Goal             *Goal          `gorm:"constraint:OnDelete:CASCADE;foreignKey:GoalID;references:ID" json:"goal,omitempty"`
	GeneratedPlan    datatypes.JSON `gorm:"type:jsonb;column:generated_plan" json:"generated_plan"`
	Milestones       datatypes.JSON `gorm:"type:jsonb;column:milestones" json:"milestones"`
	ModelIdentifier  string         `gorm:"column:model_identifier" json:"model_identifier"`
	GenerationStatus string         `gorm:"column:generation_status;not null;index" json:"generation_status"`
	Error            string         `gorm:"column:error" json:"error,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Roadmap) TableName() string { return "roadmap" }
