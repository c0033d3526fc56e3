package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RoadmapID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"roadmap_id"`
	PhaseID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"phase_row_id"`
	Phase             *Phase         `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhaseID;references:ID" json:"phase,omitempty"`
	PhaseKey          string         `gorm:"column:phase_key;not null;index" json:"phase_id"`
	Title             string         `gorm:"column:title;not null" json:"title"`
	Description       string         `gorm:"column:description" json:"description"`
	ScheduledDate     time.Time      `gorm:"column:scheduled_date;not null;index" json:"scheduled_date"`
	EstimatedDuration int            `gorm:"column:estimated_duration;not null;default:30" json:"estimated_duration"`
	Priority          int            `gorm:"column:priority;not null;default:3" json:"priority"`
	Completed         bool           `gorm:"column:completed;not null;default:false" json:"completed"`
	CompletedAt       *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Task) TableName() string { return "task" }
