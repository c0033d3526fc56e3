package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Goal struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title               string         `gorm:"column:title;not null" json:"title"`
	CurrentLevel        string         `gorm:"column:current_level" json:"current_level"`
	DailyTimeCommitment int            `gorm:"column:daily_time_commitment;not null;default:30" json:"daily_time_commitment"`
	StartDate           time.Time      `gorm:"column:start_date;not null" json:"start_date"`
	TargetDate          *time.Time     `gorm:"column:target_date" json:"target_date,omitempty"`
	WeeklySchedule      datatypes.JSON `gorm:"type:jsonb;column:weekly_schedule" json:"weekly_schedule"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Goal) TableName() string { return "goal" }

// WeeklySchedule is stored as a JSON array of 7 booleans, index 0 = Sunday.
// A missing or malformed value means "available every day".

func ParseWeeklySchedule(js datatypes.JSON) [7]bool {
	all := [7]bool{true, true, true, true, true, true, true}
	if len(js) == 0 {
		return all
	}
	var days []bool
	if err := json.Unmarshal(js, &days); err != nil || len(days) != 7 {
		return all
	}
	var out [7]bool
	copy(out[:], days)
	return out
}

func WeeklyScheduleJSON(days [7]bool) datatypes.JSON {
	b, _ := json.Marshal(days[:])
	return datatypes.JSON(b)
}

// EnabledWeekdays returns the weekdays the user can work on tasks,
// Sunday=0 through Saturday=6.
func (g *Goal) EnabledWeekdays() map[time.Weekday]bool {
	days := ParseWeeklySchedule(g.WeeklySchedule)
	out := make(map[time.Weekday]bool, 7)
	for i, on := range days {
		if on {
			out[time.Weekday(i)] = true
		}
	}
	return out
}
