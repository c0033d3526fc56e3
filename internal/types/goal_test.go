package types

import (
	"testing"
	"time"

	"gorm.io/datatypes"
)

func TestParseWeeklySchedule_MissingOrMalformedMeansEveryDay(t *testing.T) {
	for _, js := range []datatypes.JSON{
		nil,
		datatypes.JSON(``),
		datatypes.JSON(`not json`),
		datatypes.JSON(`[true, false]`),
		datatypes.JSON(`{"monday": true}`),
	} {
		days := ParseWeeklySchedule(js)
		for i, on := range days {
			if !on {
				t.Fatalf("input %q: day %d should default to available", js, i)
			}
		}
	}
}

func TestParseWeeklySchedule_RoundTrip(t *testing.T) {
	want := [7]bool{false, true, false, true, false, true, false}
	got := ParseWeeklySchedule(WeeklyScheduleJSON(want))
	if got != want {
		t.Fatalf("round trip mismatch: got %v want %v", got, want)
	}
}

func TestEnabledWeekdays_SundayIsIndexZero(t *testing.T) {
	var schedule [7]bool
	schedule[0] = true // Sunday
	schedule[3] = true // Wednesday

	goal := &Goal{WeeklySchedule: WeeklyScheduleJSON(schedule)}
	enabled := goal.EnabledWeekdays()

	if !enabled[time.Sunday] || !enabled[time.Wednesday] {
		t.Fatalf("expected Sunday and Wednesday enabled, got %v", enabled)
	}
	if enabled[time.Monday] || enabled[time.Saturday] {
		t.Fatalf("unexpected days enabled: %v", enabled)
	}
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled days, got %d", len(enabled))
	}
}
